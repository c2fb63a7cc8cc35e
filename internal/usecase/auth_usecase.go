package usecase

import (
	"context"
	"errors"
	"strings"

	"bid-match/internal/domain/user"
	"bid-match/internal/pkg/jwt"
	"bid-match/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Login(ctx context.Context, in LoginInput) (user.User, string, error)
}

type Auth struct {
	users repository.UserRepository
	jwt   jwt.Service
}

func NewAuthUsecase(users repository.UserRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{users: users, jwt: jwtSvc}
}

// Login verifies reviewer credentials and issues an access token. The token
// only identifies the acting user; every usecase still takes the actor as an
// explicit argument.
func (u *Auth) Login(ctx context.Context, in LoginInput) (user.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return user.User{}, "", ErrInvalidCredentials
	}

	usr, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.User{}, "", ErrInvalidCredentials
		}
		return user.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email, usr.Role)
	if err != nil {
		return user.User{}, "", ErrInternal
	}
	return usr, token, nil
}
