package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewHMACService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "reviewer@example.com", "reviewer")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "reviewer@example.com" || claims.Role != "reviewer" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewHMACService("test-secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateAccessToken(uuid.New(), "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewHMACService("secret-a", time.Hour).GenerateAccessToken(uuid.New(), "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewHMACService("secret-b", time.Hour).ValidateToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewHMACService("test-secret", time.Hour)

	for _, in := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.ValidateToken(in); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("input %q: expected ErrTokenInvalid, got %v", in, err)
		}
	}
}
