package app

import (
	"context"
	"time"

	"bid-match/internal/config"
	"bid-match/internal/database"
	"bid-match/internal/database/migration"
	dbpostgres "bid-match/internal/database/postgres"
	"bid-match/internal/infrastructure/cache"
	"bid-match/internal/pkg/jwt"
	"bid-match/internal/repository"
	"bid-match/internal/usecase"
	"bid-match/internal/ws"

	"go.uber.org/zap"
)

// Container owns the process-wide collaborators and the wired usecases.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	JWT    jwt.Service

	Matching   *usecase.Matching
	Validation *usecase.Validation
	Groups     *usecase.MatchGrouping
	Auth       *usecase.Auth
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.MigrationsDir != "" {
		runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("migrations applied", zap.String("dir", cfg.Database.MigrationsDir))
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	if err := redisCache.Ping(ctx); err != nil {
		// Cache is optional; the usecases bypass it when it is down.
		logger.Warn("redis unreachable at startup", zap.Error(err))
	}

	hub := ws.NewHub(logger)
	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	requirements := repository.NewPostgresRequirementRepository(db)
	users := repository.NewPostgresUserRepository(db)
	profiles := repository.NewPostgresProfileRepository(db)
	matches := repository.NewPostgresMatchRepository(db)

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redisCache,
		Hub:    hub,
		JWT:    jwtSvc,

		Matching:   usecase.NewMatchingUsecase(requirements, users, profiles, matches, redisCache, ws.NewProgressBroadcaster(hub), logger),
		Validation: usecase.NewValidationUsecase(matches, requirements, redisCache, logger),
		Groups:     usecase.NewMatchGroupUsecase(requirements, matches, redisCache, logger),
		Auth:       usecase.NewAuthUsecase(users, jwtSvc),
	}
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
