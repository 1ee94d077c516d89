package main

import (
	"context"
	"errors"
	"time"

	"github.com/khoahotran/portfolio-api/adapters/persistence"
	authUC "github.com/khoahotran/portfolio-api/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// Adds or updates the admin user from OWNER_EMAIL / OWNER_PASSWORD.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if cfg.Owner.Email == "" || cfg.Owner.Password == "" {
		appLogger.Fatal("Owner credentials missing", errors.New("set OWNER_EMAIL and OWNER_PASSWORD"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	seed := authUC.NewSeedOwnerUseCase(persistence.NewPostgresUserRepo(dbPool, appLogger), appLogger)
	if _, err := seed.Execute(ctx, authUC.SeedOwnerInput{
		Name:     cfg.Owner.Name,
		Email:    cfg.Owner.Email,
		Password: cfg.Owner.Password,
	}); err != nil {
		appLogger.Fatal("Cannot add owner", err)
	}
}
