package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-api/adapters/http"
	"github.com/khoahotran/portfolio-api/adapters/media_storage"
	"github.com/khoahotran/portfolio-api/adapters/persistence"
	"github.com/khoahotran/portfolio-api/adapters/persistence/memory"
	"github.com/khoahotran/portfolio-api/internal/application/service"
	accountUC "github.com/khoahotran/portfolio-api/internal/application/usecase/account"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/asset"
	authUC "github.com/khoahotran/portfolio-api/internal/application/usecase/auth"
	messageUC "github.com/khoahotran/portfolio-api/internal/application/usecase/message"
	portfolioUC "github.com/khoahotran/portfolio-api/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/showcase"
	skillUC "github.com/khoahotran/portfolio-api/internal/application/usecase/skill"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/internal/domain/account"
	"github.com/khoahotran/portfolio-api/internal/domain/message"
	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/internal/domain/user"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/ratelimit"
	"github.com/khoahotran/portfolio-api/pkg/tracing"
)

type repositories struct {
	accounts account.Repository
	skills   skill.Repository
	projects portfolio.Repository
	messages message.Repository
	users    user.Repository
}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	appLogger.Info("Starting Portfolio API Server...", zap.String("env", cfg.App.Env))

	if cfg.Auth.JWTSecret == "" {
		appLogger.Fatal("JWT secret is not configured", errors.New("auth.jwt_secret is empty"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(cfg.Jaeger.OTLPEndpoint, "portfolio-api", appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize tracing", err)
	}

	repos, closeRepos := newRepositories(ctx, cfg, appLogger)
	defer closeRepos()

	// Redis backs the public cache, token revocation and rate limiting.
	// Without it the server still runs with in-process revocation only.
	var (
		contentCache service.ContentCache
		revoker      service.TokenRevoker = memory.NewTokenRevoker()
		limiter      httpAdapter.RateLimiter
	)
	if redisClient := newRedis(ctx, cfg, appLogger); redisClient != nil {
		defer redisClient.Close()
		contentCache = persistence.NewRedisContentCache(redisClient)
		revoker = persistence.NewRedisTokenRevoker(redisClient)
		fixedWindow, err := ratelimit.NewFixedWindowLimiter(redisClient, "portfolio:ratelimit:messages", cfg.RateLimit.Messages, cfg.RateLimit.Window)
		if err != nil {
			appLogger.Fatal("Invalid rate limit configuration", err)
		}
		limiter = fixedWindow
	}

	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Warn("Kafka brokers not configured, events will not be published")
	}

	mediaStore, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize media store", err)
	}

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	assets := asset.NewManager(mediaStore, publisher, appLogger)
	invalidator := showcase.NewInvalidator(contentCache, appLogger)

	// Use Cases
	accountUseCase := accountUC.NewAccountUseCase(repos.accounts, assets, invalidator, cfg.Account, appLogger)
	showcaseUseCase := showcase.NewShowcaseUseCase(accountUseCase, repos.skills, repos.projects, contentCache, cfg.Redis.CacheTTL, cfg.App.PublicURL, appLogger)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Auth: httpAdapter.NewAuthHandler(
			authUC.NewLoginUseCase(repos.users, jwtSvc, appLogger),
			authUC.NewLogoutUseCase(revoker),
			authUC.NewCurrentUserUseCase(repos.users),
			appLogger,
		),
		Account: httpAdapter.NewAccountHandler(accountUseCase, cfg.App.MaxUploadBytes, appLogger),
		Skill:   httpAdapter.NewSkillHandler(skillUC.NewSkillUseCase(repos.skills, invalidator, appLogger), appLogger),
		Portfolio: httpAdapter.NewPortfolioHandler(
			portfolioUC.NewCreateItemUseCase(repos.projects, assets, invalidator, appLogger),
			portfolioUC.NewUpdateItemUseCase(repos.projects, assets, invalidator, appLogger),
			portfolioUC.NewDeleteItemUseCase(repos.projects, assets, invalidator, appLogger),
			portfolioUC.NewGetItemUseCase(repos.projects),
			portfolioUC.NewListItemsUseCase(repos.projects),
			cfg.App.MaxUploadBytes,
			appLogger,
		),
		Message:  httpAdapter.NewMessageHandler(messageUC.NewMessageUseCase(repos.messages, publisher, appLogger), appLogger),
		Showcase: httpAdapter.NewShowcaseHandler(showcaseUseCase, appLogger),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		JWT:            jwtSvc,
		Revoker:        revoker,
		MessageLimiter: limiter,
		AllowedOrigins: cfg.App.AllowedOrigins,
		TrustedProxies: cfg.App.TrustedProxies,
		MaxUploadBytes: cfg.App.MaxUploadBytes,
		Logger:         appLogger,
	}, handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLogger.Error("Failed to flush traces", err)
	}
	appLogger.Info("Server exited")
}

func newRepositories(ctx context.Context, cfg config.Config, log logger.Logger) (repositories, func()) {
	switch cfg.DB.Driver {
	case "memory":
		log.Warn("Using in-memory repositories, data is lost on restart")
		repos := repositories{
			accounts: memory.NewAccountRepo(),
			skills:   memory.NewSkillRepo(),
			projects: memory.NewPortfolioRepo(),
			messages: memory.NewMessageRepo(),
			users:    memory.NewUserRepo(),
		}
		if cfg.Owner.Email != "" {
			seed := authUC.NewSeedOwnerUseCase(repos.users, log)
			if _, err := seed.Execute(ctx, authUC.SeedOwnerInput{
				Name:     cfg.Owner.Name,
				Email:    cfg.Owner.Email,
				Password: cfg.Owner.Password,
			}); err != nil {
				log.Fatal("Cannot seed owner", err)
			}
		}
		return repos, func() {}
	case "postgres":
		dbPool, err := persistence.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal("Cannot connect Postgres", err)
		}
		return repositories{
			accounts: persistence.NewPostgresAccountRepo(dbPool, log),
			skills:   persistence.NewPostgresSkillRepo(dbPool, log),
			projects: persistence.NewPostgresPortfolioRepo(dbPool, log),
			messages: persistence.NewPostgresMessageRepo(dbPool, log),
			users:    persistence.NewPostgresUserRepo(dbPool, log),
		}, dbPool.Close
	default:
		log.Fatal("Unknown database driver", errors.New("db.driver must be postgres or memory"), zap.String("driver", cfg.DB.Driver))
		return repositories{}, func() {}
	}
}

func newRedis(ctx context.Context, cfg config.Config, log logger.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		log.Warn("Redis not configured, cache and rate limiting disabled")
		return nil
	}
	client, err := persistence.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn("Redis unavailable, cache and rate limiting disabled", zap.Error(err))
		return nil
	}
	return client
}
