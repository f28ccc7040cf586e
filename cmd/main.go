package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AnthoniusHendriyanto/blog-service/config"
	"github.com/AnthoniusHendriyanto/blog-service/db"
	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/handler"
	repo "github.com/AnthoniusHendriyanto/blog-service/internal/auth/repository/postgres"
	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/repository/redisstore"
	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/service"
	"github.com/AnthoniusHendriyanto/blog-service/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	l, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() { _ = l.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l); err != nil {
		stop()
		l.Fatal("server stopped", zap.Error(err))
	}
}

// run owns every connection it opens; all of them are closed before it returns.
func run(ctx context.Context, cfg *config.Config, l *zap.Logger) error {
	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL, cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("initialize DB connection: %w", err)
	}
	defer dbPool.Close()

	if err := db.Migrate(ctx, dbPool); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	checks := map[string]handler.HealthCheck{"postgres": dbPool.Ping}
	opts := []service.Option{service.WithLogger(l)}

	if cfg.RedisURL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("initialize Redis connection: %w", err)
		}
		defer rdb.Close()

		opts = append(opts, service.WithRevocationStore(redisstore.NewRevocationStore(rdb)))
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	tokenService, err := service.NewTokenService(cfg.AccessTokenSecret, cfg.JWTAlgorithm, cfg.AccessExpiryMin, opts...)
	if err != nil {
		return fmt.Errorf("initialize token service: %w", err)
	}

	hasher := service.NewPasswordHasher(cfg.BcryptCost, cfg.HashWorkers)
	userService := service.NewUserService(repo.NewPostgresRepository(dbPool), tokenService, hasher, opts...)
	postService := service.NewPostService(repo.NewPostRepository(dbPool), opts...)
	l.Info("auth configured",
		zap.String("algorithm", tokenService.Algorithm()),
		zap.Duration("access_token_expiry", tokenService.GetAccessTokenExpiry()),
		zap.Bool("revocation", userService.RevocationEnabled()))

	app := fiber.New(fiber.Config{DisableStartupMessage: cfg.IsProduction()})
	app.Use(recover.New())
	app.Use(handler.RequestLogger(l))
	app.Use(handler.RequestTimeout(cfg.RequestTimeout))

	handler.RegisterRoutes(app,
		handler.NewAuthHandler(userService, l),
		handler.NewPostHandler(postService, l),
		handler.NewHealthHandler(checks, l))

	go func() {
		<-ctx.Done()
		l.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			l.Error("error during shutdown", zap.Error(err))
		}
	}()

	l.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
