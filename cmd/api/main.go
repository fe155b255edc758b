package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/course-marketplace/internal/api/http"
	"github.com/spec-kit/course-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/course-marketplace/internal/auth"
	"github.com/spec-kit/course-marketplace/internal/config"
	"github.com/spec-kit/course-marketplace/internal/domain"
	"github.com/spec-kit/course-marketplace/internal/events"
	"github.com/spec-kit/course-marketplace/internal/observability"
	"github.com/spec-kit/course-marketplace/internal/persistence"
	"github.com/spec-kit/course-marketplace/internal/repository"
	"github.com/spec-kit/course-marketplace/internal/repository/memory"
	"github.com/spec-kit/course-marketplace/internal/service"
	"github.com/spec-kit/course-marketplace/internal/worker"
)

type repositories struct {
	admins    repository.AccountRepository
	users     repository.AccountRepository
	courses   repository.CourseRepository
	purchases repository.PurchaseRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	repos := newRepositories(pg, logger)

	dispatcher := events.NewInMemoryDispatcher()
	notificationWorker := worker.NewNotificationWorker(
		service.NewNotificationService(logger, cfg.Notification), logger, cfg.Notification.QueueSize)
	notificationWorker.Start(dispatcher)

	tokens, err := auth.NewTokenManager(cfg.Auth.AdminJWTSecret, cfg.Auth.UserJWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	accountDeps := service.AccountDependencies{
		Tokens:     tokens,
		BcryptCost: cfg.Auth.BcryptCost,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	}
	adminDeps, userDeps := accountDeps, accountDeps
	adminDeps.Accounts = repos.admins
	userDeps.Accounts = repos.users
	adminService := service.NewAccountService(domain.RoleAdmin, adminDeps)
	userService := service.NewAccountService(domain.RoleUser, userDeps)

	courseService := service.NewCourseService(repos.courses, dispatcher, logger)
	purchaseService := service.NewPurchaseService(service.PurchaseDependencies{
		Purchases:  repos.purchases,
		Courses:    repos.courses,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	rateLimiter, err := httptransport.NewRateLimiter(cfg.RateLimit, redis.Client, logger)
	if err != nil {
		logger.Fatal("failed to init rate limiter", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.IsProduction(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Admin:       handlers.NewAdminHandler(adminService, courseService),
		User:        handlers.NewUserHandler(userService, purchaseService),
		Course:      handlers.NewCourseHandler(courseService, purchaseService),
		AdminAuth:   auth.NewAuthMiddleware(tokens, domain.RoleAdmin),
		UserAuth:    auth.NewAuthMiddleware(tokens, domain.RoleUser),
		RateLimiter: rateLimiter,
		Gatherer:    registry,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := notificationWorker.Stop(stopCtx); err != nil {
		logger.Error("notification worker stop", zap.Error(err))
	}
}

// newRepositories uses Postgres when a DSN is configured and the in-memory store otherwise.
func newRepositories(pg *persistence.Postgres, logger *zap.Logger) repositories {
	if pg.Enabled() {
		pool := pg.PoolHandle()
		return repositories{
			admins:    repository.NewAccountRepository(pool, domain.RoleAdmin),
			users:     repository.NewAccountRepository(pool, domain.RoleUser),
			courses:   repository.NewCourseRepository(pool),
			purchases: repository.NewPurchaseRepository(pool),
		}
	}

	logger.Warn("POSTGRES_DSN not provided; data is kept in memory")
	store := memory.NewStore()
	return repositories{
		admins:    store.Accounts(domain.RoleAdmin),
		users:     store.Accounts(domain.RoleUser),
		courses:   store.Courses(),
		purchases: store.Purchases(),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
