package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/school-portal/internal/api/http"
	"github.com/spec-kit/school-portal/internal/api/http/handlers"
	"github.com/spec-kit/school-portal/internal/auth"
	"github.com/spec-kit/school-portal/internal/config"
	"github.com/spec-kit/school-portal/internal/events"
	"github.com/spec-kit/school-portal/internal/notify"
	"github.com/spec-kit/school-portal/internal/observability"
	"github.com/spec-kit/school-portal/internal/persistence"
	"github.com/spec-kit/school-portal/internal/repository"
	"github.com/spec-kit/school-portal/internal/service"
	"github.com/spec-kit/school-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg)
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var redis *persistence.Redis
	if cfg.Storage.Driver == config.StorageRedis {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
	}

	kv, err := persistence.NewKeyValueStore(cfg.Storage, pg, redis, logger)
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}

	staffRepo := repository.NewStaffRepository(kv, logger)
	settingsRepo := repository.NewSettingsRepository(kv, logger)
	adminAuthRepo := repository.NewAdminAuthRepository(kv, cfg.Admin, logger)
	preferencesRepo := repository.NewPreferencesRepository(kv, logger)
	inboxRepo := repository.NewInboxRepository(kv, logger)

	dispatcher := events.NewInMemoryDispatcher(logger)
	metrics := observability.NewMetrics()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	sessions := auth.NewSessionRegistry(tokens.TTL(), logger)

	activityService := service.NewActivityService(cfg.Activity.FeedSize)
	var mailer service.Mailer
	if cfg.Notification.SendgridAPIKey != "" {
		mailer = notify.NewSendgridMailer(cfg.Notification.SendgridAPIKey, cfg.Notification.EmailFrom, cfg.App.Name)
	}
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification, mailer)
	worker.StartNotificationWorker(dispatcher, notificationService, activityService)

	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		StaffRepo:  staffRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	settingsService := service.NewSettingsService(settingsRepo, dispatcher, logger)
	adminAuthService := service.NewAdminAuthService(adminAuthRepo, dispatcher, logger)
	preferencesService := service.NewPreferencesService(preferencesRepo)
	inboxService := service.NewInboxService(service.InboxDependencies{
		InboxRepo:  inboxRepo,
		StaffRepo:  staffRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authService := service.NewAuthService(service.AuthDependencies{
		AdminAuthRepo:   adminAuthRepo,
		StaffRepo:       staffRepo,
		PreferencesRepo: preferencesRepo,
		Sessions:        sessions,
		Tokens:          tokens,
		Dispatcher:      dispatcher,
		Logger:          logger,
		VerifyTeachers:  cfg.Auth.VerifyTeachers,
	})
	if !cfg.Auth.VerifyTeachers {
		logger.Warn("open teacher mode: any non-admin staff login is accepted as a teacher")
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), authService.Sessions())

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, kv, pg, redis),
		Auth:   handlers.NewAuthHandler(authService, directoryService),
		Site:   handlers.NewSiteHandler(settingsService, directoryService, preferencesService),
		Admin: handlers.NewAdminHandler(handlers.AdminDependencies{
			Directory: directoryService,
			Settings:  settingsService,
			AdminAuth: adminAuthService,
			Activity:  activityService,
			Metrics:   metrics,
		}),
		Inbox:          handlers.NewInboxHandler(inboxService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
