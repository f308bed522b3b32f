package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/gatehouse/authengine/api/handler"
	"github.com/gatehouse/authengine/internal/audit"
	"github.com/gatehouse/authengine/internal/config"
	"github.com/gatehouse/authengine/internal/infrastructure/monitor"
	pgInfra "github.com/gatehouse/authengine/internal/infrastructure/postgres"
	redisInfra "github.com/gatehouse/authengine/internal/infrastructure/redis"
	"github.com/gatehouse/authengine/internal/infrastructure/spool"
	"github.com/gatehouse/authengine/internal/middleware"
	"github.com/gatehouse/authengine/internal/router"
	"github.com/gatehouse/authengine/internal/services"
	"github.com/gatehouse/authengine/internal/services/lifecycle"
	"github.com/gatehouse/authengine/pkg/httpcontext"
	"github.com/gatehouse/authengine/pkg/logger"
	pgRepo "github.com/gatehouse/authengine/repository/postgres"
	redisRepo "github.com/gatehouse/authengine/repository/redis"
	authUC "github.com/gatehouse/authengine/usecase/auth"
	permissionUC "github.com/gatehouse/authengine/usecase/permission"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	auditSpool, err := spool.Open(cfg.Audit.SpoolPath, "audit")
	if err != nil {
		zapLogger.Fatal("failed to open audit spool", zap.Error(err))
	}
	manager.Register("audit_spool", func(ctx context.Context) error {
		return auditSpool.Close()
	})

	mon := monitor.New(pool, redisClient, auditSpool, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	retention := services.NewAuditRetention(auditSpool, zapLogger, services.RetentionConfig{
		Interval:  cfg.Audit.SweepInterval,
		Retention: time.Duration(cfg.Audit.RetentionHours) * time.Hour,
	})
	retention.Start()
	manager.Register("audit_retention", func(ctx context.Context) error {
		retention.Stop()
		return nil
	})

	users := pgRepo.NewUserDirectory(pool)
	sessions := pgRepo.NewSessionStore(pool)
	assignments := pgRepo.NewPermissionAssignments(pool)
	permissionCache := redisRepo.NewPermissionCache(redisClient, cfg.Session.CacheTTL)

	resolver := permissionUC.NewResolver(assignments, zapLogger)
	credentials := authUC.NewCredentialValidator(users, authUC.BcryptVerifier)

	var tokens authUC.TokenValidator = authUC.StructuralValidator{MinLength: cfg.Session.TokenMinLength}
	if cfg.Session.JWTSecret != "" {
		tokens = authUC.NewJWTValidator(cfg.Session.JWTSecret, tokens)
	}

	recorder := audit.Tee(
		audit.NewZapRecorder(zapLogger),
		audit.NewSpoolRecorder(auditSpool, zapLogger),
	)

	authService := authUC.New(users, sessions, resolver, permissionCache, credentials, tokens, recorder, zapLogger, authUC.Config{
		SessionTimeout: cfg.SessionTimeout(),
		CacheTTL:       cfg.Session.CacheTTL,
	})

	if cfg.Sweeper.Enabled {
		sweeper := services.NewSessionSweeper(sessions, zapLogger, services.SweeperConfig{
			Interval: cfg.Sweeper.Interval,
			Timeout:  authService.SessionTimeout(),
		})
		sweeper.Start()
		manager.Register("session_sweeper", func(ctx context.Context) error {
			sweeper.Stop(ctx)
			return nil
		})
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:       apiHandler.NewAuthHandler(authService, ctxAdapter, zapLogger),
		Permission: apiHandler.NewPermissionHandler(authService, ctxAdapter, zapLogger),
		Health:     apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	sessionAuth := middleware.SessionAuth(authService, zapLogger)
	r := router.New(handlers, sessionAuth)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
