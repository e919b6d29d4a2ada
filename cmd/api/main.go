package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/jobs"
	"github.com/BruksfildServices01/barber-booking/internal/logging"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/telemetry"
)

func main() {

	cfg := config.Load()

	log, err := logging.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	otelShutdown, err := telemetry.Setup(context.Background(), cfg)
	if err != nil {
		log.Fatal("tracing init failed", zap.Error(err))
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	var limiter middleware.RateLimiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		limiter = middleware.NewRedisRateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute, "barber-booking:rl")
	} else {
		log.Info("REDIS_URL not set, using in-process rate limiter")
		memLimiter := middleware.NewMemoryRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		defer memLimiter.Close()
		limiter = memLimiter
	}

	retention := jobs.NewRetention(db, log, cfg.NotificationRetentionDays, cfg.AuditRetentionDays)
	sched, err := retention.Schedule()
	if err != nil {
		log.Fatal("scheduler init failed", zap.Error(err))
	}

	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Audit:   auditDispatcher,
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	<-sched.Stop().Done()
	auditDispatcher.Close()

	if err := otelShutdown(ctx); err != nil {
		log.Warn("tracing shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
