package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jwtauth "vet-clinic-scheduling/internal/adapters/auth/jwt"
	"vet-clinic-scheduling/internal/adapters/backend/rest"
	redislock "vet-clinic-scheduling/internal/adapters/locks/redis"
	amqpnotify "vet-clinic-scheduling/internal/adapters/notify/amqp"
	pg "vet-clinic-scheduling/internal/adapters/storage/postgres"
	"vet-clinic-scheduling/internal/platform/config"
	"vet-clinic-scheduling/internal/platform/httpclient"
	"vet-clinic-scheduling/internal/platform/logger"
	"vet-clinic-scheduling/internal/router"
)

// @title Vet Clinic Scheduling API
// @version 1.0
// @description Consola de agenda de la clínica: citas con split por días y pacientes.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Config: cfg,
		Logger: log,
	}

	// sin JWT_SECRET queda el modo dev (X-Debug-User-ID)
	if cfg.Auth.JWTSecret != "" {
		opts.AuthVerifier = jwtauth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	} else if !cfg.IsLocal() {
		log.Warn("JWT_SECRET not set outside local env; auth runs in dev mode", nil)
	}

	var db *sql.DB
	if cfg.DB.DSN != "" {
		db, err = pg.Open(ctx, cfg.DB.DSN, pg.PoolOptions{})
		if err != nil {
			log.Error("postgres connect failed", map[string]any{"error": err})
			os.Exit(1)
		}
		defer db.Close()

		n, err := pg.Migrate(db)
		if err != nil {
			log.Error("postgres migrate failed", map[string]any{"error": err})
			os.Exit(1)
		}
		log.Info("postgres ready", map[string]any{"migrations_applied": n})
		opts.DB = db
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redislock.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			log.Error("redis connect failed", map[string]any{"error": err})
			os.Exit(1)
		}
		defer rdb.Close()
		opts.Locker = redislock.NewLocker(rdb, log.With(map[string]any{"component": "locker"}))
	}

	if cfg.AMQP.URL != "" {
		conn, ch, err := amqpnotify.Dial(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			log.Error("amqp connect failed", map[string]any{"error": err})
			os.Exit(1)
		}
		defer conn.Close()
		defer ch.Close()
		opts.Notifier = amqpnotify.NewNotifier(ch, cfg.AMQP.Queue)
	}

	if cfg.Backend.URL != "" {
		c, err := httpclient.New(httpclient.Options{
			BaseURL:   cfg.Backend.URL,
			Token:     cfg.Backend.Token,
			Timeout:   cfg.Backend.Timeout,
			UserAgent: cfg.App.Name,
		})
		if err != nil {
			log.Error("backend client config failed", map[string]any{"error": err})
			os.Exit(1)
		}
		opts.Backend = rest.NewStore(c)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": string(cfg.App.Env)})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err})
	}
	log.Info("server stopped", nil)
}
