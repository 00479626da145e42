package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/gommon/random"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pgmaint/internal/caching"
	"pgmaint/internal/config"
	"pgmaint/internal/jobs"
	"pgmaint/internal/metrics"
	"pgmaint/internal/repositories"
	"pgmaint/internal/server"
	"pgmaint/internal/services"
	"pgmaint/internal/sessions"
	"pgmaint/pkg/database"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply the schema and start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	clock := clockwork.NewRealClock()

	pool, err := database.NewPool(ctx, cfg.Database.URL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Bootstrap(ctx, pool); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var store sessions.Store
	switch cfg.Session.Store {
	case config.StoreRedis:
		client, err := caching.NewRedisClient(ctx, caching.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return err
		}
		defer client.Close()
		store = sessions.NewRedisStore(client, clock)
	default:
		store = sessions.NewMemoryStore(clock)
	}
	logger.Info("Session store ready", zap.String("kind", cfg.Session.Store))

	secret := cfg.Session.Secret
	if secret == "" {
		secret = random.String(32)
		logger.Warn("SESSION_SECRET is not set; using a per-process secret, sessions will not survive a restart")
	}
	if !cfg.Auth.StrictTenantAuth {
		logger.Warn("STRICT_TENANT_AUTH is off; tenant complaint routes trust the client-supplied tenant id")
	}

	hasher := services.NewBcryptHasher(cfg.Auth.BcryptCost)
	ownerRepo := repositories.NewOwnerRepo(pool)
	tenantRepo := repositories.NewTenantRepo(pool)
	complaintRepo := repositories.NewComplaintRepo(pool)

	if cfg.Auth.SeedDefaultOwner {
		owners := services.NewOwnerService(ownerRepo, hasher, clock, logger)
		if _, err := owners.SeedDefault(ctx); err != nil {
			return err
		}
	}

	auth := services.NewAuthService(ownerRepo, tenantRepo, store, hasher, services.AuthConfig{
		SessionTTL: cfg.Session.TTL.Duration,
		Clock:      clock,
		Logger:     logger,
		Metrics:    m,
	})
	cookies := sessions.NewCookieManager(sessions.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
		TTL:    cfg.Session.TTL.Duration,
	}, sessions.NewCookieSigner([]byte(secret), clock))

	sweeper, err := jobs.NewSessionSweeper(store, cfg.Session.SweepInterval.Duration, m, clock, logger)
	if err != nil {
		return err
	}
	sweeper.Start()
	defer func() {
		if err := sweeper.Stop(); err != nil {
			logger.Warn("Session sweeper did not stop cleanly", zap.Error(err))
		}
	}()

	e := server.NewRouter(server.Dependencies{
		Auth:             auth,
		Tenants:          services.NewTenantService(tenantRepo, clock, logger),
		Complaints:       services.NewComplaintService(complaintRepo, tenantRepo, clock, logger),
		Cookies:          cookies,
		DB:               pool,
		Store:            store,
		Logger:           logger,
		Metrics:          m,
		Clock:            clock,
		Version:          version,
		APIPrefix:        cfg.Server.APIPrefix,
		CORSOrigins:      cfg.Server.CORSOrigins,
		StrictTenantAuth: cfg.Auth.StrictTenantAuth,
	})

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("version", version), zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
