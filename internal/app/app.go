package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/paperdesk/paperdesk/internal/config"
	"github.com/paperdesk/paperdesk/internal/httpserver"
	"github.com/paperdesk/paperdesk/internal/httpserver/deps"
	"github.com/paperdesk/paperdesk/internal/index"
	"github.com/paperdesk/paperdesk/internal/logger"
	"github.com/paperdesk/paperdesk/internal/papers"
	"github.com/paperdesk/paperdesk/internal/redis"
	"github.com/paperdesk/paperdesk/internal/scheduler"
	"github.com/paperdesk/paperdesk/internal/session"
	"github.com/paperdesk/paperdesk/internal/sources/arxiv"
	"github.com/paperdesk/paperdesk/internal/store/sqlite"
	"github.com/paperdesk/paperdesk/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	store       *sqlite.Store
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	service     *papers.Service
	refresher   *scheduler.Refresher
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// SQLite is the source of truth - fail fast if it cannot open.
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		loggerClient.Errorf("Failed to open database at %s: %v", cfg.DBPath, err)
		os.Exit(1)
	}
	loggerClient.Info("database opened",
		logger.String("path", cfg.DBPath))

	memIndex := index.NewMemoryIndex()

	// Session backend: in-process by default, Redis when sessions must
	// survive restarts.
	var sessions session.Store
	var redisClient *goredis.Client
	switch cfg.SessionBackend {
	case "redis":
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		sessions = session.NewRedisStore(redisClient, cfg.SessionTTL)
	default:
		sessions = session.NewMemoryStore()
	}

	source := arxiv.NewCatalogSource(cfg.CatalogFile, cfg.FetchDelay)
	service := papers.New(store, memIndex, sessions, source, loggerClient)

	// Warm the index from the store so reads work before the first
	// catalog fetch completes.
	if err := service.SyncIndex(context.Background()); err != nil {
		loggerClient.Warn("failed to warm index from store",
			logger.Error(err))
	}

	// Create manual refresh trigger channel
	refreshTrigger := make(chan struct{}, 1)

	refresher := scheduler.NewRefresher(
		service,
		loggerClient,
		cfg.RefreshInterval,
		refreshTrigger,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		Service:          service,
		Sessions:         sessions,
		MemoryIndex:      memIndex,
		Store:            store,
		RedisClient:      redisClient,
		RefreshTrigger:   refreshTrigger,
		DefaultDateRange: cfg.DefaultDateRange,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		RateLimitBurst:   cfg.RateLimitBurst,
		RateLimitPerMin:  cfg.RateLimitPerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		store:       store,
		redisClient: redisClient,
		memIndex:    memIndex,
		service:     service,
		refresher:   refresher,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Paperdesk v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Paperdesk %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the refresher (runs the first catalog fetch, then periodic refreshes)
	a.refresher.Start(ctx)
	a.logger.Info("catalog refresher started",
		logger.Duration("interval", a.cfg.RefreshInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close database: %v", err)
	}

	a.logger.Info("✅ Paperdesk stopped cleanly")
	return nil
}
