package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/docnav/internal/config"
	"github.com/MrSnakeDoc/docnav/internal/httpserver"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/redis"
	"github.com/MrSnakeDoc/docnav/internal/scheduler"
	"github.com/MrSnakeDoc/docnav/internal/session"
	redisstore "github.com/MrSnakeDoc/docnav/internal/store/redis"
	"github.com/MrSnakeDoc/docnav/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.ConfigReloader
	syncer      *scheduler.SnapshotSyncer
	reaper      *scheduler.SessionReaper
	sessions    *session.Registry
	debouncer   *session.Debouncer
}

// New wires the server from cfg. An invalid cfg or an unreachable Redis
// (when configured) is fatal.
func New(cfg *config.Config) *App {
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	if err := cfg.Validate(); err != nil {
		loggerClient.Errorf("Invalid settings: %v", err)
		os.Exit(1)
	}
	loggerClient.Debug("Settings loaded", logger.String("config_file", cfg.ConfigFile))

	// Redis is optional: it only receives published snapshots.
	var (
		redisClient  *goredis.Client
		publications *redisstore.Store
		publisher    scheduler.Publisher
		syncer       *scheduler.SnapshotSyncer
	)
	memIndex := index.NewMemoryIndex()

	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.Connect(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
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
		loggerClient.Info("Redis initialized successfully")

		store := redisstore.NewStore(client)
		redisClient = client
		publications = store
		publisher = store
		syncer = scheduler.NewSnapshotSyncer(store, memIndex, loggerClient)
	} else {
		loggerClient.Info("Redis not configured, snapshot publication disabled")
	}

	reloadTrigger := make(chan struct{}, 1)
	reloader := scheduler.NewConfigReloader(
		cfg.ConfigFile,
		cfg.MembersFile,
		publisher,
		memIndex,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	sessions := session.NewRegistry()
	reaper := scheduler.NewSessionReaper(
		sessions,
		loggerClient,
		cfg.SessionSweepInterval,
		cfg.SessionIdleTTL,
	)

	debouncer, err := session.NewDebouncer(cfg.Debounce, cfg.Workers, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to start debouncer: %v", err)
		os.Exit(1)
	}

	d := deps.Deps{
		Logger:              loggerClient,
		StartTime:           time.Now(),
		Version:             version.Version,
		Commit:              version.Commit,
		BuildDate:           version.BuildDate,
		GoVersion:           version.GoVersion,
		AllowedHosts:        cfg.AllowedHosts,
		AllowedCIDRS:        cfg.AllowedCIDRS,
		TrustProxy:          cfg.TrustProxy,
		CORSOrigins:         cfg.CORSOrigins,
		MemoryIndex:         memIndex,
		Sessions:            sessions,
		RedisClient:         redisClient,
		Publications:        publications,
		ReloadTrigger:       reloadTrigger,
		SessionBurst:        cfg.SessionBurst,
		SessionRefillPerMin: cfg.SessionRefillPerMin,
		RequestTimeout:      cfg.RequestTimeout,
		Debouncer:           debouncer,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		syncer:      syncer,
		reaper:      reaper,
		sessions:    sessions,
		debouncer:   debouncer,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting docnav %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Docnav %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// First load is synchronous: no configuration, no server.
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start config reloader: %w", err)
	}
	a.logger.Info("Config reloader started",
		logger.String("file", a.cfg.ConfigFile),
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.syncer != nil {
		drift, err := a.syncer.Sync(ctx)
		if err != nil {
			a.logger.Warn("Failed to sync published snapshot", logger.Error(err))
		} else {
			a.logger.Info("Published snapshot checked", logger.String("drift", drift.String()))
		}
	}

	a.reaper.Start(ctx)
	a.logger.Info("Session reaper started",
		logger.Duration("interval", a.cfg.SessionSweepInterval),
		logger.Duration("idle_ttl", a.cfg.SessionIdleTTL))

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

	a.reloader.Stop()
	a.reaper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Whatever is still open dies with the process.
	a.sessions.Sweep(time.Now().Add(time.Hour))
	a.debouncer.Release()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("Failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ docnav stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
