package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkedit/internal/collection"
	"github.com/MrSnakeDoc/linkedit/internal/config"
	"github.com/MrSnakeDoc/linkedit/internal/domain"
	"github.com/MrSnakeDoc/linkedit/internal/httpserver"
	"github.com/MrSnakeDoc/linkedit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkedit/internal/ingest"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
	"github.com/MrSnakeDoc/linkedit/internal/redis"
	"github.com/MrSnakeDoc/linkedit/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/linkedit/internal/store/redis"
	"github.com/MrSnakeDoc/linkedit/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	ingestor    *ingest.Ingestor
	syncer      *scheduler.RedisSyncer
	reloader    *scheduler.IconPackReloader // nil without an icons file
	gc          *scheduler.OrphanCollector  // nil in memory-only mode
}

// New wires the application. ctx bounds the startup work (Redis connection).
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	var (
		redisClient *goredis.Client
		store       *redisstore.Store
		linkStore   collection.Store
		syncStore   scheduler.LinkStore
	)

	if cfg.RedisEnabled() {
		client, err := redis.New(ctx, redis.ConnectOptions{
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
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		loggerClient.Info("Redis initialized successfully")

		redisClient = client
		store = redisstore.NewStore(client)
		linkStore, syncStore = store, store
	} else {
		loggerClient.Warn("LINKEDIT_REDIS_ADDR not set, edits are kept in memory only")
	}

	links := collection.New(linkStore, loggerClient)

	syncer := scheduler.NewRedisSyncer(syncStore, links, cfg.LinksFile, loggerClient)

	pack := domain.NewReloadablePack(nil, "")
	var (
		reloader      *scheduler.IconPackReloader
		reloadTrigger chan struct{}
	)
	if cfg.IconsFile != "" {
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewIconPackReloader(cfg.IconsFile, pack, loggerClient, cfg.IconsReload, reloadTrigger)
	} else {
		loggerClient.Info("icons file not configured, the selector offers built-in sources only")
	}

	var gc *scheduler.OrphanCollector
	if store != nil {
		gc = scheduler.NewOrphanCollector(store, links, loggerClient, cfg.OrphanGCInterval)
	}

	pipeline := ingest.New(ingest.Options{
		MaxBytes:    cfg.MaxUploadBytes,
		DefaultSize: domain.Size(cfg.DefaultUploadSize),
	}, loggerClient)
	ingestor := ingest.NewIngestor(pipeline, loggerClient)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:             loggerClient,
		StartTime:          time.Now(),
		Version:            version.Version,
		Commit:             version.Commit,
		BuildDate:          version.BuildDate,
		GoVersion:          version.GoVersion,
		TimeNow:            time.Now,
		AllowedHosts:       cfg.AllowedHosts,
		AllowedCIDRS:       cfg.AllowedCIDRS,
		AllowedOrigins:     cfg.AllowedOrigins,
		TrustProxy:         cfg.TrustProxy,
		RequestTimeout:     cfg.RequestTimeout,
		RedisClient:        redisClient,
		Links:              links,
		Pack:               pack,
		Resolver:           domain.NewResolver(pack),
		Ingestor:           ingestor,
		MaxUploadBytes:     cfg.MaxUploadBytes,
		DecodeTimeout:      cfg.DecodeTimeout,
		UploadBurst:        cfg.UploadBurst,
		UploadRefillPerMin: cfg.UploadRefillPerIP,
		ReloadTrigger:      reloadTrigger,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		ingestor:    ingestor,
		syncer:      syncer,
		reloader:    reloader,
		gc:          gc,
	}, nil
}

// Run serves until ctx is done or the server fails, then shuts down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting linkedit v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("linkedit %s", version.String())

	if err := a.syncer.Sync(ctx); err != nil {
		return fmt.Errorf("failed to load links: %w", err)
	}

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start icon pack reloader: %w", err)
		}
		a.logger.Info("icon pack reloader started",
			logger.Duration("interval", a.cfg.IconsReload))
	}

	if a.gc != nil {
		if err := a.gc.Start(ctx); err != nil {
			return fmt.Errorf("failed to start orphan collector: %w", err)
		}
		a.logger.Info("orphan collector started",
			logger.Duration("interval", a.cfg.OrphanGCInterval))
	}

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

	if a.reloader != nil {
		a.reloader.Stop()
	}
	if a.gc != nil {
		a.gc.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Uploads still decoding after the server drained are abandoned
	a.ingestor.CancelAll()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ linkedit stopped cleanly")
	return nil
}
