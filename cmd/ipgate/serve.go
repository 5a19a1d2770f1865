package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/patwell/ipgate/internal/cache"
	"github.com/patwell/ipgate/internal/config"
	"github.com/patwell/ipgate/internal/domain/override"
	"github.com/patwell/ipgate/internal/domain/records"
	"github.com/patwell/ipgate/internal/infrastructure/monitoring/logging"
	"github.com/patwell/ipgate/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/patwell/ipgate/internal/interfaces/http"
	"github.com/patwell/ipgate/internal/interfaces/http/handlers"
	"github.com/patwell/ipgate/internal/interfaces/http/middleware"
	"github.com/patwell/ipgate/internal/provider"
	"github.com/patwell/ipgate/internal/resolver"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path (default: environment only)")

	return cmd
}

func runServe(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: cfg.Log.OutputPaths,
	})
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	log.Info("starting ipgate",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port),
		logging.String("cache_backend", cfg.Cache.Backend),
	)

	metrics := prometheus.NewMetrics()

	resultCache, err := buildCache(cfg, log)
	if err != nil {
		return err
	}

	store := override.NewStore()
	if cfg.Overrides.SeedFile != "" {
		recs, err := override.ReadSeedFile(cfg.Overrides.SeedFile)
		if err != nil {
			return err
		}
		loaded := store.Seed(recs)
		log.Info("override store seeded",
			logging.String("file", cfg.Overrides.SeedFile),
			logging.Int("clients", loaded),
		)
	}

	patents, trademarks := buildResolvers(cfg, resultCache, store, metrics, log)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		SearchHandler:   handlers.NewSearchHandler(patents, trademarks),
		AdminHandler:    handlers.NewAdminHandler(store, log),
		HealthHandler:   handlers.NewHealthHandler(resultCache, store, version),
		MetricsHandler:  metrics.Handler(),
		MetricsObserver: metrics,
		CORSOrigins:     cfg.CORS.AllowedOrigins,
		Mode:            cfg.Server.Mode,
		Logger:          log,
		LoggingConfig:   middleware.DefaultLoggingConfig(),
	})

	srv := httpserver.NewServer(cfg.Server, router, log)

	if configPath != "" {
		config.Watch(configPath, func(next *config.Config) {
			// Only the log level is safe to apply live; everything else
			// needs a restart.
			log.Info("config file changed", logging.String("log_level", next.Log.Level))
		})
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		return err
	}

	log.Info("ipgate stopped")
	return nil
}

// loadConfig reads the file when a path is given, else builds the full
// configuration from IPGATE_* environment variables.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

func buildCache(cfg *config.Config, log logging.Logger) (cache.Cache, error) {
	if cfg.Cache.Backend == "redis" {
		client := cache.NewRedisClient(cfg.Redis)
		c := cache.NewRedis(client, cfg.Redis.KeyPrefix)
		if err := c.Ping(context.Background()); err != nil {
			return nil, fmt.Errorf("redis unreachable at %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("redis cache connected", logging.String("addr", cfg.Redis.Addr))
		return c, nil
	}
	return cache.NewMemory(), nil
}

// buildResolvers assembles the two domain resolvers with their adapter
// chains.  Disabled providers are simply left out of the chain.
func buildResolvers(
	cfg *config.Config,
	resultCache cache.Cache,
	store *override.Store,
	metrics *prometheus.Metrics,
	log logging.Logger,
) (*resolver.Resolver[records.Patent], *resolver.Resolver[records.Trademark]) {
	var patentAdapters []resolver.Adapter[records.Patent]
	if cfg.Providers.PatentExamination.Enabled {
		patentAdapters = append(patentAdapters, provider.NewPatentExamination(cfg.Providers.PatentExamination, log))
	}
	if cfg.Providers.GrantedPatents.Enabled {
		patentAdapters = append(patentAdapters, provider.NewGrantedPatents(cfg.Providers.GrantedPatents, log))
	}

	var trademarkAdapters []resolver.Adapter[records.Trademark]
	if cfg.Providers.TrademarkStatus.Enabled {
		trademarkAdapters = append(trademarkAdapters, provider.NewTrademarkStatus(cfg.Providers.TrademarkStatus, log))
	}

	patents := resolver.New(resolver.Config[records.Patent]{
		Domain:       "patents",
		Cache:        resultCache,
		TTL:          cfg.Cache.TTL,
		Overrides:    store,
		FromOverride: func(rec override.Record) []records.Patent { return rec.Patents },
		Granted:      records.Patent.Granted,
		Adapters:     patentAdapters,
		Logger:       log.Named("resolver"),
		Metrics:      metrics,
	})
	trademarks := resolver.New(resolver.Config[records.Trademark]{
		Domain:       "trademarks",
		Cache:        resultCache,
		TTL:          cfg.Cache.TTL,
		Overrides:    store,
		FromOverride: func(rec override.Record) []records.Trademark { return rec.Trademarks },
		Granted:      records.Trademark.Registered,
		Adapters:     trademarkAdapters,
		Logger:       log.Named("resolver"),
		Metrics:      metrics,
	})

	return patents, trademarks
}
