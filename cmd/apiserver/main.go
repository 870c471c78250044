// Command apiserver serves the keyip-mcs HTTP API and reloads engine
// defaults when its config file changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/turtacn/keyip-mcs/internal/application/comparison"
	"github.com/turtacn/keyip-mcs/internal/config"
	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/keyip-mcs/internal/interfaces/http"
	"github.com/turtacn/keyip-mcs/internal/interfaces/http/handlers"
	"github.com/turtacn/keyip-mcs/internal/interfaces/http/middleware"
)

const defaultConfigPath = "configs/config.yaml"

var version = "dev"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	watch := flag.Bool("watch", true, "reload engine defaults when the config file changes")
	flag.Parse()

	if err := run(*configPath, *httpPort, *watch); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, httpPort int, watch bool) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: using default configuration: %v\n", err)
		if cfg, err = config.LoadFromEnv(); err != nil {
			return err
		}
		watch = false
	}
	if httpPort > 0 {
		cfg.Server.Port = httpPort
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	collector := prom.NewNoopCollector()
	if cfg.Metrics.Enabled {
		if collector, err = prom.NewMetricsCollector(cfg.Metrics.CollectorConfig, logger); err != nil {
			return err
		}
	}
	metrics := prom.NewMCSMetrics(collector)

	svc, err := newService(cfg, metrics, logger)
	if err != nil {
		return err
	}
	current := newSwappableService(svc)

	if watch {
		err := config.Watch(func(next *config.Config, ev fsnotify.Event) {
			fresh, err := newService(next, metrics, logger)
			if err != nil {
				logger.Error("config reload rejected", logging.Err(err))
				return
			}
			current.Store(fresh)
			logger.Info("engine defaults reloaded",
				logging.String("file", ev.Name),
				logging.String("algorithm", next.Matching.Algorithm))
		}, func(err error) {
			logger.Warn("config reload failed", logging.Err(err))
		}, config.WithConfigPath(configPath))
		if err != nil {
			return err
		}
	}

	rc := httpserver.RouterConfig{
		Service:     current,
		Logger:      logger,
		Version:     version,
		Mode:        cfg.Server.Mode,
		MaxBodySize: cfg.Server.MaxBodySize,
		Metrics:     metrics,
		Logging:     middleware.DefaultLoggingConfig(),
		Checkers:    []handlers.HealthChecker{&engineHealthAdapter{svc: current}},
	}
	if cfg.Metrics.Enabled {
		rc.Collector = collector
		rc.MetricsPath = cfg.Metrics.Path
	}
	srv := httpserver.NewServer(cfg.Server, httpserver.NewRouter(rc), logger)

	logger.Info("starting keyip-mcs API server",
		logging.String("version", version),
		logging.String("addr", srv.Addr()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	if err := srv.Stop(context.Background()); err != nil {
		logger.Error("HTTP server shutdown error", logging.Err(err))
		return err
	}
	return <-errCh
}

func newService(cfg *config.Config, metrics *prom.MCSMetrics, logger logging.Logger) (comparison.Service, error) {
	return comparison.NewService(comparison.Config{
		Defaults:          cfg.EngineOptions(),
		Concurrency:       cfg.Worker.Concurrency,
		FingerprintRadius: cfg.Worker.FingerprintRadius,
	}, metrics, logger)
}

//Personal.AI order the ending
