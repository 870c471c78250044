// Package e2e_test drives the HTTP API through the Go SDK.  By default the
// full stack is started in process; set KEYMCS_E2E_BASE_URL to run against a
// deployed server instead.
package e2e_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/keyip-mcs/internal/application/comparison"
	"github.com/turtacn/keyip-mcs/internal/config"
	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/prometheus"
	apihttp "github.com/turtacn/keyip-mcs/internal/interfaces/http"
	"github.com/turtacn/keyip-mcs/internal/interfaces/http/middleware"
	"github.com/turtacn/keyip-mcs/pkg/client"
)

// testEnv holds the shared resources of the E2E tests.
type testEnv struct {
	baseURL      string
	sdk          *client.Client
	collector    prom.MetricsCollector
	cleanupFuncs []func()
}

var env *testEnv

func TestMain(m *testing.M) {
	var err error
	env, err = setupTestEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "E2E test setup failed: %v\n", err)
		os.Exit(1)
	}

	exitCode := m.Run()
	for i := len(env.cleanupFuncs) - 1; i >= 0; i-- {
		env.cleanupFuncs[i]()
	}
	os.Exit(exitCode)
}

func setupTestEnv() (*testEnv, error) {
	e := &testEnv{}

	if baseURL := os.Getenv("KEYMCS_E2E_BASE_URL"); baseURL != "" {
		e.baseURL = baseURL
	} else if err := e.startEmbedded(); err != nil {
		return nil, err
	}

	sdk, err := client.NewClient(e.baseURL, client.WithRetryWait(50*time.Millisecond, 200*time.Millisecond))
	if err != nil {
		return nil, err
	}
	e.sdk = sdk

	if err := waitForHealthy(sdk, e.baseURL, 30*time.Second); err != nil {
		return nil, err
	}
	return e, nil
}

// startEmbedded wires the same stack as the serve command behind an
// httptest server.
func (e *testEnv) startEmbedded() error {
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	collector, err := prom.NewMetricsCollector(cfg.Metrics.CollectorConfig, logging.NewNopLogger())
	if err != nil {
		return err
	}
	metrics := prom.NewMCSMetrics(collector)
	svc, err := comparison.NewService(comparison.Config{
		Defaults:          cfg.EngineOptions(),
		Concurrency:       cfg.Worker.Concurrency,
		FingerprintRadius: cfg.Worker.FingerprintRadius,
	}, metrics, logging.NewNopLogger())
	if err != nil {
		return err
	}

	router := apihttp.NewRouter(apihttp.RouterConfig{
		Service:     svc,
		Logger:      logging.NewNopLogger(),
		Version:     "e2e",
		MaxBodySize: cfg.Server.MaxBodySize,
		Collector:   collector,
		Metrics:     metrics,
		MetricsPath: cfg.Metrics.Path,
		Logging:     middleware.DefaultLoggingConfig(),
	})
	srv := httptest.NewServer(router)
	e.baseURL = srv.URL
	e.collector = collector
	e.cleanupFuncs = append(e.cleanupFuncs, srv.Close)
	return nil
}

func waitForHealthy(sdk *client.Client, baseURL string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for {
		if h, err := sdk.Health(ctx); err == nil && h.Status == "alive" {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("service at %s not healthy after %v", baseURL, timeout)
		case <-time.After(200 * time.Millisecond):
		}
	}
}

//Personal.AI order the ending
