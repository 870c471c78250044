// Package http exposes the comparison service over a gin HTTP API.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/keyip-mcs/internal/application/comparison"
	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/keyip-mcs/internal/interfaces/http/handlers"
	"github.com/turtacn/keyip-mcs/internal/interfaces/http/middleware"
)

// RouterConfig holds the dependencies of the router.
type RouterConfig struct {
	Service comparison.Service
	Logger  logging.Logger
	Version string

	// Mode is the gin mode: debug, release or test.
	Mode        string
	MaxBodySize int64

	// Collector serves MetricsPath when set.  Metrics records request
	// counts and may be nil.
	Collector   prom.MetricsCollector
	Metrics     *prom.MCSMetrics
	MetricsPath string

	Logging  middleware.LoggingConfig
	Checkers []handlers.HealthChecker
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	logger := logging.OrDefault(cfg.Logger)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogging(logger, cfg.Logging),
		middleware.Metrics(cfg.Metrics),
		middleware.BodyLimit(cfg.MaxBodySize),
	)

	handlers.NewHealthHandler(cfg.Version, cfg.Checkers...).RegisterRoutes(r)

	if cfg.Collector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.Collector.Handler()))
	}

	v1 := r.Group("/api/v1")
	handlers.NewComparisonHandler(cfg.Service, logger).RegisterRoutes(v1)

	return r
}

//Personal.AI order the ending
