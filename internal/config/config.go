// Package config defines the configuration of keyip-mcs: plain data types,
// defaults, validation and the viper-based loader.
package config

import (
	"time"

	"github.com/turtacn/keyip-mcs/internal/domain/matcher"
	"github.com/turtacn/keyip-mcs/internal/domain/mcs"
	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// MatchingConfig selects the matcher strictness and bounds the searches.
type MatchingConfig struct {
	matcher.Flags `mapstructure:",squash" yaml:",inline"`

	Algorithm             string `mapstructure:"algorithm" yaml:"algorithm"`
	IterationCap          int    `mapstructure:"iteration_cap" yaml:"iteration_cap"`
	SubstructureStepLimit int    `mapstructure:"substructure_step_limit" yaml:"substructure_step_limit"`
	MaxSolutions          int    `mapstructure:"max_solutions" yaml:"max_solutions"`
	CollectTies           bool   `mapstructure:"collect_ties" yaml:"collect_ties"`
}

// WorkerConfig sizes the batch worker pool.
type WorkerConfig struct {
	Concurrency       int `mapstructure:"concurrency" yaml:"concurrency"`
	FingerprintRadius int `mapstructure:"fingerprint_radius" yaml:"fingerprint_radius"`
}

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	Mode            string        `mapstructure:"mode" yaml:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size" yaml:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// MetricsConfig controls the Prometheus collector and its scrape route.
type MetricsConfig struct {
	Enabled              bool   `mapstructure:"enabled" yaml:"enabled"`
	Path                 string `mapstructure:"path" yaml:"path"`
	prom.CollectorConfig `mapstructure:",squash" yaml:",inline"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Matching MatchingConfig     `mapstructure:"matching" yaml:"matching"`
	Ranking  mcs.RankingOptions `mapstructure:"ranking" yaml:"ranking"`
	Worker   WorkerConfig       `mapstructure:"worker" yaml:"worker"`
	Server   ServerConfig       `mapstructure:"server" yaml:"server"`
	Metrics  MetricsConfig      `mapstructure:"metrics" yaml:"metrics"`
	Log      logging.LogConfig  `mapstructure:"log" yaml:"log"`
}

// EngineOptions converts the matching and ranking sections into engine
// options.  Call Validate first; an unknown algorithm falls back to DEFAULT.
func (c *Config) EngineOptions() mcs.Options {
	opts := mcs.DefaultOptions()
	opts.Flags = c.Matching.Flags
	if alg, err := mcs.ParseAlgorithm(c.Matching.Algorithm); err == nil {
		opts.Algorithm = alg
	}
	opts.IterationCap = c.Matching.IterationCap
	opts.SubstructureStepLimit = c.Matching.SubstructureStepLimit
	opts.MaxSolutions = c.Matching.MaxSolutions
	opts.CollectTies = c.Matching.CollectTies
	opts.Ranking = c.Ranking
	return opts
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered.
func (c *Config) Validate() error {
	// Matching
	if _, err := mcs.ParseAlgorithm(c.Matching.Algorithm); err != nil {
		return errors.Newf(errors.ErrCodeValidation,
			"config: matching.algorithm %q is invalid; expected default|vf_like|clique_based|subgraph_only", c.Matching.Algorithm)
	}
	if c.Matching.IterationCap < 0 {
		return errors.Newf(errors.ErrCodeValidation, "config: matching.iteration_cap must be ≥ 0, got %d", c.Matching.IterationCap)
	}
	if c.Matching.MaxSolutions < 0 {
		return errors.Newf(errors.ErrCodeValidation, "config: matching.max_solutions must be ≥ 0, got %d", c.Matching.MaxSolutions)
	}

	// Worker
	if c.Worker.Concurrency < 1 {
		return errors.Newf(errors.ErrCodeValidation, "config: worker.concurrency must be ≥ 1, got %d", c.Worker.Concurrency)
	}
	if c.Worker.FingerprintRadius < 0 {
		return errors.Newf(errors.ErrCodeValidation, "config: worker.fingerprint_radius must be ≥ 0, got %d", c.Worker.FingerprintRadius)
	}

	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.Newf(errors.ErrCodeValidation, "config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return errors.Newf(errors.ErrCodeValidation, "config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return errors.New(errors.ErrCodeValidation, "config: metrics.namespace is required when metrics are enabled")
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Newf(errors.ErrCodeValidation, "config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return errors.Newf(errors.ErrCodeValidation, "config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

//Personal.AI order the ending
