package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/turtacn/keyip-mcs/internal/domain/mcs"
	"github.com/turtacn/keyip-mcs/internal/domain/mcs/clique"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultAlgorithm = "DEFAULT"

	DefaultWorkerConcurrency = 4
	DefaultFingerprintRadius = 2

	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 30 * time.Second
	DefaultServerWriteTimeout    = 60 * time.Second
	DefaultServerMaxBodySize     = 4 << 20
	DefaultServerShutdownTimeout = 10 * time.Second

	DefaultMetricsNamespace = "keymcs"
	DefaultMetricsPath      = "/metrics"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns a Config with every default applied, including the
// boolean switches that ApplyDefaults cannot tell apart from "unset".
func Default() *Config {
	cfg := &Config{}
	cfg.Matching.Flags.MatchBondOrder = true
	cfg.Ranking = mcs.DefaultRankingOptions()
	cfg.Worker.FingerprintRadius = DefaultFingerprintRadius
	cfg.Metrics.Enabled = true
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-value field in cfg with its default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Matching ──────────────────────────────────────────────────────────────
	if cfg.Matching.Algorithm == "" {
		cfg.Matching.Algorithm = DefaultAlgorithm
	}
	if cfg.Matching.IterationCap == 0 {
		cfg.Matching.IterationCap = clique.DefaultIterationCap
	}
	if cfg.Matching.SubstructureStepLimit == 0 {
		cfg.Matching.SubstructureStepLimit = mcs.DefaultSubstructureStepLimit
	}
	if cfg.Matching.MaxSolutions == 0 {
		cfg.Matching.MaxSolutions = mcs.DefaultMaxSolutions
	}

	// ── Worker ────────────────────────────────────────────────────────────────
	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = DefaultWorkerConcurrency
	}
	// FingerprintRadius 0 is a valid explicit value (element symbols only);
	// the loader supplies the default through viper instead.

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultServerMaxBodySize
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// setViperDefaults registers every key with viper so that environment
// variables can override keys absent from the file, and so that boolean
// switches default to on.
func setViperDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("matching.algorithm", d.Matching.Algorithm)
	v.SetDefault("matching.match_bond_order", d.Matching.MatchBondOrder)
	v.SetDefault("matching.match_rings", d.Matching.MatchRings)
	v.SetDefault("matching.match_atom_type", d.Matching.MatchAtomType)
	v.SetDefault("matching.iteration_cap", d.Matching.IterationCap)
	v.SetDefault("matching.substructure_step_limit", d.Matching.SubstructureStepLimit)
	v.SetDefault("matching.max_solutions", d.Matching.MaxSolutions)
	v.SetDefault("matching.collect_ties", d.Matching.CollectTies)

	v.SetDefault("ranking.energy", d.Ranking.Energy)
	v.SetDefault("ranking.fragments", d.Ranking.Fragments)
	v.SetDefault("ranking.stereo", d.Ranking.Stereo)

	v.SetDefault("worker.concurrency", d.Worker.Concurrency)
	v.SetDefault("worker.fingerprint_radius", d.Worker.FingerprintRadius)

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.max_body_size", d.Server.MaxBodySize)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("metrics.subsystem", "")
	v.SetDefault("metrics.enable_process_metrics", false)
	v.SetDefault("metrics.enable_go_metrics", false)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

//Personal.AI order the ending
