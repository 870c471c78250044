package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/keyip-mcs/internal/domain/mcs/clique"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerHost, cfg.Server.Host)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultAlgorithm, cfg.Matching.Algorithm)
	assert.Equal(t, clique.DefaultIterationCap, cfg.Matching.IterationCap)
	assert.Equal(t, DefaultWorkerConcurrency, cfg.Worker.Concurrency)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Namespace)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.False(t, cfg.Matching.MatchBondOrder, "booleans are left to the caller")
}

func TestApplyDefaults_PreserveExistingValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Matching.IterationCap = 12
	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 12, cfg.Matching.IterationCap)
}

func TestApplyDefaults_Nil(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Matching.MatchBondOrder)
	assert.True(t, cfg.Ranking.Energy && cfg.Ranking.Fragments && cfg.Ranking.Stereo)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, DefaultFingerprintRadius, cfg.Worker.FingerprintRadius)
	assert.NoError(t, cfg.Validate())
}

//Personal.AI order the ending
