package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_MatchesSpecDefaults(t *testing.T) {
	c := defaultConfig()
	assert.Equal(t, 0.10, c.Detection.ConfidenceThresholdV1)
	assert.Equal(t, 0.50, c.Detection.ConfidenceThresholdV2)
	assert.Equal(t, 2000, c.Detection.MinRoomArea)
	assert.Equal(t, 3, c.Detection.KernelSize)
	assert.Equal(t, 0.01, c.Detection.EpsilonFactor)
	assert.True(t, c.Detection.ReturnVisualization)
}

func TestLoad_NoConfigFileFallsBackToDefaults(t *testing.T) {
	c, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, 10, c.RateLimit.RequestsPerSecond)
}
