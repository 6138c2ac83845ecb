// Package config loads process-wide service configuration via viper, the
// same nested-struct-plus-env-prefix idiom the teacher uses in
// cmd/config/config.go.
package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

// Config is the complete roomvision service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server"`
	Detection DetectionConfig `yaml:"detection" json:"detection"`
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit" mapstructure:"rate_limit"`
	Models    ModelsConfig    `yaml:"models" json:"models"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr         string `yaml:"addr" json:"addr"`
	ReadTimeout  int    `yaml:"read_timeout_seconds" json:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`
	WriteTimeout int    `yaml:"write_timeout_seconds" json:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`
}

// DetectionConfig holds the spec §6 "recognized options" defaults. Per-call
// requests may override any of these; these are only the process defaults.
type DetectionConfig struct {
	ConfidenceThresholdV1 float64 `yaml:"confidence_threshold_v1" json:"confidence_threshold_v1" mapstructure:"confidence_threshold_v1"`
	ConfidenceThresholdV2 float64 `yaml:"confidence_threshold_v2" json:"confidence_threshold_v2" mapstructure:"confidence_threshold_v2"`
	MinRoomArea           int     `yaml:"min_room_area" json:"min_room_area" mapstructure:"min_room_area"`
	KernelSize            int     `yaml:"kernel_size" json:"kernel_size" mapstructure:"kernel_size"`
	EpsilonFactor         float64 `yaml:"epsilon_factor" json:"epsilon_factor" mapstructure:"epsilon_factor"`
	ReturnVisualization   bool    `yaml:"return_visualization" json:"return_visualization" mapstructure:"return_visualization"`
}

// RateLimitConfig mirrors the teacher's RateLimitConfig shape
// (arx-backend/gateway/middleware/rate_limit.go), trimmed to the fields this
// single-tenant service actually uses (no per-user/per-service keying, since
// there is no auth layer).
type RateLimitConfig struct {
	RequestsPerSecond int `yaml:"requests_per_second" json:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int `yaml:"burst" json:"burst"`
}

// ModelsConfig holds the on-disk paths for the two detector model handles.
// An empty path means "use the built-in heuristic" (see pkg/walldetect.Load).
type ModelsConfig struct {
	WallModelPath string `yaml:"wall_model_path" json:"wall_model_path" mapstructure:"wall_model_path"`
	RoomModelPath string `yaml:"room_model_path" json:"room_model_path" mapstructure:"room_model_path"`
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// Load reads configuration from configFile (or the default search path if
// empty) and environment variables prefixed ROOMVISION_, falling back to
// the built-in defaults. Environment variables take precedence over the
// config file, and both take precedence over the defaults.
func Load(configFile string) (*Config, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/roomvision")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ROOMVISION")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file on disk: defaults + env vars only, not an error.
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg = c
	return cfg, nil
}

// Get returns the process-wide configuration, loading it with defaults on
// first access if Load was never called.
func Get() *Config {
	cfgOnce.Do(func() {
		if cfg == nil {
			loaded, err := Load("")
			if err != nil {
				cfg = defaultConfig()
				return
			}
			cfg = loaded
		}
	})
	return cfg
}

func setDefaults() {
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.read_timeout_seconds", 30)
	viper.SetDefault("server.write_timeout_seconds", 30)

	viper.SetDefault("detection.confidence_threshold_v1", 0.10)
	viper.SetDefault("detection.confidence_threshold_v2", 0.50)
	viper.SetDefault("detection.min_room_area", 2000)
	viper.SetDefault("detection.kernel_size", 3)
	viper.SetDefault("detection.epsilon_factor", 0.01)
	viper.SetDefault("detection.return_visualization", true)

	viper.SetDefault("rate_limit.requests_per_second", 10)
	viper.SetDefault("rate_limit.burst", 20)

	viper.SetDefault("models.wall_model_path", "")
	viper.SetDefault("models.room_model_path", "")
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080", ReadTimeout: 30, WriteTimeout: 30},
		Detection: DetectionConfig{
			ConfidenceThresholdV1: 0.10,
			ConfidenceThresholdV2: 0.50,
			MinRoomArea:           2000,
			KernelSize:            3,
			EpsilonFactor:         0.01,
			ReturnVisualization:   true,
		},
		RateLimit: RateLimitConfig{RequestsPerSecond: 10, Burst: 20},
	}
}
