package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerHost string `mapstructure:"server_host"`
	ServerPort string `mapstructure:"server_port"`

	// Database configuration
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSSLMode  string `mapstructure:"db_ssl_mode"`

	// Redis configuration
	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     string `mapstructure:"redis_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisURL      string `mapstructure:"redis_url"`

	// JWT configuration
	JWTSecret string `mapstructure:"jwt_secret"`

	// Classifier service configuration
	ClassifierURL     string        `mapstructure:"classifier_url"`
	ClassifierTimeout time.Duration `mapstructure:"classifier_timeout"`

	// Scanning configuration
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	MaxPredictions      int     `mapstructure:"max_predictions"`
	MaxUploadSizeBytes  int64   `mapstructure:"max_upload_size_bytes"`

	// Recommendation configuration
	CandidatePoolSize int           `mapstructure:"candidate_pool_size"`
	PoolCacheTTL      time.Duration `mapstructure:"pool_cache_ttl"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
}

// LoadConfig reads configuration from the environment (and an optional .env
// file) with sane defaults for local development.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject plain env vars
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"server_host", "server_port",
		"db_host", "db_port", "db_user", "db_password", "db_name", "db_ssl_mode",
		"redis_host", "redis_port", "redis_password", "redis_db", "redis_url",
		"jwt_secret",
		"classifier_url", "classifier_timeout",
		"confidence_threshold", "max_predictions", "max_upload_size_bytes",
		"candidate_pool_size", "pool_cache_ttl",
		"log_level",
	} {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_name", "pantrysnap")
	v.SetDefault("db_ssl_mode", "disable")

	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)

	v.SetDefault("classifier_url", "http://localhost:9090")
	v.SetDefault("classifier_timeout", "30s")

	v.SetDefault("confidence_threshold", 0.5)
	v.SetDefault("max_predictions", 5)
	v.SetDefault("max_upload_size_bytes", 10*1024*1024)

	v.SetDefault("candidate_pool_size", 100)
	v.SetDefault("pool_cache_ttl", "60s")

	v.SetDefault("log_level", "info")
}

func validate(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ClassifierURL == "" {
		return fmt.Errorf("classifier URL is required")
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold must be in [0,1], got %v", cfg.ConfidenceThreshold)
	}
	if cfg.CandidatePoolSize <= 0 {
		return fmt.Errorf("candidate pool size must be positive")
	}
	return nil
}
