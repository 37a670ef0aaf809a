package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	JWT       JWTConfig
	Storage   StorageConfig
	AI        AIConfig
	Data      DataConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	ExpireTime        time.Duration `mapstructure:"expire_hours"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
}

// AIConfig configures the external generative model service. Sampling knobs
// are sent verbatim with every request.
type AIConfig struct {
	BaseURL        string  `mapstructure:"base_url"`
	APIKey         string  `mapstructure:"api_key"`
	Model          string  `mapstructure:"model"`
	Temperature    float64 `mapstructure:"temperature"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	TopP           float64 `mapstructure:"top_p"`
	RepeatPenalty  float64 `mapstructure:"repeat_penalty"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

// DataConfig locates the whole-file JSON stores.
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("QUIZDECK")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.admin_password_hash", "ADMIN_PASSWORD_HASH")

	// AI
	viper.BindEnv("ai.base_url", "AI_BASE_URL")
	viper.BindEnv("ai.api_key", "AI_API_KEY")
	viper.BindEnv("ai.model", "AI_MODEL")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.local_path", "STORAGE_LOCAL_PATH")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Data
	viper.BindEnv("data.dir", "DATA_DIR")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("jwt.expire_hours", 24)
	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.local_path", "uploads")
	viper.SetDefault("data.dir", "data")
	viper.SetDefault("ai.temperature", 0.2)
	viper.SetDefault("ai.max_tokens", 1024)
	viper.SetDefault("ai.top_p", 0.9)
	viper.SetDefault("ai.repeat_penalty", 1.1)
	viper.SetDefault("ai.timeout_seconds", 60)
	viper.SetDefault("rate_limit.max_requests", 600)
	viper.SetDefault("rate_limit.window_minutes", 1)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}
	if _, err := os.Stat(cfg.Data.Dir); os.IsNotExist(err) {
		os.MkdirAll(cfg.Data.Dir, 0755)
	}

	return &cfg, nil
}
