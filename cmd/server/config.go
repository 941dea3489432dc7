package main

import (
	"fmt"
	"os"
	"time"

	"practicehub/internal/cache"
	"practicehub/internal/middleware"
	"practicehub/internal/repository"
	"practicehub/pkg/utils/logger"

	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddr        = "0.0.0.0:8080"
	defaultReadTimeout     = 5 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwtSecret"`
	JWTIssuer string        `yaml:"jwtIssuer"`
	TokenTTL  time.Duration `yaml:"tokenTTL"`
}

// LimiterConfig holds login rate-limit settings.
type LimiterConfig struct {
	FailLimit  int           `yaml:"failLimit"`
	FailWindow time.Duration `yaml:"failWindow"`
}

// StatsConfig holds stats caching settings.
type StatsConfig struct {
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// RedisSection enables the optional cache backend.
type RedisSection struct {
	Enabled bool `yaml:"enabled"`
	cache.RedisConfig `yaml:",inline"`
}

// AppConfig holds the server configuration.
type AppConfig struct {
	Server  ServerConfig           `yaml:"server"`
	Logger  logger.Config          `yaml:"logger"`
	Mongo   repository.MongoConfig `yaml:"mongo"`
	Auth    AuthConfig             `yaml:"auth"`
	Redis   RedisSection           `yaml:"redis"`
	Limiter LimiterConfig          `yaml:"limiter"`
	Stats   StatsConfig            `yaml:"stats"`
	CORS    middleware.CORSConfig  `yaml:"cors"`
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file failed: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse config file failed: %w", err)
	}
	return nil
}

// loadAppConfig reads the YAML config, applies environment overrides for the
// externally supplied values, then validates and fills defaults.
func loadAppConfig(path string) (*AppConfig, error) {
	var cfg AppConfig
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return nil, err
		}
	}

	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		cfg.Mongo.URI = uri
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultHTTPAddr
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = defaultIdleTimeout
	}

	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("mongo.uri is required")
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "practicehub"
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwtSecret is required")
	}
	if cfg.Auth.JWTIssuer == "" {
		cfg.Auth.JWTIssuer = "practicehub"
	}

	if cfg.Redis.Enabled && cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis.addr is required when redis is enabled")
	}

	return &cfg, nil
}
