package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string // YAML key: "database"
	}
	Redis struct {
		Host     string
		Port     int
		Password string
		DB       int
	}
	RabbitMQ struct {
		Host     string
		Port     int
		User     string
		Password string
	}
	Server struct {
		Port int
	}
	JWT struct {
		SecretKey string
		TTLHours  int
	}
	Weather struct {
		APIKey       string
		CacheMinutes int
	}
	Tracking struct {
		OpTimeoutSeconds int
	}
}

// LoadFromFile loads config from a YAML file to a Config struct, applies
// defaults, and validates required fields.
func LoadFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := parseYAML(file, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// JWTAccessTTL returns the configured token lifetime.
func (c *Config) JWTAccessTTL() time.Duration {
	return time.Duration(c.JWT.TTLHours) * time.Hour
}

// WeatherCacheTTL returns how long fetched forecasts stay valid.
func (c *Config) WeatherCacheTTL() time.Duration {
	return time.Duration(c.Weather.CacheMinutes) * time.Minute
}

// TrackingOpTimeout bounds the position fetch and the atomic queue replace.
func (c *Config) TrackingOpTimeout() time.Duration {
	return time.Duration(c.Tracking.OpTimeoutSeconds) * time.Second
}

// applyDefaults sets safe defaults for some fields.
func applyDefaults(cfg *Config) {
	// Database
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}

	// Redis
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}

	// RabbitMQ
	if cfg.RabbitMQ.Host == "" {
		cfg.RabbitMQ.Host = "localhost"
	}
	if cfg.RabbitMQ.Port == 0 {
		cfg.RabbitMQ.Port = 5672
	}

	// Server
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}

	// JWT: original issues 7-day operator tokens
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 168
	}
	if cfg.JWT.SecretKey == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			// fallback: time-based bytes
			key = []byte(fmt.Sprintf("%d", time.Now().UnixNano()))
		}
		cfg.JWT.SecretKey = base64.StdEncoding.EncodeToString(key)
	}

	// Weather cache window from the original implementation
	if cfg.Weather.CacheMinutes == 0 {
		cfg.Weather.CacheMinutes = 30
	}

	// Tracking
	if cfg.Tracking.OpTimeoutSeconds == 0 {
		cfg.Tracking.OpTimeoutSeconds = 5
	}
}

// validate checks required fields and basic ranges.
func (c *Config) validate() error {
	var problems []string

	// DB
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		problems = append(problems, "database.port must be in 1..65535")
	}
	if c.Database.User == "" {
		problems = append(problems, "database.user is required")
	}
	if c.Database.Password == "" {
		problems = append(problems, "database.password is required")
	}
	if c.Database.Name == "" {
		problems = append(problems, "database.name is required")
	}

	// Redis
	if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
		problems = append(problems, "redis.port must be in 1..65535")
	}

	// RabbitMQ
	if c.RabbitMQ.Port <= 0 || c.RabbitMQ.Port > 65535 {
		problems = append(problems, "rabbitmq.port must be in 1..65535")
	}
	if c.RabbitMQ.User == "" {
		problems = append(problems, "rabbitmq.user is required")
	}
	if c.RabbitMQ.Password == "" {
		problems = append(problems, "rabbitmq.password is required")
	}

	// Server
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, "server.port must be in 1..65535")
	}

	// JWT
	if c.JWT.TTLHours < 0 {
		problems = append(problems, "jwt.ttl_hours cannot be negative")
	}

	// Tracking
	if c.Tracking.OpTimeoutSeconds < 0 {
		problems = append(problems, "tracking.op_timeout_seconds cannot be negative")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
