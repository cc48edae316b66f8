package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, redis address, etc.)
// - default: Values common across all environments (timezone, limits, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Garage    GarageConfig
	CORS      CORSConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
	Relay     RelayConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type GarageConfig struct {
	Capacity     int `envconfig:"GARAGE_CAPACITY" default:"100"`
	HistoryLimit int `envconfig:"GARAGE_HISTORY_LIMIT" default:"64"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type RateLimitConfig struct {
	Enabled      bool          `envconfig:"RATE_ENABLED" default:"false"`
	RPS          float64       `envconfig:"RATE_RPS" default:"10"`
	Burst        int           `envconfig:"RATE_BURST" default:"20"`
	IdleTTL      time.Duration `envconfig:"RATE_IDLE_TTL" default:"15m"`
	CleanupEvery time.Duration `envconfig:"RATE_CLEANUP_EVERY" default:"2m"`
}

const (
	AuditBackendMemory = "memory"
	AuditBackendRedis  = "redis"
)

type AuditConfig struct {
	Backend       string        `envconfig:"AUDIT_BACKEND" default:"memory"`
	RedisAddr     string        `envconfig:"AUDIT_REDIS_ADDR"`
	RedisPassword string        `envconfig:"AUDIT_REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"AUDIT_REDIS_DB" default:"0"`
	Prefix        string        `envconfig:"AUDIT_PREFIX" default:"garage:audit"`
	TTL           time.Duration `envconfig:"AUDIT_TTL" default:"24h"`
	HistoryLimit  int           `envconfig:"AUDIT_HISTORY_LIMIT" default:"1000"`
}

type RelayConfig struct {
	Enabled     bool   `envconfig:"RELAY_ENABLED" default:"false"`
	ListenAddr  string `envconfig:"RELAY_LISTEN_ADDR" default:"127.0.0.1:9000"`
	Destination string `envconfig:"RELAY_DESTINATION"`
}

func (c Config) Validate() error {
	if c.Garage.Capacity <= 0 {
		return fmt.Errorf("GARAGE_CAPACITY must be > 0, got %d", c.Garage.Capacity)
	}
	switch strings.ToLower(c.Audit.Backend) {
	case AuditBackendMemory:
	case AuditBackendRedis:
		if strings.TrimSpace(c.Audit.RedisAddr) == "" {
			return fmt.Errorf("AUDIT_REDIS_ADDR is required when AUDIT_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown AUDIT_BACKEND %q", c.Audit.Backend)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("RATE_RPS and RATE_BURST must be > 0 when RATE_ENABLED=true")
	}
	if c.Relay.Enabled && strings.TrimSpace(c.Relay.Destination) == "" {
		return fmt.Errorf("RELAY_DESTINATION is required when RELAY_ENABLED=true")
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Garage: GarageConfig{
			Capacity:     10,
			HistoryLimit: 8,
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
		Audit: AuditConfig{
			Backend:      AuditBackendMemory,
			Prefix:       "garage:test",
			HistoryLimit: 16,
		},
	}
}
