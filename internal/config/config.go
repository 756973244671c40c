package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/forgo/smartwords/internal/database"
	"github.com/forgo/smartwords/internal/logging"
	"github.com/forgo/smartwords/internal/repository"
	"github.com/forgo/smartwords/internal/telemetry"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	SQLite    SQLiteConfig    `mapstructure:"sqlite"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Env             string        `mapstructure:"env"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// StoreConfig selects the set store backend
type StoreConfig struct {
	Backend        string        `mapstructure:"backend"`
	HealthInterval time.Duration `mapstructure:"health_interval"`
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string        `mapstructure:"host"`
	Port      string        `mapstructure:"port"`
	Namespace string        `mapstructure:"namespace"`
	Database  string        `mapstructure:"database"`
	User      string        `mapstructure:"user"`
	Password  string        `mapstructure:"password"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// MongoConfig holds MongoDB connection settings
type MongoConfig struct {
	URI              string        `mapstructure:"uri"`
	Database         string        `mapstructure:"database"`
	ConnectTimeout   time.Duration `mapstructure:"connect_timeout"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// SQLiteConfig holds the SQLite database location
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds tracing settings
type TelemetryConfig struct {
	ServiceName string  `mapstructure:"service_name"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// RateLimitConfig holds per-client rate limiting settings
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// setting ties a config key to its environment variable and default
type setting struct {
	key    string
	env    string
	defval interface{}
}

var settings = []setting{
	{"server.port", "SERVER_PORT", "8080"},
	{"server.env", "SERVER_ENV", "development"},
	{"server.read_timeout", "SERVER_READ_TIMEOUT", 15 * time.Second},
	{"server.write_timeout", "SERVER_WRITE_TIMEOUT", 15 * time.Second},
	{"server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT", 30 * time.Second},
	{"server.allowed_origins", "CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}},

	{"store.backend", "STORE_BACKEND", repository.BackendSurrealDB},
	{"store.health_interval", "STORE_HEALTH_INTERVAL", 30 * time.Second},

	{"database.host", "DB_HOST", "localhost"},
	{"database.port", "DB_PORT", "8000"},
	{"database.namespace", "DB_NAMESPACE", "smartwords"},
	{"database.database", "DB_DATABASE", "main"},
	{"database.user", "DB_USER", "root"},
	{"database.password", "DB_PASSWORD", "root"},
	{"database.timeout", "DB_TIMEOUT", 10 * time.Second},

	{"mongo.uri", "MONGO_URI", "mongodb://localhost:27017"},
	{"mongo.database", "MONGO_DATABASE", "smartwords"},
	{"mongo.connect_timeout", "MONGO_CONNECT_TIMEOUT", 10 * time.Second},
	{"mongo.operation_timeout", "MONGO_OPERATION_TIMEOUT", 5 * time.Second},

	{"sqlite.path", "SQLITE_PATH", "smartwords.db"},

	{"log.level", "LOG_LEVEL", "info"},
	{"log.format", "LOG_FORMAT", logging.FormatJSON},

	{"telemetry.service_name", "OTEL_SERVICE_NAME", "smartwords"},
	{"telemetry.endpoint", "OTEL_ENDPOINT", ""},
	{"telemetry.sample_rate", "OTEL_SAMPLE_RATE", 1.0},

	{"rate_limit.rps", "RATE_LIMIT_RPS", 10.0},
	{"rate_limit.burst", "RATE_LIMIT_BURST", 20},
}

// Load reads configuration with precedence: environment > config file > defaults.
// configFile is optional; when set it must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	for _, s := range settings {
		v.SetDefault(s.key, s.defval)
		if err := v.BindEnv(s.key, s.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", s.env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for i, origin := range cfg.Server.AllowedOrigins {
		cfg.Server.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return &cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Store validation
	switch c.Store.Backend {
	case repository.BackendSurrealDB:
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required"))
		}
		if c.Database.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required"))
		}
		if c.Database.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required"))
		}
	case repository.BackendMongoDB:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGO_URI is required"))
		}
		if c.Mongo.Database == "" {
			errs = append(errs, errors.New("MONGO_DATABASE is required"))
		}
	case repository.BackendSQLite:
		if c.SQLite.Path == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required"))
		}
	case repository.BackendMemory:
		if c.IsProduction() {
			errs = append(errs, errors.New("STORE_BACKEND 'memory' is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be one of %s, got '%s'",
			strings.Join(repository.Backends, ", "), c.Store.Backend))
	}
	if c.Store.HealthInterval <= 0 {
		errs = append(errs, errors.New("STORE_HEALTH_INTERVAL must be positive"))
	}

	// Logging validation
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if !logging.ValidFormat(c.Log.Format) {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got '%s'", c.Log.Format))
	}

	// Telemetry validation
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATE must be between 0 and 1, got %v", c.Telemetry.SampleRate))
	}

	// Rate limit validation
	if c.RateLimit.RPS <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must be positive"))
	}
	if c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SetStoreConfig returns the repository settings for the configured backend
func (c *Config) SetStoreConfig() repository.StoreConfig {
	return repository.StoreConfig{
		Backend: c.Store.Backend,
		SurrealDB: database.Config{
			Host:      c.Database.Host,
			Port:      c.Database.Port,
			User:      c.Database.User,
			Password:  c.Database.Password,
			Namespace: c.Database.Namespace,
			Database:  c.Database.Database,
			Timeout:   c.Database.Timeout,
		},
		MongoDB: database.MongoConfig{
			URI:              c.Mongo.URI,
			Database:         c.Mongo.Database,
			ConnectTimeout:   c.Mongo.ConnectTimeout,
			OperationTimeout: c.Mongo.OperationTimeout,
		},
		SQLitePath: c.SQLite.Path,
	}
}

// LoggingConfig returns the logger settings
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{Level: c.Log.Level, Format: c.Log.Format}
}

// TelemetryConfig returns the tracer provider settings for the given build version
func (c *Config) TelemetryConfig(version string) telemetry.Config {
	return telemetry.Config{
		ServiceName:    c.Telemetry.ServiceName,
		ServiceVersion: version,
		Environment:    c.Server.Env,
		Endpoint:       c.Telemetry.Endpoint,
		SampleRate:     c.Telemetry.SampleRate,
	}
}

// EnvVars lists every environment variable Load reads, in declaration order
func EnvVars() []string {
	out := make([]string, 0, len(settings))
	for _, s := range settings {
		out = append(out, s.env)
	}
	return out
}
