package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"
)

// Deployment modes
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
	ModeTest        = "test"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
)

// DefaultConfigPath is read when CONFIG_PATH is not set.
const DefaultConfigPath = "configs/config.yaml"

// sqliteParams are always present on a SQLite DSN: foreign keys back the
// cascade rules, immediate transactions serialize writers.
var sqliteParams = []string{"_foreign_keys=1", "_txlock=immediate", "_busy_timeout=5000"}

// SeedCourse is a course created at start when seeding is enabled.
type SeedCourse struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port      string `yaml:"port" env:"SERVER_PORT"`
		Mode      string `yaml:"mode" env:"SERVER_MODE"`
		RateLimit struct {
			RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
			Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
		} `yaml:"rate_limit"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		URL             string `yaml:"url" env:"DATABASE_URL"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		Path            string `yaml:"path" env:"DB_PATH"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		AcquireTimeout  string `yaml:"acquire_timeout" env:"DB_ACQUIRE_TIMEOUT"`
		TraceSQL        bool   `yaml:"trace_sql" env:"DB_TRACE_SQL"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Seed struct {
		Enabled bool         `yaml:"enabled" env:"SEED_ENABLED"`
		Courses []SeedCourse `yaml:"courses"`
	} `yaml:"seed"`
}

// Path returns the config file location, honouring CONFIG_PATH.
func Path() string {
	if p, ok := os.LookupEnv("CONFIG_PATH"); ok && p != "" {
		return p
	}
	return DefaultConfigPath
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = ModeDevelopment
	config.Server.RateLimit.RequestsPerSecond = 50
	config.Server.RateLimit.Burst = 100
	config.Server.ShutdownTimeout = "10s"

	config.Database.Driver = DriverPostgres
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "registrar"
	config.Database.SSLMode = "disable"
	config.Database.Path = "registrar.db"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.AcquireTimeout = "3s"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func validateConfig(config *Config) error {
	switch config.Server.Mode {
	case ModeDevelopment, ModeProduction, ModeTest:
	default:
		return fmt.Errorf("unknown server mode %q", config.Server.Mode)
	}

	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	switch config.Database.Driver {
	case DriverPostgres, DriverMySQL:
		if config.Database.URL == "" && config.Database.Host == "" {
			return fmt.Errorf("database url or host is required")
		}
		if config.Database.Driver == DriverMySQL {
			if _, err := config.mysqlConfig(); err != nil {
				return fmt.Errorf("invalid mysql database url: %w", err)
			}
		}
	case DriverSQLite:
		if config.Database.URL == "" && config.Database.Path == "" {
			return fmt.Errorf("database url or path is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database max_open_conns must be positive")
	}

	durations := map[string]string{
		"database.conn_max_lifetime": config.Database.ConnMaxLifetime,
		"database.acquire_timeout":   config.Database.AcquireTimeout,
		"server.shutdown_timeout":    config.Server.ShutdownTimeout,
	}
	for key, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", key, err)
		}
	}

	if config.Server.RateLimit.RequestsPerSecond < 0 || config.Server.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}

	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Mode == ModeProduction
}

// BindAddress is the listen address: all interfaces in production,
// loopback otherwise.
func (c *Config) BindAddress() string {
	host := "127.0.0.1"
	if c.IsProduction() {
		host = "0.0.0.0"
	}
	return net.JoinHostPort(host, c.Server.Port)
}

// DSN returns the connection string for the configured driver.
// DATABASE_URL takes precedence over the individual parts.
func (c *Config) DSN() string {
	switch c.Database.Driver {
	case DriverSQLite:
		return c.sqliteDSN()
	case DriverMySQL:
		cfg, err := c.mysqlConfig()
		if err != nil {
			return c.Database.URL
		}
		return cfg.FormatDSN()
	default:
		return c.GetPostgresConnectionString()
	}
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(c.Database.User),
		url.QueryEscape(c.Database.Password),
		net.JoinHostPort(c.Database.Host, c.Database.Port),
		c.Database.DBName,
		sslMode,
	)
}

// mysqlConfig always sets ParseTime: the repositories scan TIMESTAMP columns
// into time values.
func (c *Config) mysqlConfig() (*mysql.Config, error) {
	var cfg *mysql.Config
	if c.Database.URL != "" {
		parsed, err := mysql.ParseDSN(c.Database.URL)
		if err != nil {
			return nil, err
		}
		cfg = parsed
	} else {
		cfg = mysql.NewConfig()
		cfg.User = c.Database.User
		cfg.Passwd = c.Database.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(c.Database.Host, c.Database.Port)
		cfg.DBName = c.Database.DBName
	}
	cfg.ParseTime = true
	return cfg, nil
}

func (c *Config) sqliteDSN() string {
	dsn := c.Database.URL
	if dsn == "" {
		dsn = "file:" + c.Database.Path
	}

	for _, param := range sqliteParams {
		name := param[:strings.Index(param, "=")+1]
		if strings.Contains(dsn, name) {
			continue
		}
		if strings.Contains(dsn, "?") {
			dsn += "&" + param
		} else {
			dsn += "?" + param
		}
	}
	return dsn
}

// AcquireTimeout bounds the wait for a pooled connection.
func (c *Config) AcquireTimeout() time.Duration {
	return parseDuration(c.Database.AcquireTimeout, 3*time.Second)
}

// ConnMaxLifetime is the maximum age of a pooled connection.
func (c *Config) ConnMaxLifetime() time.Duration {
	return parseDuration(c.Database.ConnMaxLifetime, time.Hour)
}

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
