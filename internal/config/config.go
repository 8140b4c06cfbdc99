package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Log      struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	CORS struct {
		MaxAge int `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

// Database describes how to reach the relational store.
type Database struct {
	URL            string        `mapstructure:"url"`
	Schema         string        `mapstructure:"schema"`
	MaxOpenConns   int           `mapstructure:"max_open_conns"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// Driver picks the SQL driver from the URL scheme. Anything that is not a
// postgres URL is treated as a sqlite path.
func (d Database) Driver() string {
	lower := strings.ToLower(strings.TrimSpace(d.URL))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// DSN returns the connection string in the form the selected driver expects.
func (d Database) DSN() string {
	dsn := strings.TrimSpace(d.URL)
	if d.Driver() == DriverSQLite {
		dsn = strings.TrimPrefix(dsn, "sqlite://")
	}
	return dsn
}

// Validate reports configuration that would prevent the server from starting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return errors.New("database url is required (STOREFRONT_DATABASE_URL or DATABASE_URL)")
	}
	if dsn := c.Database.DSN(); c.Database.Driver() == DriverSQLite && !strings.HasPrefix(dsn, "file:") && strings.Contains(dsn, "://") {
		return fmt.Errorf("unsupported database url scheme in %q", c.Database.URL)
	}
	if c.Database.Driver() == DriverSQLite && c.Database.DSN() == "" {
		return errors.New("sqlite database path is empty")
	}
	if c.Database.Schema != "" && c.Database.Driver() != DriverPostgres {
		return errors.New("database schema is only supported for postgres")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.CORS.MaxAge < 0 {
		return errors.New("cors max age must not be negative")
	}
	return nil
}

// Load reads configuration from environment variables and optional config files.
// An empty configFile means "look for config.* in the working directory".
func Load(configFile string) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.url", "")
	v.SetDefault("database.schema", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.connect_timeout", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cors.max_age", 86400)

	// DATABASE_URL is what the hosting platform injects
	if err := v.BindEnv("database.url", "STOREFRONT_DATABASE_URL", "DATABASE_URL"); err != nil {
		return Config{}, fmt.Errorf("bind database url env: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // optional file
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// loadDotEnv exports variables from path that are not already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if err := gotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
