package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is read once at process start and handed to everything that needs it.
type Config struct {
	HTTPAddr       string        `env:"VAPP_HTTP_ADDR"       envDefault:":8080"`
	DBDriver       string        `env:"VAPP_DB_DRIVER"       envDefault:"sqlite"`
	DBDSN          string        `env:"VAPP_DB_DSN"          envDefault:"vapp.db"`
	JWTSecret      string        `env:"VAPP_JWT_SECRET"      envDefault:"CHANGE_ME"`
	TokenTTL       time.Duration `env:"VAPP_TOKEN_TTL"       envDefault:"168h"`
	SessionCookie  string        `env:"VAPP_SESSION_COOKIE"  envDefault:"t"`
	SecureCookie   bool          `env:"VAPP_SECURE_COOKIE"   envDefault:"false"`
	UploadDir      string        `env:"VAPP_UPLOAD_DIR"      envDefault:"uploads"`
	StaticDir      string        `env:"VAPP_STATIC_DIR"      envDefault:"static"`
	TimeZone       string        `env:"VAPP_TIMEZONE"        envDefault:"Local"`
	LogLevel       string        `env:"VAPP_LOG_LEVEL"       envDefault:"info"`
	LogFormat      string        `env:"VAPP_LOG_FORMAT"      envDefault:"text"`
	BcryptCost     int           `env:"VAPP_BCRYPT_COST"`
	TemplateReload bool          `env:"VAPP_TEMPLATE_RELOAD" envDefault:"false"`

	location *time.Location
}

// Load reads env files into the process environment and then parses it.
// With no files given, a missing .env is ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(nil)
}

// FromEnv parses configuration from the process environment, or from
// overrides when non-nil.
func FromEnv(overrides map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{}
	if overrides != nil {
		opts.Environment = overrides
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings and resolves the time zone.
func (c *Config) Validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	if strings.TrimSpace(c.DBDSN) == "" {
		return fmt.Errorf("database dsn is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}
	if strings.TrimSpace(c.SessionCookie) == "" {
		return fmt.Errorf("session cookie name is required")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range", c.BcryptCost)
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", c.TimeZone, err)
	}
	c.location = loc
	return nil
}

// Location is the zone attendance days and the late cutoff are evaluated in.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// NewLogger builds the application logger described by LogLevel and LogFormat.
func (c *Config) NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
