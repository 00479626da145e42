package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Session store kinds
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config represents the complete server configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Session  SessionConfig  `toml:"session"`
	Redis    RedisConfig    `toml:"redis"`
	Auth     AuthConfig     `toml:"auth"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Port        int      `toml:"port"`
	APIPrefix   string   `toml:"api_prefix"`
	CORSOrigins []string `toml:"cors_origins"`
}

// DatabaseConfig contains the Postgres connection string
type DatabaseConfig struct {
	URL string `toml:"url"`
}

// SessionConfig contains session cookie and store settings
type SessionConfig struct {
	Secret        string   `toml:"secret"`
	TTL           Duration `toml:"ttl"`
	CookieName    string   `toml:"cookie_name"`
	CookieSecure  bool     `toml:"cookie_secure"`
	Store         string   `toml:"store"`
	SweepInterval Duration `toml:"sweep_interval"`
}

// RedisConfig contains the shared session store connection
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// AuthConfig contains credential and gate settings
type AuthConfig struct {
	BcryptCost       int  `toml:"bcrypt_cost"`
	StrictTenantAuth bool `toml:"strict_tenant_auth"`
	SeedDefaultOwner bool `toml:"seed_default_owner"`
}

// LogConfig contains logger settings
type LogConfig struct {
	Level string `toml:"level"`
	Dev   bool   `toml:"dev"`
}

// Duration decodes TOML strings such as "24h" or "10m"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when neither file nor environment
// say otherwise.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        5000,
			APIPrefix:   "/api",
			CORSOrigins: []string{"http://localhost:5173"},
		},
		Session: SessionConfig{
			TTL:           Duration{24 * time.Hour},
			CookieName:    "pgmaint.sid",
			Store:         StoreMemory,
			SweepInterval: Duration{10 * time.Minute},
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Auth: AuthConfig{
			BcryptCost:       bcrypt.DefaultCost,
			SeedDefaultOwner: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the optional TOML file at path
// and finally the environment. A .env file in the working directory is
// loaded first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid integer %q", key, v))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid boolean %q", key, v))
				return
			}
			*dst = b
		}
	}
	duration := func(key string, dst *Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid duration %q", key, v))
				return
			}
			dst.Duration = d
		}
	}

	integer("PORT", &c.Server.Port)
	str("API_PREFIX", &c.Server.APIPrefix)
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	str("DATABASE_URL", &c.Database.URL)
	str("SESSION_SECRET", &c.Session.Secret)
	duration("SESSION_TTL", &c.Session.TTL)
	str("SESSION_COOKIE_NAME", &c.Session.CookieName)
	boolean("SESSION_COOKIE_SECURE", &c.Session.CookieSecure)
	str("SESSION_STORE", &c.Session.Store)
	duration("SESSION_SWEEP_INTERVAL", &c.Session.SweepInterval)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	integer("REDIS_DB", &c.Redis.DB)
	integer("BCRYPT_COST", &c.Auth.BcryptCost)
	boolean("STRICT_TENANT_AUTH", &c.Auth.StrictTenantAuth)
	boolean("SEED_DEFAULT_OWNER", &c.Auth.SeedDefaultOwner)
	str("LOG_LEVEL", &c.Log.Level)
	boolean("LOG_DEV", &c.Log.Dev)

	c.Session.Store = strings.ToLower(strings.TrimSpace(c.Session.Store))
	return errors.Join(errs...)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports every setting that would prevent the server from starting.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Database.URL) == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Server.Port))
	}
	if c.Session.TTL.Duration <= 0 {
		errs = append(errs, errors.New("session TTL must be positive"))
	}
	if c.Session.SweepInterval.Duration <= 0 {
		errs = append(errs, errors.New("session sweep interval must be positive"))
	}
	switch c.Session.Store {
	case StoreMemory, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown session store %q", c.Session.Store))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost %d outside [%d, %d]", c.Auth.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	return errors.Join(errs...)
}
