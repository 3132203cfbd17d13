// Package config load application configuration from environment variables.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"
	"github.com/sethvargo/go-envconfig"
)

// Config is the whole application configuration.
type Config struct {
	Port        int    `env:"PORT, default=8080"`
	Env         string `env:"APP_ENV, default=development"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`
	SecretKey   string `env:"SECRET_KEY"`
	AllowOrigin string `env:"ALLOW_ORIGIN, default=http://localhost:3000"`

	TokenDuration time.Duration `env:"TOKEN_DURATION, default=1h"`
	RateLimit     uint          `env:"RATE_LIMIT_REQUESTS_PER_SECOND, default=5"`
	MapsAPIKey    string        `env:"GOOGLE_MAPS_API_KEY"`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	DB    DBConfig
	Mail  MailConfig
	Redis RedisConfig

	GCSBucket string `env:"GCS_BUCKET_NAME"`
}

// DBConfig holds the parameters for connecting to PostgreSQL.
type DBConfig struct {
	Host      string `env:"DB_HOST, default=localhost"`
	Port      string `env:"DB_PORT, default=5432"`
	User      string `env:"DB_USERNAME"`
	Password  string `env:"DB_PASSWORD"`
	DBName    string `env:"DB_DATABASE"`
	UseConstr bool   `env:"USE_CONNECTION_STR, default=false"`
	Constr    string `env:"DB_CONNECTION_STR"`
}

// MailConfig holds SMTP settings for the email side channel.
// Email is disabled when Host is empty.
type MailConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"DEFAULT_FROM_EMAIL, default=no-reply@findjob.local"`
	Workers  int    `env:"MAIL_WORKERS, default=2"`
}

// RedisConfig holds Redis settings. Redis is optional and only used when Addr is set.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// AllowOrigins split ALLOW_ORIGIN by comma.
func (c *Config) AllowOrigins() []string {
	origins := []string{}
	for _, o := range strings.Split(c.AllowOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DSN build connection string for PostgreSQL.
func (d DBConfig) DSN() (string, error) {
	if d.UseConstr {
		if d.Constr == "" {
			return "", fmt.Errorf("DB_CONNECTION_STR is empty")
		}
		return d.Constr, nil
	}
	if d.Host == "" || d.Port == "" || d.User == "" || d.Password == "" || d.DBName == "" {
		return "", fmt.Errorf("database configuration is incomplete")
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.DBName), nil
}
