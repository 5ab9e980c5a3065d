package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the account service configuration, read from the environment.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Token     TokenConfig
	Signature SignatureConfig
	Activity  ActivityConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type TokenConfig struct {
	Secret string        `env:"JWT_SECRET,   required"`
	TTL    time.Duration `env:"TOKEN_TTL,    default=1h"`
	Issuer string        `env:"TOKEN_ISSUER, default=account-service"`
}

type SignatureConfig struct {
	Secret  string        `env:"SERVERLESS_SECRET_KEY,  required"`
	MaxSkew time.Duration `env:"SIGNATURE_MAX_SKEW,     default=300s"`
	// Audience is this backend's public base URL, as the serverless caller sees it.
	Audience    string `env:"SIGNATURE_AUDIENCE,     required"`
	Header      string `env:"SIGNATURE_HEADER,       default=serverlessSignature"`
	ReplayGuard bool   `env:"SIGNATURE_REPLAY_GUARD, default=false"`
}

type ActivityConfig struct {
	Workers int `env:"ACTIVITY_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017/?replicaSet=rs0"`
	Database string `env:"MONGO_DB,  default=accounts"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := process(ctx, &cfg, l); err != nil {
		return nil, err
	}
	if cfg.Token.TTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive, got %s", cfg.Token.TTL)
	}
	if cfg.Signature.MaxSkew <= 0 {
		return nil, fmt.Errorf("config: SIGNATURE_MAX_SKEW must be positive, got %s", cfg.Signature.MaxSkew)
	}
	return &cfg, nil
}

// FunctionConfig configures the serverless user-listing function.
type FunctionConfig struct {
	Port       string `env:"PORT,                  default=7071"`
	Env        string `env:"ENV,                   default=development"`
	LogLevel   string `env:"LOG_LEVEL,             default=info"`
	BackendURL string `env:"BACKEND_URL,           required"`
	Secret     string `env:"SERVERLESS_SECRET_KEY, required"`
	// Timeout bounds the call to the backend.
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

// LoadFunction reads the serverless function configuration.
func LoadFunction(ctx context.Context, l envconfig.Lookuper) (*FunctionConfig, error) {
	var cfg FunctionConfig
	if err := process(ctx, &cfg, l); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func process(ctx context.Context, target any, l envconfig.Lookuper) error {
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: target, Lookuper: l}); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
