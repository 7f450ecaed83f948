package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/meddetector/credential-gateway/internal/core/domain"
)

// LegacySecret is the signing secret used when JWT_SECRET is unset outside production.
const LegacySecret = "supersecretkey"

var ErrMissingSecret = errors.New("config: JWT_SECRET or SECRET_KEY is required in production")

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	// SecretKey is the older name for the signing secret, read when JWT_SECRET is unset.
	SecretKey string `env:"SECRET_KEY"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	HashWorkers int `env:"HASH_WORKERS, default=0"`
	BcryptCost  int `env:"BCRYPT_COST,  default=0"`

	CORSOrigins []string          `env:"CORS_ORIGINS, default=*"`
	AdminSeed   map[string]string `env:"ADMIN_SEED"`

	Mongo MongoConfig
	Redis RedisConfig

	// InsecureSecret is set when LegacySecret was substituted for an empty JWT_SECRET.
	InsecureSecret bool
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=med_detector"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith resolves configuration from the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = cfg.SecretKey
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingSecret
		}
		cfg.JWTSecret = LegacySecret
		cfg.InsecureSecret = true
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Seeds returns the administrator bootstrap list ordered by username.
// An empty ADMIN_SEED yields the built-in list.
func (c *Config) Seeds() []domain.SeedAdmin {
	if len(c.AdminSeed) == 0 {
		return domain.DefaultAdmins
	}

	names := make([]string, 0, len(c.AdminSeed))
	for name := range c.AdminSeed {
		names = append(names, name)
	}
	sort.Strings(names)

	seeds := make([]domain.SeedAdmin, 0, len(names))
	for _, name := range names {
		seeds = append(seeds, domain.SeedAdmin{
			Username: strings.TrimSpace(name),
			Password: c.AdminSeed[name],
		})
	}
	return seeds
}
