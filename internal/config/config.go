package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port    string `env:"PORT,     default=8080"`
	Env     string `env:"ENV,      default=development"`
	AppName string `env:"APP_NAME, default=vet-clinic-api"`

	Log   LogConfig
	HTTP  HTTPConfig
	DB    DBConfig
	Redis RedisConfig
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL,  default=info"`
	Format string `env:"LOG_FORMAT, default=json"`
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT,  default=5s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT, default=10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,   default=10s"`
}

// DBConfig: DSN vacío => store en memoria.
type DBConfig struct {
	DSN          string `env:"DB_DSN"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=10"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS, default=5"`
	Migrate      bool   `env:"DB_MIGRATE,        default=true"`
}

// RedisConfig: Addr vacío => sin lock distribuido de turnos.
type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR"`
	DB          int           `env:"REDIS_DB,      default=0"`
	SlotLockTTL time.Duration `env:"SLOT_LOCK_TTL, default=5s"`
}

func (c *Config) Addr() string { return ":" + c.Port }

func (c *Config) UsePostgres() bool { return c.DB.DSN != "" }

func (c *Config) UseRedis() bool { return c.Redis.Addr != "" }

// Load lee un .env opcional (si existe) y luego el entorno del proceso.
// Las variables ya definidas en el entorno ganan sobre el .env.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom permite inyectar el origen de las variables (tests).
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
