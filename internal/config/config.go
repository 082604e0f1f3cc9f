package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pet_discovery/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "PETMAP"

type Config struct {
	Port      string          `mapstructure:"port"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	WS        WSConfig        `mapstructure:"ws"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type DiscoveryConfig struct {
	PageSize    int           `mapstructure:"page_size"`
	// SessionIdle unmounts views with no calls for this long; 0 keeps them until unmounted.
	SessionIdle time.Duration `mapstructure:"session_idle"`
}

// RedisConfig enables the company snapshot cache when Addr is set.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// WSConfig lists origins allowed to open the map bridge socket; empty allows all.
type WSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("db.path", "app.db")
	v.SetDefault("discovery.page_size", 6)
	v.SetDefault("discovery.session_idle", 30*time.Minute)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("ws.allowed_origins", []string{})
}

// Load reads .env (if present), then config.yml from the given directories (default "configs"),
// then PETMAP_* environment overrides. A missing config file is not an error.
func Load(dirs ...string) (Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(dirs) == 0 {
		dirs = []string{"configs"}
	}
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Discovery.PageSize < 1 {
		return fmt.Errorf("discovery.page_size must be positive, got %d", c.Discovery.PageSize)
	}
	if c.Discovery.SessionIdle < 0 {
		return fmt.Errorf("discovery.session_idle must not be negative, got %s", c.Discovery.SessionIdle)
	}
	lvl, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	c.Log.Level = lvl
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}
