package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix namespaces environment overrides, e.g. PATHFINDER_DB_PATH.
const EnvPrefix = "PATHFINDER"

type RegistryConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type ResolverConfig struct {
	FallbackPathwayID string `mapstructure:"fallback_pathway_id"`
}

type TraceConfig struct {
	Capacity int `mapstructure:"capacity"`
}

type LogConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

type ProgressConfig struct {
	Workers int `mapstructure:"workers"`
}

// Config holds all runtime configuration.
// Values are populated from .pathfinder.yaml, PATHFINDER_* env vars, and CLI flags.
type Config struct {
	DBPath   string         `mapstructure:"db_path"`
	SeedPath string         `mapstructure:"seed_path"`
	User     string         `mapstructure:"user"`
	Registry RegistryConfig `mapstructure:"registry"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Trace    TraceConfig    `mapstructure:"trace"`
	Log      LogConfig      `mapstructure:"log"`
	Progress ProgressConfig `mapstructure:"progress"`
}

// DefaultDBPath returns ~/.pathfinder/pathfinder.db, or a relative path
// when the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".pathfinder", "pathfinder.db")
	}
	return filepath.Join(home, ".pathfinder", "pathfinder.db")
}

// SetDefaults registers built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db_path", DefaultDBPath())
	v.SetDefault("seed_path", "")
	v.SetDefault("user", "default")
	v.SetDefault("registry.cache_ttl", 5*time.Minute)
	v.SetDefault("resolver.fallback_pathway_id", "img-service")
	v.SetDefault("trace.capacity", 256)
	v.SetDefault("log.mode", "dev")
	v.SetDefault("log.level", "warn")
	v.SetDefault("progress.workers", 4)
}

// Init points v at the config file and environment. An explicit cfgFile must
// exist; otherwise .pathfinder.yaml is looked up in the working directory and
// the home directory, and its absence is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".pathfinder")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load applies defaults and decodes v into a Config.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges. All problems are reported together.
func (c Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path must not be empty"))
	}
	if c.Registry.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("registry.cache_ttl must not be negative, got %s", c.Registry.CacheTTL))
	}
	if c.Trace.Capacity < 1 {
		errs = append(errs, fmt.Errorf("trace.capacity must be positive, got %d", c.Trace.Capacity))
	}
	if c.Progress.Workers < 1 {
		errs = append(errs, fmt.Errorf("progress.workers must be positive, got %d", c.Progress.Workers))
	}
	switch strings.ToLower(c.Log.Mode) {
	case "dev", "development", "prod", "production":
	default:
		errs = append(errs, fmt.Errorf("log.mode: unknown value %q", c.Log.Mode))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
