package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort     = 2333
	defaultEnv      = "development"
	defaultMongoURI = "mongodb://localhost:27017"
	defaultMongoDB  = "folio"
	defaultRedisURL = "redis://localhost:6379/0"

	// defaultMediaBudgetKB bounds an embedded media artifact when the
	// caller does not specify one.
	defaultMediaBudgetKB = 500
	// defaultUploadLimitMB caps the raw multipart upload body.
	defaultUploadLimitMB = 20
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int         `yaml:"port"`
	Env            string      `yaml:"env"` // "development" | "production"
	Mongo          MongoConfig `yaml:"mongo"`
	RedisURL       string      `yaml:"redis_url"`
	JWTSecret      string      `yaml:"jwt_secret"`
	AllowedOrigins []string    `yaml:"allowed_origins"`
	Media          MediaConfig `yaml:"media"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type MediaConfig struct {
	BudgetKB      int `yaml:"budget_kb"`
	UploadLimitMB int `yaml:"upload_limit_mb"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// Load reads the YAML config file, applying defaults for missing fields.
// A missing file is not an error; the defaults describe a local dev setup.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = defaultMongoURI
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = defaultMongoDB
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = defaultRedisURL
	}
	if cfg.Media.BudgetKB == 0 {
		cfg.Media.BudgetKB = defaultMediaBudgetKB
	}
	if cfg.Media.UploadLimitMB == 0 {
		cfg.Media.UploadLimitMB = defaultUploadLimitMB
	}
}

func validate(cfg *AppConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.Env != "development" && cfg.Env != "production" {
		return fmt.Errorf("invalid env %q", cfg.Env)
	}
	if !cfg.IsDev() && cfg.JWTSecret == "" {
		return errors.New("jwt_secret is required in production")
	}
	if cfg.Media.BudgetKB < 1 {
		return fmt.Errorf("invalid media budget %d KB", cfg.Media.BudgetKB)
	}
	return nil
}
