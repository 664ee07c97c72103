package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"prefdiff/internal/logger"
	"prefdiff/internal/validator"
)

// AppName is the base name used for config search paths and log files.
const AppName = "prefdiff"

// Config is the full application configuration.
type Config struct {
	Capture CaptureConfig `mapstructure:"capture"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     logger.Config `mapstructure:"log"`
}

// CaptureConfig controls how snapshots are acquired.
type CaptureConfig struct {
	// Tool is the defaults binary to invoke.
	Tool string `mapstructure:"tool" validate:"required"`
	// DomainTimeout bounds a single domain export; slow or wedged
	// domains are skipped, not waited on.
	DomainTimeout time.Duration `mapstructure:"domain_timeout" validate:"min=100ms"`
	// Concurrency is the number of parallel domain exports.
	Concurrency int `mapstructure:"concurrency" validate:"min=1,max=64"`
	// IncludeGlobalDomain adds NSGlobalDomain, which `defaults domains`
	// does not list.
	IncludeGlobalDomain bool `mapstructure:"include_global_domain"`
	// ExcludeDomains holds glob patterns for domains to skip entirely.
	ExcludeDomains []string `mapstructure:"exclude_domains" validate:"dive,glob"`
}

// UIConfig controls terminal UI behavior.
type UIConfig struct {
	// StatusTTL is how long a status message stays visible.
	StatusTTL time.Duration `mapstructure:"status_ttl" validate:"min=0"`
	// PreviewMaxWidth caps the command preview line length in cells.
	PreviewMaxWidth int `mapstructure:"preview_max_width" validate:"min=20"`
}

// Load reads configuration from the given file, or from the standard
// search paths when path is empty. A missing config file is not an error;
// defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(AppName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", AppName))
		}
		v.AddConfigPath("/etc/" + AppName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaults(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults fills in zero-valued fields.
func setDefaults(cfg *Config) {
	if cfg.Capture.Tool == "" {
		cfg.Capture.Tool = "defaults"
	}
	if cfg.Capture.DomainTimeout == 0 {
		cfg.Capture.DomainTimeout = 10 * time.Second
	}
	if cfg.Capture.Concurrency == 0 {
		cfg.Capture.Concurrency = 4
	}
	if cfg.UI.StatusTTL == 0 {
		cfg.UI.StatusTTL = 3 * time.Second
	}
	if cfg.UI.PreviewMaxWidth == 0 {
		cfg.UI.PreviewMaxWidth = 120
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.File == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Log.File = filepath.Join(home, ".local", "state", AppName, AppName+".log")
		}
	}
	if cfg.Log.MaxSize == 0 {
		cfg.Log.MaxSize = 10
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
	if cfg.Log.MaxAge == 0 {
		cfg.Log.MaxAge = 28
	}
}
