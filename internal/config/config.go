package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GODMM_LOGGING_LEVEL.
const EnvPrefix = "GODMM"

// Output formats accepted by the CLI.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputText = "text"
)

// LumberjackConfig configures the rotating log file.
type LumberjackConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// LoggingConfig holds log level and output settings.
type LoggingConfig struct {
	Level  string           `mapstructure:"level"`
	Format string           `mapstructure:"format"`
	File   LumberjackConfig `mapstructure:"file"`
}

// Config is the analyzer configuration.
type Config struct {
	Protocol string        `mapstructure:"protocol"`
	Output   string        `mapstructure:"output"`
	Logging  LoggingConfig `mapstructure:"logging"`
}

// Load reads configuration from path, or searches ./godmm.* and
// $HOME/.config/godmm/godmm.* when path is empty. A missing file found by
// search is not an error; defaults and environment overrides still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/godmm")
		v.SetConfigName("godmm")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown output formats.
func (c *Config) Validate() error {
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	switch c.Output {
	case OutputJSON, OutputYAML, OutputText:
		return nil
	default:
		return fmt.Errorf("config: unsupported output %q (want json, yaml or text)", c.Output)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("protocol", "dtm0660")
	v.SetDefault("output", OutputJSON)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file.filename", "")
	v.SetDefault("logging.file.maxSize", 10)
	v.SetDefault("logging.file.maxBackups", 3)
	v.SetDefault("logging.file.maxAge", 28)
	v.SetDefault("logging.file.compress", false)
}
