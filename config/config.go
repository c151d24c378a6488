package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SPEECH_TRANSCRIPTION_PROVIDER.
const EnvPrefix = "SPEECH"

type Service struct {
	URL string `mapstructure:"url" yaml:"url"`
}

type Transcription struct {
	Provider       string `mapstructure:"provider" yaml:"provider"`
	URL            string `mapstructure:"url" yaml:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

type Analysis struct {
	FallacyDetection bool `mapstructure:"fallacy_detection" yaml:"fallacy_detection"`
}

type Root struct {
	App struct {
		Name      string `mapstructure:"name" yaml:"name"`
		Version   string `mapstructure:"version" yaml:"version"`
		LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
		LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	} `mapstructure:"app" yaml:"app"`
	Transcription Transcription `mapstructure:"transcription" yaml:"transcription"`
	Analysis      Analysis      `mapstructure:"analysis" yaml:"analysis"`
	Visualization Service       `mapstructure:"visualization" yaml:"visualization"`
	Paths         struct {
		Outputs  string `mapstructure:"outputs" yaml:"outputs"`
		Database string `mapstructure:"database" yaml:"database"`
	} `mapstructure:"paths" yaml:"paths"`
}

var defaults = map[string]any{
	"app.name":                      "speech-mastery",
	"app.version":                   "0.1.0",
	"app.log_level":                 "info",
	"app.log_format":                "text",
	"transcription.provider":        "mock",
	"transcription.url":             "",
	"transcription.timeout_seconds": 60,
	"analysis.fallacy_detection":    false,
	"visualization.url":             "",
	"paths.outputs":                 "outputs",
	"paths.database":                "outputs/history.db",
}

// Load reads configuration into v. With an empty file it looks for
// config/<CONFIG_ENV>/config.yaml, then ./config.yaml, and falls back to
// defaults when neither exists. SPEECH_* environment variables override both.
func Load(v *viper.Viper, file string) (*Root, error) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		file = findFile()
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findFile() string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	guess := []string{
		filepath.Join("config", env, "config.yaml"),
		"config.yaml",
	}
	for _, p := range guess {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks the settings the commands depend on.
func (c *Root) Validate() error {
	var errs []error
	switch c.Transcription.Provider {
	case "mock":
	case "http":
		if c.Transcription.URL == "" {
			errs = append(errs, errors.New("transcription.url is required for the http provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("transcription.provider %q is not one of mock, http", c.Transcription.Provider))
	}
	if c.Transcription.TimeoutSeconds < 0 {
		errs = append(errs, errors.New("transcription.timeout_seconds must not be negative"))
	}
	switch c.App.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("app.log_format %q is not one of text, json", c.App.LogFormat))
	}
	if c.Paths.Outputs == "" {
		errs = append(errs, errors.New("paths.outputs must be set"))
	}
	if c.Paths.Database == "" {
		errs = append(errs, errors.New("paths.database must be set"))
	}
	return errors.Join(errs...)
}

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
