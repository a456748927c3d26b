package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	ServerURL        string        `mapstructure:"server_url" validate:"required,url"`
	MaxDuration      time.Duration `mapstructure:"max_duration" validate:"gt=0"`
	NoticeTTL        time.Duration `mapstructure:"notice_ttl" validate:"gt=0"`
	FlashTTL         time.Duration `mapstructure:"flash_ttl" validate:"gt=0"`
	FragmentInterval time.Duration `mapstructure:"fragment_interval" validate:"gt=0"`
	SampleRate       int           `mapstructure:"sample_rate" validate:"oneof=8000 12000 16000 24000 48000"`
	LogLevel         string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFile          string        `mapstructure:"log_file" validate:"required"`

	// Development endpoint.
	ListenAddr   string `mapstructure:"listen_addr" validate:"required"`
	Backend      string `mapstructure:"backend" validate:"oneof=echo gemini openai"`
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required_if=Backend gemini"`
	GeminiModel  string `mapstructure:"gemini_model"`
	OpenAIAPIKey string `mapstructure:"openai_api_key" validate:"required_if=Backend openai"`
}

var defaults = map[string]any{
	"server_url":        "http://localhost:8000",
	"max_duration":      "60s",
	"notice_ttl":        "5s",
	"flash_ttl":         "4s",
	"fragment_interval": "1s",
	"sample_rate":       48000,
	"log_level":         "info",
	"log_file":          "voxnote.log",
	"listen_addr":       ":8000",
	"backend":           "echo",
	"gemini_model":      "gemini-1.5-flash",
}

func SetDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// Load reads the merged viper state into a validated Config.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the given keys on top of the current values to path.
func Save(v *viper.Viper, path string, values map[string]any) error {
	for key, value := range values {
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
