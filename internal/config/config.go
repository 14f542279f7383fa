package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/kinesio/frontdesk/pkg/agenda"
)

// Config carries the CLI and sandbox server settings, loaded from the
// environment with a .env file as fallback.
type Config struct {
	Env         string   `mapstructure:"ENV"`
	Port        string   `mapstructure:"PORT"`
	APIBaseURL  string   `mapstructure:"API_BASE_URL"`
	APIToken    string   `mapstructure:"API_TOKEN"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	DayStart    string `mapstructure:"DAY_START"`
	DayEnd      string `mapstructure:"DAY_END"`
	SlotMinutes int    `mapstructure:"SLOT_MINUTES"`

	HTTPTimeoutSeconds int `mapstructure:"HTTP_TIMEOUT_SECONDS"`
}

// Load reads configuration from the environment, with a .env file as
// fallback. Missing values get defaults suitable for local use.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("API_TOKEN", "demo-recepcionista-token")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DAY_START", "08:00")
	v.SetDefault("DAY_END", "20:00")
	v.SetDefault("SLOT_MINUTES", 15)
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 10)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("PORT")
	v.BindEnv("API_BASE_URL")
	v.BindEnv("API_TOKEN")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("DAY_START")
	v.BindEnv("DAY_END")
	v.BindEnv("SLOT_MINUTES")
	v.BindEnv("HTTP_TIMEOUT_SECONDS")

	// Try reading .env, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the agenda math cannot work with.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.SlotMinutes <= 0 || c.SlotMinutes > 60 {
		return fmt.Errorf("SLOT_MINUTES must be between 1 and 60, got %d", c.SlotMinutes)
	}
	start, err := agenda.HHMMToMinutes(c.DayStart)
	if err != nil {
		return fmt.Errorf("DAY_START must be HH:MM, got %q", c.DayStart)
	}
	end, err := agenda.HHMMToMinutes(c.DayEnd)
	if err != nil {
		return fmt.Errorf("DAY_END must be HH:MM, got %q", c.DayEnd)
	}
	if end <= start {
		return fmt.Errorf("DAY_END %s must be after DAY_START %s", c.DayEnd, c.DayStart)
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive, got %d", c.HTTPTimeoutSeconds)
	}
	return nil
}

// IsDev reports whether the CLI runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}
