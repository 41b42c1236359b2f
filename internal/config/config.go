// Package config loads and saves vitrine configuration: where the
// study feed lives, how leads reach us, and how the gallery looks.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all vitrine configuration.
type Config struct {
	// Feed is the CSV study catalog source.
	Feed FeedConfig `yaml:"feed"`

	// Contact is where full-study requests go.
	Contact ContactConfig `yaml:"contact"`

	// Booking is the external calendar service, optional.
	Booking BookingConfig `yaml:"booking"`

	// UI settings
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// FeedConfig points at the spreadsheet CSV export.
type FeedConfig struct {
	URL string `yaml:"url"`
}

// ContactConfig configures the outbound mail artifact.
type ContactConfig struct {
	Email string `yaml:"email"`
}

// BookingConfig configures the calendar-booking service. An empty URL
// is a normal state, not an error: the gallery renders a confirmation
// fallback instead of a calendar.
type BookingConfig struct {
	URL string `yaml:"url"`
}

// Configured returns the booking endpoint and whether one is set.
// Callers must branch on the bool; there is no sentinel value to
// compare against.
func (b BookingConfig) Configured() (string, bool) {
	u := strings.TrimSpace(b.URL)
	return u, u != ""
}

// UIConfig configures the gallery appearance.
type UIConfig struct {
	Theme string `yaml:"theme"` // auto, dark, light
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration. The feed URL is
// deliberately empty: an unset feed degrades to an empty gallery
// rather than pointing at someone else's spreadsheet.
func DefaultConfig() *Config {
	return &Config{
		Feed:    FeedConfig{URL: ""},
		Contact: ContactConfig{Email: ""},
		Booking: BookingConfig{URL: ""},
		UI:      UIConfig{Theme: "auto"},
		Logging: LoggingConfig{
			Level: "info",
			File:  "vitrine.log",
		},
	}
}

// DefaultPath returns the standard config location,
// ~/.vitrine/config.yaml, falling back to the working directory when
// the home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".vitrine", "config.yaml")
	}
	return filepath.Join(home, ".vitrine", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults without error; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating the directory
// if needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies VITRINE_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("VITRINE_FEED_URL"); v != "" {
		c.Feed.URL = v
	}
	if v := os.Getenv("VITRINE_CONTACT_EMAIL"); v != "" {
		c.Contact.Email = v
	}
	if v := os.Getenv("VITRINE_BOOKING_URL"); v != "" {
		c.Booking.URL = v
	}
	if v := os.Getenv("VITRINE_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("VITRINE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("VITRINE_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "dark", "light"}

// Validate checks the configuration for values that would misbehave
// later. Empty optional values are fine; set values must parse.
func (c *Config) Validate() error {
	if c.Feed.URL != "" {
		if _, err := url.Parse(c.Feed.URL); err != nil {
			return fmt.Errorf("invalid feed URL: %w", err)
		}
	}
	if b, ok := c.Booking.Configured(); ok {
		if _, err := url.Parse(b); err != nil {
			return fmt.Errorf("invalid booking URL: %w", err)
		}
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}

	return nil
}
