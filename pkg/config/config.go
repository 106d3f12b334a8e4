// Package config loads sketchflow settings from defaults, an optional TOML
// file and SKETCHFLOW_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/papercomputeco/sketchflow/pkg/placeholder"
	"github.com/papercomputeco/sketchflow/pkg/tour"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "sketchflow.toml"

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SKETCHFLOW_"

// Config is the full client configuration.
type Config struct {
	// Endpoint is the conversion service URL.
	Endpoint string `toml:"endpoint" env:"ENDPOINT"`

	// RequestTimeout bounds a conversion call. Zero waits indefinitely.
	RequestTimeout time.Duration `toml:"request_timeout" env:"REQUEST_TIMEOUT"`

	Debug   bool   `toml:"debug" env:"DEBUG"`
	LogFile string `toml:"log_file" env:"LOG_FILE"`

	Placeholder PlaceholderConfig `toml:"placeholder" envPrefix:"PLACEHOLDER_"`
	Tour        TourConfig        `toml:"tour" envPrefix:"TOUR_"`
	Stub        StubConfig        `toml:"stub" envPrefix:"STUB_"`
}

// PlaceholderConfig configures the placeholder animation.
type PlaceholderConfig struct {
	DemoText string        `toml:"demo_text" env:"DEMO_TEXT"`
	Interval time.Duration `toml:"interval" env:"INTERVAL"`
}

// TourConfig configures the onboarding tour. Margin and Gap are in terminal
// cells for the terminal page.
type TourConfig struct {
	Enabled    bool          `toml:"enabled" env:"ENABLED"`
	StartDelay time.Duration `toml:"start_delay" env:"START_DELAY"`
	Margin     float64       `toml:"margin" env:"MARGIN"`
	Gap        float64       `toml:"gap" env:"GAP"`
}

// StubConfig configures the stub conversion service.
type StubConfig struct {
	ListenAddr string `toml:"listen" env:"LISTEN"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Endpoint:       "http://localhost:5000/convert",
		RequestTimeout: 30 * time.Second,
		Placeholder: PlaceholderConfig{
			DemoText: placeholder.DefaultDemoText,
			Interval: placeholder.DefaultInterval,
		},
		Tour: TourConfig{
			Enabled:    true,
			StartDelay: tour.DefaultStartDelay,
			Margin:     1,
			Gap:        1,
		},
		Stub: StubConfig{
			ListenAddr: ":5000",
		},
	}
}

// Load reads path over the defaults and then applies environment overrides.
// A missing file is not an error unless it was asked for explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) || explicit {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings for values no component can work with.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint must be set")
	}
	if c.RequestTimeout < 0 {
		return errors.New("request_timeout must not be negative")
	}
	if c.Placeholder.Interval < 0 {
		return errors.New("placeholder.interval must not be negative")
	}
	if c.Tour.StartDelay < 0 {
		return errors.New("tour.start_delay must not be negative")
	}
	if c.Tour.Margin < 0 || c.Tour.Gap < 0 {
		return errors.New("tour.margin and tour.gap must not be negative")
	}
	return nil
}

// Geometry is the tour spacing as a tour.Geometry.
func (t TourConfig) Geometry() tour.Geometry {
	return tour.Geometry{Margin: t.Margin, Gap: t.Gap}
}
