// Package config loads go-folio settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/teslashibe/go-folio/internal/otel"
)

// Rig presets accepted by FOLIO_RIG.
const (
	RigSimple      = "simple"
	RigArticulated = "articulated"
)

// Animator presets accepted by FOLIO_PRESET.
const (
	PresetDefault = "default"
	PresetCalm    = "calm"
	PresetLively  = "lively"
)

// Config holds process-wide settings. Flags in cmd/* override fields after Load.
type Config struct {
	Port      int    `env:"FOLIO_PORT" envDefault:"8080"`
	StaticDir string `env:"FOLIO_STATIC_DIR" envDefault:"./web"`
	LogLevel  string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`

	// Character setup
	Rig    string        `env:"FOLIO_RIG" envDefault:"simple"`
	Preset string        `env:"FOLIO_PRESET" envDefault:"default"`
	Rate   time.Duration `env:"FOLIO_FRAME_RATE" envDefault:"16ms"`

	EmailJS EmailJS `envPrefix:"EMAILJS_"`
	Gmail   Gmail   `envPrefix:"GMAIL_"`

	// Tracing is enabled when an endpoint is set.
	OTelEndpoint string `env:"FOLIO_OTEL_ENDPOINT"`
	OTelService  string `env:"FOLIO_OTEL_SERVICE" envDefault:"go-folio"`
	OTelEnabled  bool   `env:"FOLIO_OTEL_ENABLED" envDefault:"true"`
}

// EmailJS holds the identifiers for the EmailJS form relay.
type EmailJS struct {
	ServiceID  string `env:"SERVICE_ID"`
	TemplateID string `env:"TEMPLATE_ID"`
	PublicKey  string `env:"PUBLIC_KEY"`
}

// Configured reports whether all three identifiers are present.
func (e EmailJS) Configured() bool {
	return e.ServiceID != "" && e.TemplateID != "" && e.PublicKey != ""
}

// Gmail holds OAuth client credentials and a long-lived refresh token.
type Gmail struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RefreshToken string `env:"REFRESH_TOKEN"`
	Sender       string `env:"SENDER"`
	To           string `env:"TO"`
}

// Configured reports whether the relay has everything it needs.
func (g Gmail) Configured() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RefreshToken != "" && g.To != ""
}

// Error describes a setting that failed validation.
type Error struct {
	Field  string
	Value  any
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return &Error{Field: "port", Value: c.Port, Reason: "must be in 1..65535"}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &Error{Field: "log_level", Value: c.LogLevel, Reason: "want debug, info, warn or error"}
	}
	switch c.Rig {
	case RigSimple, RigArticulated:
	default:
		return &Error{Field: "rig", Value: c.Rig, Reason: "want simple or articulated"}
	}
	switch c.Preset {
	case PresetDefault, PresetCalm, PresetLively:
	default:
		return &Error{Field: "preset", Value: c.Preset, Reason: "want default, calm or lively"}
	}
	if c.Rate <= 0 {
		return &Error{Field: "frame_rate", Value: c.Rate, Reason: "must be positive"}
	}
	return nil
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Tracing returns the exporter settings for otel.Setup.
func (c *Config) Tracing() otel.Config {
	return otel.Config{
		Service:  c.OTelService,
		Endpoint: c.OTelEndpoint,
		Disabled: !c.OTelEnabled,
	}
}
