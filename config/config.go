package config

import (
	"time"

	"github.com/kbukum/stdmath/errors"
	"github.com/kbukum/stdmath/logger"
	"github.com/kbukum/stdmath/validation"
)

// Config is the stdmath CLI configuration.
type Config struct {
	Name        string          `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string          `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Logging     logger.Config   `yaml:"logging" mapstructure:"logging"`
	Math        MathConfig      `yaml:"math" mapstructure:"math"`
	Telemetry   TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// MathConfig holds defaults for reduction commands.
type MathConfig struct {
	// Type is the numeric type name results are computed in (u8..u64, i8..i64, f32, f64).
	Type string `yaml:"type" mapstructure:"type" validate:"required,oneof=u8 u16 u32 u64 i8 i16 i32 i64 f32 f64"`
	// Format is the result output format.
	Format string `yaml:"format" mapstructure:"format" validate:"required,oneof=text json yaml"`
	// Repetition is the default for combination and permutation.
	Repetition string `yaml:"repetition" mapstructure:"repetition" validate:"required,oneof=repeat no_repeat"`
}

// TelemetryConfig controls OpenTelemetry export of reduction metrics and
// command traces.
type TelemetryConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	cfg := &Config{Telemetry: TelemetryConfig{SampleRate: 1}}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "stdmath"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Logging.ApplyDefaults()
	if c.Math.Type == "" {
		c.Math.Type = "u64"
	}
	if c.Math.Format == "" {
		c.Math.Format = "text"
	}
	if c.Math.Repetition == "" {
		c.Math.Repetition = "no_repeat"
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = "localhost:4318"
	}
	if c.Telemetry.Interval == 0 {
		c.Telemetry.Interval = 15 * time.Second
	}
}

// Validate checks the logging section and then the struct tags.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return errors.Validation("config.logging: " + err.Error()).WithCause(err)
	}
	return validation.Validate(c)
}
