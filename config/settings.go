package config

import (
	"fmt"
	"time"

	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/task"
	"github.com/kbukum/lazykit/util"
	"github.com/kbukum/lazykit/validation"
)

// Exporters supported by TelemetryConfig.
const (
	ExporterOTLP       = "otlp"
	ExporterPrometheus = "prometheus"
)

// Settings is the configuration of an application using lazykit.
// Applications embed it in their own config structs:
//
//	type MyConfig struct {
//	    config.Settings `yaml:",inline" mapstructure:",squash"`
//	    Redis rediskv.Config `yaml:"redis" mapstructure:"redis"`
//	}
type Settings struct {
	Name        string          `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string          `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string          `yaml:"version" mapstructure:"version"`
	Logging     logger.Config   `yaml:"logging" mapstructure:"logging"`
	Telemetry   TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
	Tasks       task.Config     `yaml:"tasks" mapstructure:"tasks"`
}

// TelemetryConfig selects where pipeline metrics and traces go.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Exporter string `yaml:"exporter" mapstructure:"exporter" validate:"omitempty,oneof=otlp prometheus"`
	// Endpoint is the OTLP HTTP host:port.
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	// Tracing enables OTLP traces for Await. Only used with the otlp exporter.
	Tracing bool `yaml:"tracing" mapstructure:"tracing"`
}

// ApplyDefaults applies default values to telemetry configuration.
func (c *TelemetryConfig) ApplyDefaults() {
	if c.Exporter == "" {
		c.Exporter = ExporterOTLP
	}
	if c.Endpoint == "" && c.Exporter == ExporterOTLP {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval <= 0 {
		c.Interval = 15 * time.Second
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// ApplyDefaults applies default values to every section.
func (c *Settings) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Logging.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate checks struct tags and the rules that span fields.
func (c *Settings) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	t := c.Telemetry
	return validation.New().
		Custom(!t.Enabled || t.Exporter != ExporterOTLP || t.Endpoint != "",
			"telemetry.endpoint", "is required for the otlp exporter").
		Custom(!t.Tracing || t.Exporter == ExporterOTLP,
			"telemetry.tracing", "requires the otlp exporter").
		Validate()
}

// Load reads Settings for the named application, applies defaults and
// validates the result.
func Load(name string, opts ...LoaderOption) (*Settings, error) {
	var s Settings
	if err := LoadConfig(name, &s, opts...); err != nil {
		return nil, err
	}
	s.Name = util.Coalesce(s.Name, name)
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &s, nil
}
