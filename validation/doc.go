// Package validation validates configuration and arguments, reporting
// failures as INVALID_ARGUMENT errors from the errors package.
//
// # Struct Tag Validation
//
//	type TelemetryConfig struct {
//	    Endpoint   string  `mapstructure:"endpoint" validate:"required_if=Enabled true"`
//	    SampleRate float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
//	}
//	err := validation.Validate(cfg)
//
// Fields are reported by their mapstructure key, so messages match the
// names used in config files.
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(cfg.Interval > 0, "interval", "must be positive")
//	err := v.Validate()
package validation
