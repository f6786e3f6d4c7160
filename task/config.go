package task

import (
	"sync/atomic"
	"time"

	"github.com/kbukum/lazykit/resilience"
)

// Config controls producers started with Go.
type Config struct {
	// SilenceFailures stops failed producers from being logged.
	SilenceFailures bool `yaml:"silence_failures" mapstructure:"silence_failures"`
	// Timeout bounds each producer's context. Zero means no bound.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	// Retry re-runs producers that fail with a retryable error. The
	// timeout covers all attempts.
	Retry resilience.RetryPolicy `yaml:"retry" mapstructure:"retry"`
}

var active atomic.Pointer[Config]

// Configure sets the configuration used by subsequent tasks.
func Configure(cfg Config) {
	active.Store(&cfg)
}

func current() Config {
	if c := active.Load(); c != nil {
		return *c
	}
	return Config{}
}
