// Package config loads lazykit Settings with Viper.
//
// LoadConfig reads <name>.yml (or config.yml) from the working directory
// or ./config, loads .env.<environment> and .env from the same directories
// with godotenv, and lets the process environment override any key.
// Environment variables are the key path upper-cased and joined with
// underscores, so TELEMETRY_SAMPLE_RATE sets telemetry.sample_rate and
// TASKS_RETRY_MAX_ATTEMPTS sets tasks.retry.max_attempts.
//
// # Usage
//
//	settings, err := config.Load("orders", config.WithEnvPrefix("orders"))
//	logger.Init(settings.Logging)
//
// Load applies defaults and validates; LoadConfig only decodes, for
// applications that embed Settings in a larger struct.
package config
