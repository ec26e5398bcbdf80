// Package config provides utilities for loading configuration from environment variables.
//
// This package includes helper functions for reading environment variables with type
// conversion and default values, as well as a standard Config struct for common
// mediator configuration options (service identity, logging, metrics, timeouts, and
// the PolicyGate manifest path).
//
// Example usage:
//
//	cfg := config.LoadFromEnv()
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
//	// Use individual helpers
//	timeout := config.GetEnvDuration("QLLM_TIMEOUT", 30*time.Second)
//	enabled := config.GetEnvBool("METRICS_ENABLED", false)
package config
