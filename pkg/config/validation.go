package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Struct tag rules live on the
// config types themselves; cross-field rules live in Validate below.
var validate = validator.New()

// Validate checks the configuration for errors.
//
// Struct tags handle field-level rules (required, oneof, ranges). Rules that
// span fields or sections are checked explicitly here. Validate does not
// mutate the config; normalization happens in ApplyDefaults.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry endpoint is required when telemetry is enabled")
	}
	if cfg.Telemetry.Profiling.Enabled && cfg.Telemetry.Profiling.Endpoint == "" {
		return fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}

	// The JWT secret is deliberately not validated here: the API server
	// checks it at startup so that commands which never start the API
	// (init, schema) can run against a secretless config.
	if cfg.Naming.Backend == NamingBackendBadger && cfg.Naming.Badger.Path == "" {
		return fmt.Errorf("naming badger path is required when the badger backend is selected")
	}

	return nil
}
