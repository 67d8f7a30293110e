// Package config - validation logic for configuration values
package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s - %s", e.Field, e.Message)
}

// Validate checks all configuration values for validity
func (c *Config) Validate() error {
	var errs []error

	if c.Motion.DefaultTargetSize <= 0 {
		errs = append(errs, ValidationError{
			Field:   "motion.default_target_size",
			Message: "must be greater than 0",
		})
	}

	if c.Motion.IdleJitterInterval <= 0 {
		errs = append(errs, ValidationError{
			Field:   "motion.idle_jitter_interval_seconds",
			Message: "must be greater than 0",
		})
	}

	if c.Motion.IdleJitterIntensity < 0.5 || c.Motion.IdleJitterIntensity > 2.0 {
		errs = append(errs, ValidationError{
			Field:   "motion.idle_jitter_intensity",
			Message: "must be between 0.5 and 2.0",
		})
	}

	if c.Browser.ViewportWidth <= 0 {
		errs = append(errs, ValidationError{
			Field:   "browser.viewport_width",
			Message: "must be greater than 0",
		})
	}

	if c.Browser.ViewportHeight <= 0 {
		errs = append(errs, ValidationError{
			Field:   "browser.viewport_height",
			Message: "must be greater than 0",
		})
	}

	if c.Recorder.Persist && c.Storage.DatabasePath == "" {
		errs = append(errs, ValidationError{
			Field:   "storage.database_path",
			Message: "required when recorder.persist is enabled",
		})
	}

	if c.Recorder.SessionID == "" {
		errs = append(errs, ValidationError{
			Field:   "recorder.session_id",
			Message: "must not be empty",
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
