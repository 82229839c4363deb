package globalize

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when a model or attribute is not set up for translation.
	ErrConfiguration = errors.New("globalize: configuration error")
	// ErrValidation is returned when a translation record fails validation on save.
	ErrValidation = errors.New("globalize: validation failed")
)

// ConfigError describes a translation setup problem. It matches ErrConfiguration with errors.Is.
type ConfigError struct {
	Model     string
	Attribute string
	Reason    string
}

func (e *ConfigError) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("globalize: model %q attribute %q: %s", e.Model, e.Attribute, e.Reason)
	}
	return fmt.Sprintf("globalize: model %q: %s", e.Model, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

func configError(model, attribute, reason string) error {
	return &ConfigError{Model: model, Attribute: attribute, Reason: reason}
}
