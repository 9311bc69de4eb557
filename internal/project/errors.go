package project

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingMacSection is returned when buildScript.mac is absent.
	ErrMissingMacSection = errors.New("missing buildScript.mac configuration")
	// ErrMissingField is returned when a required field is absent or empty.
	ErrMissingField = errors.New("missing required field")
)

// ConfigurationError reports a missing, unreadable, unparsable or incomplete configuration.
type ConfigurationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Reason, e.Path, e.Err)
	}

	return fmt.Sprintf("%s (%s)", e.Reason, e.Path)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ErrUnknownArchitecture is returned when a requested architecture is not configured.
var ErrUnknownArchitecture = errors.New("architecture is not configured in buildScript.mac.architecture")
