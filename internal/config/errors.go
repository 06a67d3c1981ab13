package config

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports an invalid or unreadable configuration value.
type ConfigurationError struct {
	Section string
	Key     string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Section == "" && e.Key == "":
		return fmt.Sprintf("configuration: %s", e.Reason)
	case e.Key == "":
		return fmt.Sprintf("configuration %s: %s", e.Section, e.Reason)
	default:
		return fmt.Sprintf("configuration %s.%s: %s", e.Section, e.Key, e.Reason)
	}
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErr(section, key, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Section: section, Key: key, Reason: fmt.Sprintf(format, args...)}
}
