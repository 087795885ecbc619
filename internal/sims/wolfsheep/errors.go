package wolfsheep

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidConfig is matched by every construction-time parameter error.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidPosition reports a placement outside the lattice bounds.
	ErrInvalidPosition = errors.New("invalid position")
)

// ConfigError lists every parameter that failed validation.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return ErrInvalidConfig.Error() + ": " + strings.Join(e.Problems, "; ")
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }
