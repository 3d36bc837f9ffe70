package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexferrari88/minigrep/logger"
)

// ValidationError reports a configuration value that cannot be used.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CanonicalizeColor lower-cases a colour mode and checks it.
func CanonicalizeColor(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "":
		return "auto", nil
	case "auto", "always", "never":
		return mode, nil
	default:
		return "", &ValidationError{Field: "color", Message: fmt.Sprintf("invalid value %q (want auto, always or never)", raw)}
	}
}

// Validate checks cfg and normalizes the colour mode and log level in place.
// Every problem is reported, joined into one error.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Pattern == "" {
		errs = append(errs, &ValidationError{Field: "pattern", Message: "is required"})
	}
	if strings.TrimSpace(cfg.File) == "" {
		errs = append(errs, &ValidationError{Field: "file", Message: "is required"})
	}
	if cfg.From < 0 {
		errs = append(errs, &ValidationError{Field: "from", Message: fmt.Sprintf("must not be negative, got %d", cfg.From)})
	}
	if cfg.Until < 0 {
		errs = append(errs, &ValidationError{Field: "until", Message: fmt.Sprintf("must not be negative, got %d", cfg.Until)})
	}
	if cfg.Jobs < 0 {
		errs = append(errs, &ValidationError{Field: "jobs", Message: fmt.Sprintf("must not be negative, got %d", cfg.Jobs)})
	}

	if mode, err := CanonicalizeColor(cfg.Color); err != nil {
		errs = append(errs, err)
	} else {
		cfg.Color = mode
	}

	level := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	switch {
	case level == "":
		cfg.LogLevel = logger.DefaultLevel
	case logger.ValidLevel(level):
		cfg.LogLevel = level
	default:
		errs = append(errs, &ValidationError{Field: "log_level", Message: fmt.Sprintf("invalid value %q (want trace, debug, info, warn or error)", cfg.LogLevel)})
	}

	return errors.Join(errs...)
}
