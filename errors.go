package tilegen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration is matched (via errors.Is) by every *ConfigurationError
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidSize is returned when a tile is requested with a size that cannot be drawn
	ErrInvalidSize = errors.New("invalid tile size")

	// ErrUnknownTerrain is returned by a Table asked for a terrain it doesn't hold
	ErrUnknownTerrain = errors.New("unknown terrain")
)

// ConfigurationError reports invalid or missing terrain parameters.
// These are fatal to the call that hit them & are never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErr(field, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// FallbackUsed is a warning: the configured terrain source failed (or gave us
// garbage) & a default configuration was substituted.
type FallbackUsed struct {
	Label string
	Err   error
}

func (e *FallbackUsed) Error() string {
	return fmt.Sprintf("using fallback configuration for %q: %v", e.Label, e.Err)
}

func (e *FallbackUsed) Unwrap() error {
	return e.Err
}

// RenderError records the failure of one tile in a batch.
// Variation is 1 based for plain variations & 0 for the pattern tile.
type RenderError struct {
	Name      string
	Variation int
	Err       error
}

func (e *RenderError) Error() string {
	if e.Variation > 0 {
		return fmt.Sprintf("variation %d (%s): %v", e.Variation, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// BatchError collects the tiles of a set that failed. Tiles not listed here
// were written successfully.
type BatchError struct {
	Failures []*RenderError
}

func (e *BatchError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%d tile(s) failed: %s", len(e.Failures), strings.Join(msgs, "; "))
}
