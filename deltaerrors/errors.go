package deltaerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrLoad indicates a document could not be fetched or parsed.
	ErrLoad = errors.New("load error")

	// ErrClassify indicates the external classification service failed.
	ErrClassify = errors.New("classification service error")

	// ErrClassifyTimeout indicates the classification service call timed out.
	ErrClassifyTimeout = errors.New("classification service timeout")

	// ErrRender indicates a rendered report could not be persisted.
	ErrRender = errors.New("render error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// LoadError represents a failure to load a source document.
// This covers file and URL fetch failures, git revision extraction failures,
// and YAML/JSON deserialization errors. A LoadError always aborts the
// comparison before any diffing begins.
type LoadError struct {
	// Path is the file path, URL, or revision spec that failed to load
	Path string
	// Format is the detected source format, if known ("json", "yaml")
	Format string
	// Message describes the load failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *LoadError) Error() string {
	msg := "load error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Format != "" {
		msg += " (" + e.Format + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// ClassifyError represents a failure of the external classification service.
// Callers recover from it locally by keeping the rule-based verdict; it is
// logged and never propagated as a fatal comparison error.
type ClassifyError struct {
	// Service is the endpoint that was called
	Service string
	// StatusCode is the HTTP status received, if the call got that far
	StatusCode int
	// Timeout is true if the call exceeded its deadline
	Timeout bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ClassifyError) Error() string {
	msg := "classification service error"
	if e.Timeout {
		msg = "classification service timeout"
	}
	if e.Service != "" {
		msg += " from " + e.Service
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ClassifyError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrClassify, and also ErrClassifyTimeout when Timeout is set.
func (e *ClassifyError) Is(target error) bool {
	if target == ErrClassify {
		return true
	}
	if target == ErrClassifyTimeout && e.Timeout {
		return true
	}
	return false
}

// RenderError represents a failure to persist a rendered report.
// The report text itself is produced in memory before persistence, so the
// caller still holds it and may retry elsewhere.
type RenderError struct {
	// Path is the destination that could not be written
	Path string
	// Message describes the persistence failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *RenderError) Error() string {
	msg := "render error"
	if e.Path != "" {
		msg += " writing " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
