package differ

import (
	"fmt"

	"github.com/erraggy/oasdelta/deltaerrors"
	"github.com/erraggy/oasdelta/parser"
)

// Option is a function that configures a diff operation
type Option func(*diffConfig) error

// diffConfig holds configuration for a diff operation
type diffConfig struct {
	// Input sources (exactly one source and one target must be set)
	sourceFilePath *string
	sourceParsed   *parser.ParseResult
	targetFilePath *string
	targetParsed   *parser.ParseResult

	// Configuration options
	userAgent string
	logger    parser.Logger
}

// DiffWithOptions compares two OpenAPI specifications using functional options.
// This provides a flexible, extensible API that combines input source selection
// and configuration in a single function call.
//
// Example:
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithSourceFilePath("api-v1.yaml"),
//	    differ.WithTargetFilePath("api-v2.yaml"),
//	)
func DiffWithOptions(opts ...Option) (*DiffResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	d := &Differ{
		UserAgent: cfg.userAgent,
		Logger:    cfg.logger,
	}

	// Determine source
	source := cfg.sourceParsed
	if cfg.sourceFilePath != nil {
		p := parser.New()
		if d.UserAgent != "" {
			p.UserAgent = d.UserAgent
		}
		p.Logger = d.Logger
		source, err = p.Parse(*cfg.sourceFilePath)
		if err != nil {
			return nil, fmt.Errorf("differ: failed to parse source: %w", err)
		}
	}

	// Determine target
	target := cfg.targetParsed
	if cfg.targetFilePath != nil {
		p := parser.New()
		if d.UserAgent != "" {
			p.UserAgent = d.UserAgent
		}
		p.Logger = d.Logger
		target, err = p.Parse(*cfg.targetFilePath)
		if err != nil {
			return nil, fmt.Errorf("differ: failed to parse target: %w", err)
		}
	}

	return d.DiffParsed(source, target)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*diffConfig, error) {
	cfg := &diffConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one source is specified
	sourceCount := 0
	if cfg.sourceFilePath != nil {
		sourceCount++
	}
	if cfg.sourceParsed != nil {
		sourceCount++
	}
	if sourceCount == 0 {
		return nil, &deltaerrors.ConfigError{
			Option:  "source",
			Message: "must specify a source (use WithSourceFilePath or WithSourceParsed)",
		}
	}
	if sourceCount > 1 {
		return nil, &deltaerrors.ConfigError{
			Option:  "source",
			Message: "must specify exactly one source",
		}
	}

	// Validate exactly one target is specified
	targetCount := 0
	if cfg.targetFilePath != nil {
		targetCount++
	}
	if cfg.targetParsed != nil {
		targetCount++
	}
	if targetCount == 0 {
		return nil, &deltaerrors.ConfigError{
			Option:  "target",
			Message: "must specify a target (use WithTargetFilePath or WithTargetParsed)",
		}
	}
	if targetCount > 1 {
		return nil, &deltaerrors.ConfigError{
			Option:  "target",
			Message: "must specify exactly one target",
		}
	}

	return cfg, nil
}

// WithSourceFilePath specifies a file path or URL as the source document
func WithSourceFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceFilePath = &path
		return nil
	}
}

// WithSourceParsed specifies a parsed ParseResult as the source document
func WithSourceParsed(result *parser.ParseResult) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceParsed = result
		return nil
	}
}

// WithTargetFilePath specifies a file path or URL as the target document
func WithTargetFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.targetFilePath = &path
		return nil
	}
}

// WithTargetParsed specifies a parsed ParseResult as the target document
func WithTargetParsed(result *parser.ParseResult) Option {
	return func(cfg *diffConfig) error {
		cfg.targetParsed = result
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "" (uses parser default)
func WithUserAgent(ua string) Option {
	return func(cfg *diffConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithLogger sets the structured logger used during parsing and diffing
// Default: nil (logging disabled)
func WithLogger(logger parser.Logger) Option {
	return func(cfg *diffConfig) error {
		cfg.logger = logger
		return nil
	}
}
