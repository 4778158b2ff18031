// Package deltaerrors provides structured error types for the oasdelta library.
//
// Import path: github.com/erraggy/oasdelta/deltaerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides four core error types:
//
//   - [LoadError]: a source document could not be fetched or parsed; fatal, the
//     comparison never starts
//   - [ClassifyError]: the external classification service failed (timeout,
//     transport error, bad status); recoverable, callers fall back to the
//     rule-based verdict
//   - [RenderError]: a rendered report could not be persisted; fatal, but the
//     in-memory report text has already been returned to the caller
//   - [ConfigError]: invalid configuration or input options
//
// Structural type mismatches between two documents are deliberately absent from
// this taxonomy: a field that was an object in one revision and a scalar in the
// next is an ordinary modified change, never an error.
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrLoad]: Matches any [LoadError]
//   - [ErrClassify]: Matches any [ClassifyError]
//   - [ErrClassifyTimeout]: Matches [ClassifyError] with Timeout=true
//   - [ErrRender]: Matches any [RenderError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	result, err := p.Parse("api.yaml")
//	if errors.Is(err, deltaerrors.ErrLoad) {
//	    // Handle load failure
//	}
//
// Extract details with errors.As():
//
//	var loadErr *deltaerrors.LoadError
//	if errors.As(err, &loadErr) {
//	    fmt.Printf("could not load %s: %s\n", loadErr.Path, loadErr.Message)
//	}
package deltaerrors
