// Package commands provides CLI command handlers for oasdelta.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/erraggy/oasdelta/comparator"
	"github.com/erraggy/oasdelta/refiner"
	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(bytes))
	return nil
}

// checkStdinUsage rejects requests that would read both documents from
// stdin, since the stream can only feed one of them.
func checkStdinUsage(source, target string) error {
	if source == StdinFilePath && target == StdinFilePath {
		return fmt.Errorf("only one of the two documents may be read from stdin")
	}
	return nil
}

// newComparator builds a Comparator from the flags shared by the report
// and compare-git commands. Refinement requires the OPENAI_API_KEY
// environment variable.
func newComparator(outputDir string, refine, rawDiff bool) (*comparator.Comparator, error) {
	comp := comparator.New()
	if outputDir != "" {
		comp.OutputDir = outputDir
	}
	comp.Reporter.IncludeRawDiff = rawDiff
	if refine {
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("--refine requires the OPENAI_API_KEY environment variable")
		}
		comp.Refiner = refiner.NewOpenAI(refiner.Config{APIKey: key})
	}
	return comp, nil
}
