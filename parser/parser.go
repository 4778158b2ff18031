package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasdelta"
	"github.com/erraggy/oasdelta/deltaerrors"
)

// DefaultMaxDocumentSize is the maximum document size in bytes accepted by
// a Parser when MaxDocumentSize is not set.
const DefaultMaxDocumentSize int64 = 50 * 1024 * 1024 // 50 MiB

// Parser handles OpenAPI specification loading.
//
// Documents are decoded into generic map[string]any trees rather than typed
// structures, so any OAS version (2.0, 3.0.x, 3.1.x) and vendor extensions
// survive loading untouched. Diffing works on exactly what the source
// document contains.
type Parser struct {
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "oasdelta" if not set
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with 30-second timeout is created.
	HTTPClient *http.Client
	// MaxDocumentSize is the maximum document size in bytes.
	// Default: 50MB
	MaxDocumentSize int64
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent: oasdelta.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxDocumentSize() int64 {
	if p.MaxDocumentSize > 0 {
		return p.MaxDocumentSize
	}
	return DefaultMaxDocumentSize
}

// SourceFormat represents the format of the source OpenAPI specification file
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains the loaded OpenAPI specification and metadata.
//
// Callers should treat ParseResult as read-only after parsing. The Document
// map is not copied when shared across diff operations; deep copy first if
// modification is needed.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to a
	// synthetic name ending in '.yaml' or '.json' based on the detected format
	SourcePath string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat SourceFormat
	// Document contains the parsed document as a generic map
	Document map[string]any
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
}

// Parse parses an OpenAPI specification from a file path, URL, or stdin.
// For URLs (http:// or https://), the content is fetched and parsed.
// For "-", the content is read from standard input.
// For anything else, the path is read as a local file.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	var data []byte
	var err error
	var format SourceFormat
	var loadTime time.Duration

	switch {
	case isURL(specPath):
		var contentType string
		loadStart := time.Now()
		data, contentType, err = p.fetchURL(specPath)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(specPath, contentType)

	case specPath == "-":
		loadStart := time.Now()
		data, err = io.ReadAll(io.LimitReader(os.Stdin, p.maxDocumentSize()+1))
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, &deltaerrors.LoadError{
				Path:    "stdin",
				Message: "failed to read standard input",
				Cause:   err,
			}
		}
		format = SourceFormatUnknown

	default:
		loadStart := time.Now()
		data, err = os.ReadFile(specPath)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, &deltaerrors.LoadError{
				Path:    specPath,
				Message: "failed to read file",
				Cause:   err,
			}
		}
		format = detectFormatFromPath(specPath)
	}

	if int64(len(data)) > p.maxDocumentSize() {
		return nil, &deltaerrors.LoadError{
			Path: specPath,
			Message: fmt.Sprintf("document size exceeds limit of %s",
				FormatBytes(p.maxDocumentSize())),
		}
	}

	res, err := p.parseBytes(data, specPath, format)
	if err != nil {
		return nil, err
	}

	if specPath == "-" {
		if res.SourceFormat == SourceFormatJSON {
			res.SourcePath = "stdin.json"
		} else {
			res.SourcePath = "stdin.yaml"
		}
	}
	res.LoadTime = loadTime

	p.log().Debug("parsed document",
		"path", res.SourcePath,
		"format", string(res.SourceFormat),
		"size", FormatBytes(res.SourceSize),
		"paths", res.Stats.PathCount,
		"operations", res.Stats.OperationCount)

	return res, nil
}

// ParseReader parses an OpenAPI specification from an io.Reader
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseReader.yaml or ParseReader.json
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, p.maxDocumentSize()+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, &deltaerrors.LoadError{
			Path:    "ParseReader",
			Message: "failed to read data",
			Cause:   err,
		}
	}
	res, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	if res.SourceFormat == SourceFormatJSON {
		res.SourcePath = "ParseReader.json"
	} else {
		res.SourcePath = "ParseReader.yaml"
	}
	return res, nil
}

// ParseBytes parses an OpenAPI specification from a byte slice
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseBytes.yaml or ParseBytes.json
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	if int64(len(data)) > p.maxDocumentSize() {
		return nil, &deltaerrors.LoadError{
			Path: "ParseBytes",
			Message: fmt.Sprintf("document size exceeds limit of %s",
				FormatBytes(p.maxDocumentSize())),
		}
	}
	res, err := p.parseBytes(data, "ParseBytes", SourceFormatUnknown)
	if err != nil {
		return nil, err
	}
	if res.SourceFormat == SourceFormatJSON {
		res.SourcePath = "ParseBytes.json"
	} else {
		res.SourcePath = "ParseBytes.yaml"
	}
	return res, nil
}

// parseBytes decodes document bytes into a generic map. The format hint from
// the path or Content-Type takes precedence; content sniffing fills the gap.
func (p *Parser) parseBytes(data []byte, sourcePath string, format SourceFormat) (*ParseResult, error) {
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	result := &ParseResult{
		SourcePath: sourcePath,
		SourceSize: int64(len(data)),
	}

	var doc map[string]any

	// JSON fast-path: the yaml library builds a full AST with token tracking,
	// which is necessary for YAML features but wasteful for JSON input where
	// encoding/json is far cheaper.
	if format == SourceFormatJSON {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &deltaerrors.LoadError{
				Path:    sourcePath,
				Format:  string(SourceFormatJSON),
				Message: "failed to parse JSON document",
				Cause:   err,
			}
		}
		result.SourceFormat = SourceFormatJSON
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &deltaerrors.LoadError{
				Path:    sourcePath,
				Format:  string(SourceFormatYAML),
				Message: "failed to parse YAML document",
				Cause:   err,
			}
		}
		result.SourceFormat = SourceFormatYAML
	}

	// Empty input and a bare null both decode to a nil map. The diff engine
	// needs a mapping at the document root.
	if doc == nil {
		return nil, &deltaerrors.LoadError{
			Path:    sourcePath,
			Format:  string(result.SourceFormat),
			Message: "document is empty or not a mapping at the root",
		}
	}

	result.Document = doc
	result.Stats = GetDocumentStats(doc)

	return result, nil
}
