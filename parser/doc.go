// Package parser provides loading for OpenAPI Specification documents.
//
// The parser accepts OAS 2.0 and 3.x documents in YAML and JSON formats and
// decodes them into generic map[string]any trees. Documents are not mapped to
// typed structures: every field the source contains, including vendor
// extensions and fields from future OAS versions, survives loading exactly as
// written. This is deliberate. The diff engine reports changes on whatever
// the documents actually say, not on a typed subset.
//
// Specifications can be loaded from local files, remote URLs (http:// or
// https://), or standard input ("-").
//
// # Quick Start
//
//	p := parser.New()
//	result, err := p.Parse("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Loaded %d paths in %s\n", result.Stats.PathCount, result.LoadTime)
//
// Parse from a URL:
//
//	result, err := p.Parse("https://example.com/api/openapi.yaml")
//
// # Format Detection
//
// The format is detected from the file extension or URL Content-Type header,
// falling back to content sniffing. JSON input is decoded with encoding/json
// directly, which avoids the YAML AST overhead for large documents.
//
// # Errors
//
// All load and decode failures are reported as
// [github.com/erraggy/oasdelta/deltaerrors.LoadError], carrying the source
// path, detected format, and underlying cause.
//
// # Related Packages
//
// After parsing, use these packages for additional operations:
//   - [github.com/erraggy/oasdelta/differ] - Compare two parsed documents
//   - [github.com/erraggy/oasdelta/classifier] - Categorize changes and derive a verdict
//   - [github.com/erraggy/oasdelta/reporter] - Render Markdown diff reports
package parser
