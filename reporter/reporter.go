package reporter

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/oasdelta/classifier"
	"github.com/erraggy/oasdelta/differ"
	"github.com/erraggy/oasdelta/internal/docutil"
	"github.com/erraggy/oasdelta/parser"
)

// Reporter renders classified comparison results as Markdown reports.
// All fields are optional; the zero value renders reports without the
// unified diff appendix.
type Reporter struct {
	// IncludeRawDiff appends a unified diff of the two source documents
	// to reports rendered through RenderWithDiff
	IncludeRawDiff bool

	// MaxRawDiffBytes caps the rendered unified diff body; when exceeded
	// the diff is replaced with a size notice. Zero means no limit.
	MaxRawDiffBytes int

	// Logger receives progress events during rendering and persistence.
	// If nil, logging is disabled.
	Logger parser.Logger
}

// New creates a Reporter with default settings.
func New() *Reporter {
	return &Reporter{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (r *Reporter) log() parser.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return parser.NopLogger{}
}

// Meta carries the report context. Date is an opaque caller-supplied
// string; the renderer never reads the clock, so rendering the same
// inputs always produces the same bytes.
type Meta struct {
	// RepoName names the repository the documents came from
	RepoName string
	// Date is the comparison date in whatever form the caller chose
	Date string
	// SourcePath identifies the old document
	SourcePath string
	// TargetPath identifies the new document
	TargetPath string
}

// sectionOrder fixes the category section sequence: API surface
// categories first, then the rest.
var sectionOrder = []classifier.Category{
	classifier.CategoryNewEndpoint,
	classifier.CategoryRemovedEndpoint,
	classifier.CategoryModifiedEndpoint,
	classifier.CategorySecurity,
	classifier.CategorySchema,
	classifier.CategoryDocumentation,
	classifier.CategoryInternal,
}

// Render produces the Markdown report for a classified comparison.
// The output is deterministic: the same summary, records, and meta
// always render byte-identical text. Empty category sections are
// omitted entirely.
func (r *Reporter) Render(sum *classifier.Summary, records []classifier.ClassifiedChange, meta Meta) string {
	var b strings.Builder

	b.WriteString("# ")
	b.WriteString(sum.Verdict.String())
	b.WriteString("\n\n")
	b.WriteString(sum.Headline())
	b.WriteString("\n")

	if line := contextLine(meta); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
		b.WriteString("\n")
	}

	byCategory := make(map[classifier.Category][]classifier.ClassifiedChange)
	for _, rec := range records {
		byCategory[rec.Category] = append(byCategory[rec.Category], rec)
	}

	for _, cat := range sectionOrder {
		recs := byCategory[cat]
		if len(recs) == 0 {
			continue
		}
		b.WriteString("\n## ")
		b.WriteString(sectionHeading(cat))
		b.WriteString("\n\n")
		for _, rec := range recs {
			b.WriteString(bulletLine(rec))
		}
	}

	if len(records) > 0 {
		b.WriteString("\n---\n\n## Raw Differences\n")
		for _, rec := range records {
			writeRawRecord(&b, rec)
		}
	}

	text := b.String()
	r.log().Debug("rendered report", "records", len(records), "bytes", len(text))
	return text
}

// RenderWithDiff renders the full report, appending the unified source
// diff appendix when IncludeRawDiff is set.
func (r *Reporter) RenderWithDiff(sum *classifier.Summary, records []classifier.ClassifiedChange, meta Meta, oldDoc, newDoc map[string]any) (string, error) {
	text := r.Render(sum, records, meta)
	if !r.IncludeRawDiff {
		return text, nil
	}
	section, err := r.SourceDiff(oldDoc, newDoc, meta)
	if err != nil {
		return "", err
	}
	return text + "\n" + section, nil
}

// RenderRawLines renders records as a plain-text listing, one change per
// line prefixed with its category. The comparator sends this text to the
// external classification service.
func RenderRawLines(records []classifier.ClassifiedChange) string {
	var b strings.Builder
	for _, rec := range records {
		b.WriteString("[")
		b.WriteString(string(rec.Category))
		b.WriteString("] ")
		b.WriteString(rec.Change.String())
		b.WriteString("\n")
	}
	return b.String()
}

// contextLine builds the report context from whatever meta fields are
// set, joined with " | ". Returns "" when meta is empty.
func contextLine(meta Meta) string {
	var parts []string
	if meta.RepoName != "" {
		parts = append(parts, "**Repository:** "+meta.RepoName)
	}
	if meta.Date != "" {
		parts = append(parts, "**Date:** "+meta.Date)
	}
	if meta.SourcePath != "" || meta.TargetPath != "" {
		parts = append(parts, fmt.Sprintf("Comparing `%s` -> `%s`", meta.SourcePath, meta.TargetPath))
	}
	return strings.Join(parts, " | ")
}

// sectionHeading derives the section title from the category display
// name. Endpoint categories pluralize ("New Endpoints"), the rest read
// as "<Category> Changes".
func sectionHeading(cat classifier.Category) string {
	// Use golang.org/x/text/cases for title casing (strings.Title is deprecated)
	caser := cases.Title(language.English)
	words := caser.String(strings.ReplaceAll(string(cat), "-", " "))
	if strings.HasSuffix(string(cat), "-endpoint") {
		return words + "s"
	}
	return words + " Changes"
}

// bulletLine renders one record as a category section bullet. Scalar
// values appear inline; composite values are left to the raw section.
func bulletLine(rec classifier.ClassifiedChange) string {
	path := "`" + rec.Path.String() + "`"
	switch rec.Type {
	case differ.ChangeTypeAdded:
		if isScalar(rec.NewValue) {
			return fmt.Sprintf("- added %s: %s\n", path, renderValue(rec.NewValue))
		}
		return fmt.Sprintf("- added %s\n", path)
	case differ.ChangeTypeRemoved:
		if isScalar(rec.OldValue) {
			return fmt.Sprintf("- removed %s: %s\n", path, renderValue(rec.OldValue))
		}
		return fmt.Sprintf("- removed %s\n", path)
	default:
		if isScalar(rec.OldValue) && isScalar(rec.NewValue) {
			return fmt.Sprintf("- modified %s: %s -> %s\n", path, renderValue(rec.OldValue), renderValue(rec.NewValue))
		}
		return fmt.Sprintf("- modified %s\n", path)
	}
}

// writeRawRecord renders one record in the Raw Differences section with
// its values in fenced code blocks. Added records carry only the new
// value and removed records only the old one.
func writeRawRecord(b *strings.Builder, rec classifier.ClassifiedChange) {
	fmt.Fprintf(b, "\n### %s\n\n", rec.Path.String())
	fmt.Fprintf(b, "_%s, %s_\n", rec.Type, rec.Category)
	switch rec.Type {
	case differ.ChangeTypeAdded:
		writeValueBlock(b, "New", rec.NewValue)
	case differ.ChangeTypeRemoved:
		writeValueBlock(b, "Old", rec.OldValue)
	default:
		writeValueBlock(b, "Old", rec.OldValue)
		writeValueBlock(b, "New", rec.NewValue)
	}
}

func writeValueBlock(b *strings.Builder, label string, v any) {
	fmt.Fprintf(b, "\n**%s:**\n\n```yaml\n%s\n```\n", label, renderValue(v))
}

// isScalar reports whether v renders on a single line.
func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	}
	return true
}

// renderValue renders a document fragment deterministically: strings
// quoted, other scalars as-is, nil as null, and composites as canonical
// YAML with sorted keys.
func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(val)
	case map[string]any, []any:
		text, err := docutil.CanonicalYAML(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return strings.TrimRight(text, "\n")
	default:
		return fmt.Sprintf("%v", val)
	}
}
