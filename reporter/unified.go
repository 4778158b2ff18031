package reporter

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/erraggy/oasdelta/internal/docutil"
	"github.com/erraggy/oasdelta/parser"
)

// SourceDiff renders the "## Source Diff" appendix: a unified diff of
// the canonical YAML serialization of both documents. Because canonical
// YAML sorts map keys, the hunks line up even when the source files
// ordered their keys differently.
//
// When MaxRawDiffBytes is set and the diff body exceeds it, the body is
// replaced with a size notice so oversized documents cannot balloon the
// report.
func (r *Reporter) SourceDiff(oldDoc, newDoc map[string]any, meta Meta) (string, error) {
	oldYAML, err := docutil.CanonicalYAML(oldDoc)
	if err != nil {
		return "", fmt.Errorf("reporter: failed to serialize source document: %w", err)
	}
	newYAML, err := docutil.CanonicalYAML(newDoc)
	if err != nil {
		return "", fmt.Errorf("reporter: failed to serialize target document: %w", err)
	}

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldYAML),
		B:        difflib.SplitLines(newYAML),
		FromFile: meta.SourcePath,
		ToFile:   meta.TargetPath,
		Context:  3,
	}
	body, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("reporter: failed to compute unified diff: %w", err)
	}

	if r.MaxRawDiffBytes > 0 && len(body) > r.MaxRawDiffBytes {
		r.log().Debug("raw diff exceeds limit, omitting",
			"rendered", len(body), "limit", r.MaxRawDiffBytes)
		body = fmt.Sprintf("diff omitted: %s rendered, limit is %s\n",
			parser.FormatBytes(int64(len(body))),
			parser.FormatBytes(int64(r.MaxRawDiffBytes)))
	}

	return "## Source Diff\n\n```diff\n" + body + "```\n", nil
}
