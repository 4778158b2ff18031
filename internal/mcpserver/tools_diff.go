package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdelta/classifier"
	"github.com/erraggy/oasdelta/differ"
	"github.com/erraggy/oasdelta/internal/docutil"
)

type diffInput struct {
	Source specInput `json:"source"           jsonschema:"The old/original OpenAPI document"`
	Target specInput `json:"target"           jsonschema:"The new OpenAPI document to compare against the source"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of changes to return (default 50)"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N changes (for pagination)"`
}

type diffChange struct {
	Path     string `json:"path"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Old      string `json:"old,omitempty"`
	New      string `json:"new,omitempty"`
}

type categoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type diffOutput struct {
	Verdict       string          `json:"verdict"`
	Headline      string          `json:"headline"`
	TotalChanges  int             `json:"total_changes"`
	APICount      int             `json:"api_count"`
	OtherCount    int             `json:"other_count"`
	AddedCount    int             `json:"added_count"`
	RemovedCount  int             `json:"removed_count"`
	ModifiedCount int             `json:"modified_count"`
	Categories    []categoryCount `json:"categories,omitempty"`
	Returned      int             `json:"returned"`
	Changes       []diffChange    `json:"changes,omitempty"`
}

// categoryOrder fixes the presentation order of per-category counts.
var categoryOrder = []classifier.Category{
	classifier.CategoryNewEndpoint,
	classifier.CategoryRemovedEndpoint,
	classifier.CategoryModifiedEndpoint,
	classifier.CategorySecurity,
	classifier.CategorySchema,
	classifier.CategoryDocumentation,
	classifier.CategoryInternal,
}

func handleDiffOpenAPI(ctx context.Context, _ *mcp.CallToolRequest, input diffInput) (*mcp.CallToolResult, diffOutput, error) {
	ctx, cancel := toolContext(ctx)
	defer cancel()

	source, err := input.Source.resolve()
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}
	target, err := input.Target.resolve()
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}
	if err := ctx.Err(); err != nil {
		return errResult(err), diffOutput{}, nil
	}

	d := differ.New()
	d.Logger = srvLogger
	diffResult, err := d.DiffParsed(source, target)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	cl := classifier.New()
	cl.Logger = srvLogger
	records := cl.ClassifyAll(diffResult.Changes)
	sum := cl.Summarize(records)

	output := diffOutput{
		Verdict:       sum.Verdict.String(),
		Headline:      sum.Headline(),
		TotalChanges:  sum.Total,
		APICount:      sum.APICount,
		OtherCount:    sum.NonAPICount,
		AddedCount:    diffResult.AddedCount,
		RemovedCount:  diffResult.RemovedCount,
		ModifiedCount: diffResult.ModifiedCount,
	}
	for _, cat := range categoryOrder {
		if n := sum.Counts[cat]; n > 0 {
			output.Categories = append(output.Categories, categoryCount{Category: string(cat), Count: n})
		}
	}

	page := paginate(records, input.Offset, input.Limit)
	output.Returned = len(page)
	output.Changes = makeSlice[diffChange](len(page))
	for _, rec := range page {
		output.Changes = append(output.Changes, toDiffChange(rec))
	}

	return nil, output, nil
}

// toDiffChange converts a classified change for tool output. Additions
// carry only the new value and removals only the old one, mirroring the
// report's raw differences listing.
func toDiffChange(rec classifier.ClassifiedChange) diffChange {
	out := diffChange{
		Path:     rec.Path.String(),
		Type:     string(rec.Type),
		Category: string(rec.Category),
	}
	switch rec.Type {
	case differ.ChangeTypeAdded:
		out.New = formatValue(rec.NewValue)
	case differ.ChangeTypeRemoved:
		out.Old = formatValue(rec.OldValue)
	default:
		out.Old = formatValue(rec.OldValue)
		out.New = formatValue(rec.NewValue)
	}
	return out
}

// formatValue renders a changed value for tool output: scalars inline,
// composites as canonical YAML.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
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
