package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdelta/comparator"
)

// reportRawDiffLimit caps the unified diff appendix so oversized documents
// cannot balloon a tool response.
const reportRawDiffLimit = 256 * 1024

type reportInput struct {
	Source    specInput `json:"source"               jsonschema:"The old/original OpenAPI document"`
	Target    specInput `json:"target"               jsonschema:"The new OpenAPI document to compare against the source"`
	RepoName  string    `json:"repo_name,omitempty"  jsonschema:"Repository name shown in the report context and used in the artifact name (required when save=true)"`
	Date      string    `json:"date,omitempty"       jsonschema:"Comparison date as YYYY-MM-DD (default: today)"`
	Save      bool      `json:"save,omitempty"       jsonschema:"Write the report artifact to output_dir"`
	OutputDir string    `json:"output_dir,omitempty" jsonschema:"Directory for the saved artifact (default: updates)"`
	RawDiff   bool      `json:"raw_diff,omitempty"   jsonschema:"Append a unified diff of the canonicalized documents"`
}

type reportOutput struct {
	Verdict      string `json:"verdict"`
	Headline     string `json:"headline"`
	TotalChanges int    `json:"total_changes"`
	Report       string `json:"report"`
	ReportPath   string `json:"report_path,omitempty"`
}

func handleGenerateReport(ctx context.Context, _ *mcp.CallToolRequest, input reportInput) (*mcp.CallToolResult, reportOutput, error) {
	ctx, cancel := toolContext(ctx)
	defer cancel()

	source, err := input.Source.resolve()
	if err != nil {
		return errResult(err), reportOutput{}, nil
	}
	target, err := input.Target.resolve()
	if err != nil {
		return errResult(err), reportOutput{}, nil
	}
	if err := ctx.Err(); err != nil {
		return errResult(err), reportOutput{}, nil
	}

	comp := comparator.New()
	comp.Logger = srvLogger
	comp.Reporter.IncludeRawDiff = input.RawDiff
	comp.Reporter.MaxRawDiffBytes = reportRawDiffLimit
	if input.OutputDir != "" {
		comp.OutputDir = input.OutputDir
	}

	result, err := comp.CompareParsed(ctx, source, target, comparator.Request{
		RepoName:    input.RepoName,
		Date:        input.Date,
		WriteReport: input.Save,
	})
	if err != nil {
		return errResult(err), reportOutput{}, nil
	}

	return nil, reportOutput{
		Verdict:      result.Summary.Verdict.String(),
		Headline:     result.Summary.Headline(),
		TotalChanges: result.Summary.Total,
		Report:       result.Report,
		ReportPath:   result.ReportPath,
	}, nil
}
