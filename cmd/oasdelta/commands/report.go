package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/oasdelta/comparator"
	"github.com/erraggy/oasdelta/internal/cliutil"
)

// ReportFlags contains flags for the report command
type ReportFlags struct {
	RepoName  string
	Date      string
	OutputDir string
	Save      bool
	Refine    bool
	RawDiff   bool
}

// SetupReportFlags creates the flag set for the report command.
func SetupReportFlags() (*flag.FlagSet, *ReportFlags) {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	flags := &ReportFlags{}

	fs.StringVar(&flags.RepoName, "repo-name", "", "repository name for the report header and artifact name")
	fs.StringVar(&flags.Date, "date", "", "comparison date in YYYY-MM-DD format (default: today)")
	fs.StringVar(&flags.OutputDir, "output-dir", "", "directory for saved reports (default: updates)")
	fs.BoolVar(&flags.Save, "save", false, "write the report to the output directory instead of stdout")
	fs.BoolVar(&flags.Refine, "refine", false, "refine the verdict through the OpenAI API (requires OPENAI_API_KEY)")
	fs.BoolVar(&flags.RawDiff, "raw-diff", false, "append a unified diff of the two documents to the report")

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: oasdelta report [flags] <old-spec> <new-spec>\n\n")
		cliutil.Writef(output, "Generate a Markdown change report for two OpenAPI specifications.\n")
		cliutil.Writef(output, "Specs may be file paths, URLs, or '-' for stdin (at most one).\n\n")
		cliutil.Writef(output, "By default the report prints to stdout. With --save it is written\n")
		cliutil.Writef(output, "to <output-dir>/<repo-name>-<date>-open-api-diff.md instead, and\n")
		cliutil.Writef(output, "--repo-name is required.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  oasdelta report api-v1.yaml api-v2.yaml\n")
		cliutil.Writef(output, "  oasdelta report --save --repo-name petstore api-v1.yaml api-v2.yaml\n")
		cliutil.Writef(output, "  oasdelta report --save --repo-name petstore --date 2025-06-01 --output-dir reports v1.json v2.json\n")
		cliutil.Writef(output, "  oasdelta report --refine --raw-diff api-v1.yaml api-v2.yaml\n")
	}

	return fs, flags
}

// HandleReport processes the report command.
func HandleReport(args []string) error {
	fs, flags := SetupReportFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("report command requires exactly two file paths or URLs")
	}

	sourcePath, targetPath := fs.Arg(0), fs.Arg(1)
	if err := checkStdinUsage(sourcePath, targetPath); err != nil {
		return err
	}

	comp, err := newComparator(flags.OutputDir, flags.Refine, flags.RawDiff)
	if err != nil {
		return err
	}

	result, err := comp.Compare(context.Background(), comparator.Request{
		SourcePath:  sourcePath,
		TargetPath:  targetPath,
		RepoName:    flags.RepoName,
		Date:        flags.Date,
		WriteReport: flags.Save,
	})
	if err != nil {
		return err
	}

	if flags.Save {
		fmt.Printf("Verdict: %s - %s\n", result.Summary.Verdict, result.Summary.Headline())
		fmt.Printf("Markdown summary saved to %s\n", result.ReportPath)
		return nil
	}

	fmt.Print(result.Report)
	return nil
}
