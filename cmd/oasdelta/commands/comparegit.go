package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/oasdelta/comparator"
	"github.com/erraggy/oasdelta/internal/cliutil"
)

// CompareGitFlags contains flags for the compare-git command
type CompareGitFlags struct {
	RepoName  string
	Date      string
	OutputDir string
	Save      bool
	Refine    bool
	RawDiff   bool
}

// SetupCompareGitFlags creates the flag set for the compare-git command.
func SetupCompareGitFlags() (*flag.FlagSet, *CompareGitFlags) {
	fs := flag.NewFlagSet("compare-git", flag.ContinueOnError)
	flags := &CompareGitFlags{}

	fs.StringVar(&flags.RepoName, "repo-name", "", "repository name for the report (default: repository directory name)")
	fs.StringVar(&flags.Date, "date", "", "comparison date in YYYY-MM-DD format (default: today)")
	fs.StringVar(&flags.OutputDir, "output-dir", "", "directory for saved reports (default: updates)")
	fs.BoolVar(&flags.Save, "save", false, "write the report to the output directory instead of stdout")
	fs.BoolVar(&flags.Refine, "refine", false, "refine the verdict through the OpenAI API (requires OPENAI_API_KEY)")
	fs.BoolVar(&flags.RawDiff, "raw-diff", false, "append a unified diff of the two documents to the report")

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: oasdelta compare-git [flags] <repo-path> <file> <old-ref> <new-ref>\n\n")
		cliutil.Writef(output, "Compare one OpenAPI specification file across two git revisions.\n")
		cliutil.Writef(output, "The file path is relative to the repository root, and the refs may\n")
		cliutil.Writef(output, "be any revisions git rev-parse accepts (tags, branches, commits).\n\n")
		cliutil.Writef(output, "By default the report prints to stdout. With --save it is written\n")
		cliutil.Writef(output, "to <output-dir>/<repo-name>-<date>-open-api-diff.md instead.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  oasdelta compare-git ./petstore api/openapi.yaml v1.0.0 v2.0.0\n")
		cliutil.Writef(output, "  oasdelta compare-git --save ./petstore api/openapi.yaml main~5 main\n")
		cliutil.Writef(output, "  oasdelta compare-git --save --repo-name petstore --date 2025-06-01 ./repo openapi.json abc123 def456\n")
	}

	return fs, flags
}

// HandleCompareGit processes the compare-git command.
func HandleCompareGit(args []string) error {
	fs, flags := SetupCompareGitFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 4 {
		fs.Usage()
		return fmt.Errorf("compare-git command requires exactly four arguments: repo path, file, old ref, new ref")
	}

	comp, err := newComparator(flags.OutputDir, flags.Refine, flags.RawDiff)
	if err != nil {
		return err
	}

	result, err := comp.CompareGit(context.Background(), comparator.GitRequest{
		RepoPath:    fs.Arg(0),
		FilePath:    fs.Arg(1),
		OldRef:      fs.Arg(2),
		NewRef:      fs.Arg(3),
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
