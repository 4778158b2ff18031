package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/oasdelta/classifier"
	"github.com/erraggy/oasdelta/differ"
	"github.com/erraggy/oasdelta/internal/cliutil"
)

// DiffFlags contains flags for the diff command
type DiffFlags struct {
	Format          string
	FailOnAPIChange bool
}

// SetupDiffFlags creates the flag set for the diff command.
func SetupDiffFlags() (*flag.FlagSet, *DiffFlags) {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	flags := &DiffFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.FailOnAPIChange, "fail-on-api-change", false, "exit with status 1 when the API surface changed")

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: oasdelta diff [flags] <old-spec> <new-spec>\n\n")
		cliutil.Writef(output, "Compare two OpenAPI specifications and summarize what changed.\n")
		cliutil.Writef(output, "Specs may be file paths, URLs, or '-' for stdin (at most one).\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nOutput Formats:\n")
		cliutil.Writef(output, "  text  Human-readable console summary (default)\n")
		cliutil.Writef(output, "  json  Machine-readable JSON\n")
		cliutil.Writef(output, "  yaml  Machine-readable YAML\n")
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  oasdelta diff api-v1.yaml api-v2.yaml\n")
		cliutil.Writef(output, "  oasdelta diff --format json api-v1.yaml api-v2.yaml\n")
		cliutil.Writef(output, "  oasdelta diff --fail-on-api-change api-v1.yaml https://example.com/openapi.json\n")
		cliutil.Writef(output, "  cat api-v2.yaml | oasdelta diff api-v1.yaml -\n")
		cliutil.Writef(output, "\nExit Status:\n")
		cliutil.Writef(output, "  0  Comparison completed\n")
		cliutil.Writef(output, "  1  API surface changed and --fail-on-api-change was set\n")
	}

	return fs, flags
}

// HandleDiff processes the diff command.
func HandleDiff(args []string) error {
	fs, flags := SetupDiffFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("diff command requires exactly two file paths or URLs")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	sourcePath, targetPath := fs.Arg(0), fs.Arg(1)
	if err := checkStdinUsage(sourcePath, targetPath); err != nil {
		return err
	}

	d := differ.New()
	diff, err := d.Diff(sourcePath, targetPath)
	if err != nil {
		return err
	}

	cl := classifier.New()
	records := cl.ClassifyAll(diff.Changes)
	sum := cl.Summarize(records)

	if flags.Format == FormatText {
		printDiffText(diff, sum, records)
	} else if err := OutputStructured(buildDiffReport(diff, sum, records), flags.Format); err != nil {
		return err
	}

	if flags.FailOnAPIChange && sum.Verdict == classifier.VerdictAPIChange {
		os.Exit(1)
	}
	return nil
}

// diffCategoryOrder fixes the listing order for console and structured
// output, API surface categories first.
var diffCategoryOrder = []classifier.Category{
	classifier.CategoryNewEndpoint,
	classifier.CategoryRemovedEndpoint,
	classifier.CategoryModifiedEndpoint,
	classifier.CategorySecurity,
	classifier.CategorySchema,
	classifier.CategoryDocumentation,
	classifier.CategoryInternal,
}

func printDiffText(diff *differ.DiffResult, sum *classifier.Summary, records []classifier.ClassifiedChange) {
	fmt.Printf("Comparing %s -> %s\n\n", diff.SourcePath, diff.TargetPath)

	if sum.Total == 0 {
		fmt.Println("✓ No differences found - specifications are identical")
		return
	}

	fmt.Printf("Differences found: %d\n\n", sum.Total)

	for _, cat := range diffCategoryOrder {
		n := sum.Counts[cat]
		if n == 0 {
			continue
		}
		fmt.Printf("%s (%d):\n", strings.ToUpper(string(cat)), n)
		for _, rec := range records {
			if rec.Category != cat {
				continue
			}
			fmt.Printf("  %s\n", changeLine(rec))
		}
		fmt.Println()
	}

	fmt.Printf("Verdict: %s - %s\n", sum.Verdict, sum.Headline())
}

// changeLine renders one change for the console listing. Composite
// values stay out of the listing to keep lines readable.
func changeLine(rec classifier.ClassifiedChange) string {
	path := rec.Path.String()
	switch rec.Type {
	case differ.ChangeTypeAdded:
		if v, ok := scalarString(rec.NewValue); ok {
			return fmt.Sprintf("added %s: %s", path, v)
		}
		return fmt.Sprintf("added %s", path)
	case differ.ChangeTypeRemoved:
		if v, ok := scalarString(rec.OldValue); ok {
			return fmt.Sprintf("removed %s: %s", path, v)
		}
		return fmt.Sprintf("removed %s", path)
	default:
		oldVal, oldOK := scalarString(rec.OldValue)
		newVal, newOK := scalarString(rec.NewValue)
		if oldOK && newOK {
			return fmt.Sprintf("modified %s: %s -> %s", path, oldVal, newVal)
		}
		return fmt.Sprintf("modified %s", path)
	}
}

func scalarString(v any) (string, bool) {
	switch v.(type) {
	case nil:
		return "null", true
	case map[string]any, []any:
		return "", false
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// diffReport is the structured output of the diff command.
type diffReport struct {
	Source       string         `json:"source" yaml:"source"`
	Target       string         `json:"target" yaml:"target"`
	Verdict      string         `json:"verdict" yaml:"verdict"`
	Headline     string         `json:"headline" yaml:"headline"`
	TotalChanges int            `json:"total_changes" yaml:"total_changes"`
	APIChanges   int            `json:"api_changes" yaml:"api_changes"`
	OtherChanges int            `json:"other_changes" yaml:"other_changes"`
	Categories   map[string]int `json:"categories,omitempty" yaml:"categories,omitempty"`
	Changes      []reportChange `json:"changes,omitempty" yaml:"changes,omitempty"`
}

type reportChange struct {
	Path     string `json:"path" yaml:"path"`
	Type     string `json:"type" yaml:"type"`
	Category string `json:"category" yaml:"category"`
	Old      any    `json:"old,omitempty" yaml:"old,omitempty"`
	New      any    `json:"new,omitempty" yaml:"new,omitempty"`
}

func buildDiffReport(diff *differ.DiffResult, sum *classifier.Summary, records []classifier.ClassifiedChange) diffReport {
	out := diffReport{
		Source:       diff.SourcePath,
		Target:       diff.TargetPath,
		Verdict:      sum.Verdict.String(),
		Headline:     sum.Headline(),
		TotalChanges: sum.Total,
		APIChanges:   sum.APICount,
		OtherChanges: sum.NonAPICount,
	}
	if len(sum.Counts) > 0 {
		out.Categories = make(map[string]int, len(sum.Counts))
		for cat, n := range sum.Counts {
			out.Categories[string(cat)] = n
		}
	}
	for _, rec := range records {
		out.Changes = append(out.Changes, reportChange{
			Path:     rec.Path.String(),
			Type:     string(rec.Type),
			Category: string(rec.Category),
			Old:      rec.OldValue,
			New:      rec.NewValue,
		})
	}
	return out
}
