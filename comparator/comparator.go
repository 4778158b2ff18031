package comparator

import (
	"context"
	"fmt"
	"time"

	"github.com/erraggy/oasdelta/classifier"
	"github.com/erraggy/oasdelta/deltaerrors"
	"github.com/erraggy/oasdelta/differ"
	"github.com/erraggy/oasdelta/parser"
	"github.com/erraggy/oasdelta/refiner"
	"github.com/erraggy/oasdelta/reporter"
)

// DefaultOutputDir is where reports are written unless configured
// otherwise, matching the artifact layout the report consumers expect.
const DefaultOutputDir = "updates"

// Comparator orchestrates the full comparison pipeline: load both
// documents, diff, classify, summarize, optionally refine the verdict,
// render the report, and persist it.
//
// All component fields may be replaced before use; nil fields fall back
// to fresh defaults per call, so a shared Comparator is safe for
// concurrent comparisons.
type Comparator struct {
	// Parser loads source and target documents
	Parser *parser.Parser
	// Differ computes the structural diff
	Differ *differ.Differ
	// Classifier categorizes changes and derives the verdict
	Classifier *classifier.Classifier
	// Reporter renders and persists Markdown reports
	Reporter *reporter.Reporter
	// Refiner, when non-nil, refines the rule-based verdict through an
	// external service. Refinement failures are logged and never fail
	// the comparison.
	Refiner refiner.Refiner
	// GitRunner executes git subcommands for CompareGit. If nil, the
	// git binary on PATH is used.
	GitRunner GitRunner
	// OutputDir receives written reports
	OutputDir string
	// Logger receives progress events. If nil, logging is disabled.
	Logger parser.Logger
}

// New creates a Comparator with default components.
func New() *Comparator {
	return &Comparator{
		Parser:     parser.New(),
		Differ:     differ.New(),
		Classifier: classifier.New(),
		Reporter:   reporter.New(),
		OutputDir:  DefaultOutputDir,
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (c *Comparator) log() parser.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return parser.NopLogger{}
}

// Request describes one comparison.
type Request struct {
	// SourcePath locates the old document (file path, URL, or "-")
	SourcePath string
	// TargetPath locates the new document
	TargetPath string
	// RepoName names the repository for the report context and the
	// artifact name. Required when WriteReport is set.
	RepoName string
	// Date is the comparison date (YYYY-MM-DD). Empty means today.
	Date string
	// WriteReport persists the rendered report under OutputDir
	WriteReport bool
}

// Result carries everything the pipeline produced.
type Result struct {
	// Summary is the aggregated outcome; its Verdict reflects
	// refinement when that ran
	Summary *classifier.Summary
	// Records are the classified changes in diff order
	Records []classifier.ClassifiedChange
	// Report is the rendered Markdown text
	Report string
	// ReportPath is the written artifact path when WriteReport was set
	ReportPath string
	// Refined is true when the external service's verdict was adopted
	Refined bool
	// RuleVerdict is the verdict before refinement
	RuleVerdict classifier.Verdict
}

// Compare runs the pipeline for one request.
//
// Load failures abort before any diffing. A report persistence failure
// is returned alongside a non-nil Result whose Report still carries the
// rendered text, so the caller can write it elsewhere.
func (c *Comparator) Compare(ctx context.Context, req Request) (*Result, error) {
	if req.WriteReport && req.RepoName == "" {
		return nil, &deltaerrors.ConfigError{
			Option:  "RepoName",
			Message: "repo name is required when writing a report",
		}
	}

	p := c.Parser
	if p == nil {
		p = parser.New()
	}

	source, err := p.Parse(req.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("comparator: failed to load source document: %w", err)
	}
	target, err := p.Parse(req.TargetPath)
	if err != nil {
		return nil, fmt.Errorf("comparator: failed to load target document: %w", err)
	}

	return c.pipeline(ctx, source, target, req.RepoName, req.Date, req.WriteReport)
}

// CompareParsed runs the pipeline over documents the caller already loaded.
// The request's SourcePath and TargetPath are ignored; the ParseResult
// source paths label the report instead.
func (c *Comparator) CompareParsed(ctx context.Context, source, target *parser.ParseResult, req Request) (*Result, error) {
	if req.WriteReport && req.RepoName == "" {
		return nil, &deltaerrors.ConfigError{
			Option:  "RepoName",
			Message: "repo name is required when writing a report",
		}
	}
	return c.pipeline(ctx, source, target, req.RepoName, req.Date, req.WriteReport)
}

// pipeline runs everything after loading: diff, classify, summarize,
// refine, render, persist.
func (c *Comparator) pipeline(ctx context.Context, source, target *parser.ParseResult, repoName, date string, writeReport bool) (*Result, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	d := c.Differ
	if d == nil {
		d = differ.New()
	}
	diffResult, err := d.DiffParsed(source, target)
	if err != nil {
		return nil, fmt.Errorf("comparator: failed to diff documents: %w", err)
	}

	cl := c.Classifier
	if cl == nil {
		cl = classifier.New()
	}
	records := cl.ClassifyAll(diffResult.Changes)
	sum := cl.Summarize(records)

	result := &Result{
		Summary:     sum,
		Records:     records,
		RuleVerdict: sum.Verdict,
	}

	c.log().Info("comparison complete",
		"source", source.SourcePath,
		"target", target.SourcePath,
		"changes", sum.Total,
		"verdict", sum.Verdict.String())

	c.refine(ctx, result)

	rep := c.Reporter
	if rep == nil {
		rep = reporter.New()
	}
	meta := reporter.Meta{
		RepoName:   repoName,
		Date:       date,
		SourcePath: source.SourcePath,
		TargetPath: target.SourcePath,
	}
	text, err := rep.RenderWithDiff(sum, records, meta, source.Document, target.Document)
	if err != nil {
		return nil, fmt.Errorf("comparator: failed to render report: %w", err)
	}
	result.Report = text

	if writeReport {
		path, err := rep.Save(c.outputDir(), repoName, date, text)
		if err != nil {
			// The rendered text survives in result.Report.
			return result, err
		}
		result.ReportPath = path
	}

	return result, nil
}

// refine consults the external service when one is configured and there
// is something to classify. The refined verdict replaces the summary
// verdict, relabeling the report headline; the categorized records stay
// rule-based. Service failures keep the rule verdict.
func (c *Comparator) refine(ctx context.Context, result *Result) {
	if c.Refiner == nil || len(result.Records) == 0 {
		return
	}

	verdict, err := c.Refiner.Refine(ctx, reporter.RenderRawLines(result.Records))
	if err != nil {
		c.log().Warn("verdict refinement failed, keeping rule-based verdict",
			"rule_verdict", result.RuleVerdict.String(),
			"error", err.Error())
		return
	}

	if verdict != result.RuleVerdict {
		c.log().Info("verdict refined",
			"rule_verdict", result.RuleVerdict.String(),
			"refined_verdict", verdict.String())
	}
	result.Summary.Verdict = verdict
	result.Refined = true
}

// outputDir returns the configured output directory, or the default.
func (c *Comparator) outputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return DefaultOutputDir
}
