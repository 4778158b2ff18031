package comparator

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/erraggy/oasdelta/deltaerrors"
	"github.com/erraggy/oasdelta/parser"
)

// GitRunner executes a git subcommand in a repository and returns its
// stdout. Tests substitute their own implementation.
type GitRunner func(ctx context.Context, repoPath string, args ...string) ([]byte, error)

// runGit shells out to the git binary with -C so the working directory
// never changes.
func runGit(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", repoPath}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return stdout.Bytes(), nil
}

// GitRequest describes a comparison between two revisions of a document
// tracked in a git repository.
type GitRequest struct {
	// RepoPath is the repository working directory
	RepoPath string
	// FilePath is the document path relative to the repository root
	FilePath string
	// OldRef is the revision holding the old document
	OldRef string
	// NewRef is the revision holding the new document
	NewRef string
	// RepoName names the repository for the report. Empty defaults to
	// the repository directory name.
	RepoName string
	// Date is the comparison date (YYYY-MM-DD). Empty means today.
	Date string
	// WriteReport persists the rendered report under OutputDir
	WriteReport bool
}

// CompareGit extracts the document at two revisions and runs the same
// pipeline as Compare. Git failures surface as *deltaerrors.LoadError.
func (c *Comparator) CompareGit(ctx context.Context, req GitRequest) (*Result, error) {
	if req.RepoPath == "" || req.FilePath == "" || req.OldRef == "" || req.NewRef == "" {
		return nil, &deltaerrors.ConfigError{
			Option:  "GitRequest",
			Message: "repo path, file path, and both refs are required",
		}
	}

	repoName := req.RepoName
	if repoName == "" {
		repoName = baseName(req.RepoPath)
	}
	if req.WriteReport && repoName == "" {
		return nil, &deltaerrors.ConfigError{
			Option:  "RepoName",
			Message: "repo name is required when writing a report",
		}
	}

	source, err := c.parseAtRef(ctx, req.RepoPath, req.OldRef, req.FilePath)
	if err != nil {
		return nil, err
	}
	target, err := c.parseAtRef(ctx, req.RepoPath, req.NewRef, req.FilePath)
	if err != nil {
		return nil, err
	}

	return c.pipeline(ctx, source, target, repoName, req.Date, req.WriteReport)
}

// parseAtRef reads ref:file from the repository and parses it. The
// parse result's SourcePath is rewritten to the ref spec so reports
// name revisions instead of scratch buffers.
func (c *Comparator) parseAtRef(ctx context.Context, repoPath, ref, filePath string) (*parser.ParseResult, error) {
	spec := ref + ":" + filePath

	run := c.GitRunner
	if run == nil {
		run = runGit
	}

	data, err := run(ctx, repoPath, "show", spec)
	if err != nil {
		return nil, &deltaerrors.LoadError{
			Path:    spec,
			Message: "failed to read document from git",
			Cause:   err,
		}
	}

	p := c.Parser
	if p == nil {
		p = parser.New()
	}
	result, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("comparator: failed to parse document at %s: %w", spec, err)
	}
	result.SourcePath = spec

	c.log().Debug("loaded document from git", "spec", spec, "bytes", len(data))
	return result, nil
}

// baseName returns the last path element of a repository path, with
// trailing separators ignored.
func baseName(repoPath string) string {
	trimmed := strings.TrimRight(repoPath, "/")
	if trimmed == "" {
		return ""
	}
	if idx := strings.LastIndexByte(trimmed, '/'); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
