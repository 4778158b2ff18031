// Package reporter renders classified comparison results as Markdown
// reports and persists them as dated artifacts.
//
// # Overview
//
// A report opens with the verdict as its title, followed by a one-line
// summary and the comparison context. Classified changes are grouped
// into sections in a fixed order, API surface categories first, with
// empty sections omitted. The full change listing follows under "Raw
// Differences" with old and new values in fenced code blocks.
//
// Rendering is pure: the date and every other contextual detail come in
// through [Meta], so rendering the same inputs always produces the same
// bytes. This keeps reports diffable and makes repeat runs idempotent.
//
//	rep := reporter.New()
//	text := rep.Render(summary, records, reporter.Meta{
//		RepoName:   "petstore",
//		Date:       "2025-06-01",
//		SourcePath: "old.yaml",
//		TargetPath: "new.yaml",
//	})
//	path, err := rep.Save("updates", "petstore", "2025-06-01", text)
//
// # Unified Diff Appendix
//
// With IncludeRawDiff set, [Reporter.RenderWithDiff] appends a "Source
// Diff" section: a unified diff of the canonical YAML serialization of
// both documents. MaxRawDiffBytes bounds the appendix for very large
// documents.
//
// # Artifacts
//
// Reports are written as {repoName}-{date}-open-api-diff.md with owner
// read/write permissions. Persistence failures surface as
// *deltaerrors.RenderError and never lose the rendered text.
package reporter
