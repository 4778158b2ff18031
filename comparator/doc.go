// Package comparator orchestrates the end-to-end comparison pipeline:
// load, diff, classify, summarize, refine, render, persist.
//
// # Quick Start
//
//	comp := comparator.New()
//	result, err := comp.Compare(ctx, comparator.Request{
//		SourcePath:  "old.yaml",
//		TargetPath:  "new.yaml",
//		RepoName:    "petstore",
//		WriteReport: true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Summary.Headline())
//
// # Verdict Refinement
//
// With a [refiner.Refiner] configured, the rule-based verdict is sent to
// the external service together with the plain-text change listing. Its
// answer relabels the report headline; a service failure logs a warning
// and the rule-based verdict stands. The comparison itself never fails
// because the refinement service was unreachable.
//
// # Git Revisions
//
// CompareGit reads the document at two revisions through git show and
// feeds the same pipeline, so a repository's history can be compared
// without checking anything out.
//
// # Batches
//
// CompareBatch fans independent comparisons out over a bounded worker
// group. Each request succeeds or fails on its own and results come
// back in input order.
package comparator
