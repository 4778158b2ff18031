// Package oasdelta compares two versions of an OpenAPI description document,
// classifies every structural change, and renders a deterministic Markdown
// change report.
//
// oasdelta treats documents as generic trees of maps, sequences, and scalars.
// It does not validate OpenAPI semantics; any two parseable documents can be
// compared, and the classification rules only give special meaning to the
// well-known top-level shapes (paths, components, info).
//
// # Overview
//
// The library consists of six primary packages:
//
//   - parser: Load a document from a file, URL, or raw bytes into a generic tree
//   - differ: Walk two trees and enumerate every added/removed/modified path
//   - classifier: Assign a semantic category to each change and aggregate a verdict
//   - reporter: Render and persist the Markdown change report
//   - refiner: Optionally refine the verdict through an external text classifier
//   - comparator: Orchestrate the full pipeline, including git revision sources
//
// Supporting packages: diffpath holds the path address value type shared by the
// differ, classifier, and reporter; deltaerrors defines the error taxonomy.
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/oasdelta
//
// # Quick Start
//
// Compare two specification files and print each change:
//
//	import "github.com/erraggy/oasdelta/differ"
//
//	result, err := differ.DiffWithOptions(
//		differ.WithSourceFilePath("api-v1.yaml"),
//		differ.WithTargetFilePath("api-v2.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, change := range result.Changes {
//		fmt.Println(change.String())
//	}
//
// Produce a full classified report:
//
//	import "github.com/erraggy/oasdelta/comparator"
//
//	c := comparator.New()
//	c.OutputDir = "updates"
//	res, err := c.Compare(ctx, comparator.Request{
//		SourcePath:  "api-v1.yaml",
//		TargetPath:  "api-v2.yaml",
//		RepoName:    "billing-api",
//		WriteReport: true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s -> %s\n", res.Summary.Verdict, res.ReportPath)
//
// # Command Line
//
// The oasdelta binary exposes the same pipeline as subcommands:
//
//	oasdelta diff api-v1.yaml api-v2.yaml
//	oasdelta report --save --repo-name billing-api --output-dir updates api-v1.yaml api-v2.yaml
//	oasdelta compare-git ./billing openapi.json v1.2.0 v1.3.0
//	oasdelta serve --addr :8080
//	oasdelta mcp
//
// # Versioning
//
// Version details are injected at build time; see Version, Commit, BuildTime,
// and BuildInfo.
package oasdelta
