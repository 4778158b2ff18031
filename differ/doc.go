/*
Package differ provides structural comparison of OpenAPI specifications.

# Overview

The differ package walks two parsed documents and reports every divergence as
a Change carrying the address of the deepest element that differs, the kind of
change (added, removed, modified), and the values involved. It works on
generic map[string]any document trees, so it supports any OAS version and
preserves vendor extensions.

The differ reports what changed and where. It does not judge changes; use the
classifier package to categorize changes and derive a verdict, and the
reporter package to render the result.

# Walk Semantics

  - Mappings are compared over the union of their keys. A key present on only
    one side is reported as a single addition or removal of the whole subtree
    under it. Shared keys recurse.
  - Sequences are compared index by index up to the shorter length; each
    excess element on the longer side is its own addition or removal.
  - Scalars, and positions where the two documents hold different kinds of
    values (a mapping on one side, a scalar or sequence on the other), produce
    a single modification carrying both values verbatim.
  - Deeply equal subtrees produce nothing. Numeric equality holds across
    decode representations, so the same document parsed from YAML and from
    JSON diffs as identical.
  - An explicit null is a value: a key mapped to null is present, and only
    becomes an addition or removal when the key itself appears or disappears.

# Determinism

Map keys are visited in lexicographic order, sequence indices ascending,
depth-first. Repeated runs over the same documents produce byte-identical
change lists. Comparing a document with itself yields no changes, and
swapping source and target turns every addition into a removal at the same
path (modifications keep their path and swap values).

# Usage

The package provides two API styles:

 1. Package-level DiffWithOptions for one-off operations
 2. Struct-based Differ for reusable instances with custom configuration

# Example

	package main

	import (
		"fmt"
		"log"

		"github.com/erraggy/oasdelta/differ"
	)

	func main() {
		result, err := differ.DiffWithOptions(
			differ.WithSourceFilePath("api-v1.yaml"),
			differ.WithTargetFilePath("api-v2.yaml"),
		)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Found %d changes\n", len(result.Changes))
		for _, change := range result.Changes {
			fmt.Println(change.String())
		}
	}

# Example (Reusable Differ Instance)

	package main

	import (
		"fmt"
		"log"

		"github.com/erraggy/oasdelta/differ"
	)

	func main() {
		d := differ.New()

		result, err := d.Diff("api-v1.yaml", "api-v2.yaml")
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("%d added, %d removed, %d modified\n",
			result.AddedCount, result.RemovedCount, result.ModifiedCount)
	}

# Input Sources

Sources and targets can be file paths, http(s) URLs, or already-parsed
documents (WithSourceParsed/WithTargetParsed). Exactly one source and one
target must be provided; anything else is a configuration error.
*/
package differ
