/*
Package classifier categorizes structural specification changes and derives
an overall verdict.

# Overview

The classifier takes the differ's change list and assigns each change exactly
one Category based on where in the document it occurred: changes under paths
become endpoint categories (split by change kind into new, removed, and
modified endpoint), changes under components security schemes become
security, reusable schemas, parameters, and responses become schema, info
becomes documentation, and everything else is internal.

Categories split into API surface (new-endpoint, removed-endpoint,
modified-endpoint, security, schema) and non-API surface (documentation,
internal). The Summary's verdict follows from that split: any API surface
change makes the whole comparison an API Change, otherwise it is a
Production Update, and an empty change list is No Changes.

# Rule Matching

Rules match on whole path segments, never on substrings. A change at
root['x-paths'] is internal, not an endpoint change, and a key named "paths"
nested deeper in the document does not trigger the endpoint rule. Rules are
checked in order with first match winning, so the endpoint rule covers
everything at any depth under paths.

The rule table is replaceable. For OAS 2.0 documents, where schemas live
under definitions and security schemes under securityDefinitions, append
rules for those regions:

	c := classifier.New()
	c.Rules = append(c.Rules,
		classifier.Rule{
			Prefix:   []string{"definitions"},
			Added:    classifier.CategorySchema,
			Removed:  classifier.CategorySchema,
			Modified: classifier.CategorySchema,
		},
		classifier.Rule{
			Prefix:   []string{"securityDefinitions"},
			Added:    classifier.CategorySecurity,
			Removed:  classifier.CategorySecurity,
			Modified: classifier.CategorySecurity,
		},
	)

# Example

	d := differ.New()
	result := d.DiffDocuments(oldDoc, newDoc)

	c := classifier.New()
	records := c.ClassifyAll(result.Changes)
	summary := c.Summarize(records)

	fmt.Println(summary.Verdict) // "API Change"
	fmt.Println(summary.Headline())
*/
package classifier
