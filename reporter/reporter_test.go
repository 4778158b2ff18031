package reporter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdelta/classifier"
	"github.com/erraggy/oasdelta/differ"
	"github.com/erraggy/oasdelta/diffpath"
)

func keyPath(keys ...string) diffpath.Path {
	p := diffpath.Root()
	for _, k := range keys {
		p = p.Child(k)
	}
	return p
}

func record(cat classifier.Category, t differ.ChangeType, oldVal, newVal any, keys ...string) classifier.ClassifiedChange {
	return classifier.ClassifiedChange{
		Change: differ.Change{
			Path:     keyPath(keys...),
			Type:     t,
			OldValue: oldVal,
			NewValue: newVal,
		},
		Category: cat,
	}
}

var testMeta = Meta{
	RepoName:   "petstore",
	Date:       "2025-06-01",
	SourcePath: "old.yaml",
	TargetPath: "new.yaml",
}

func TestRender_NoChanges(t *testing.T) {
	sum := classifier.New().Summarize(nil)
	text := New().Render(sum, nil, testMeta)

	assert.True(t, strings.HasPrefix(text, "# No Changes\n"), "report must open with the verdict")
	assert.Contains(t, text, "No changes detected")
	assert.Contains(t, text, "**Repository:** petstore")
	assert.NotContains(t, text, "## Raw Differences")
	assert.NotContains(t, text, "## New Endpoints")
}

func TestRender_SectionOrderAndOmission(t *testing.T) {
	records := []classifier.ClassifiedChange{
		record(classifier.CategoryInternal, differ.ChangeTypeModified, "3.0.0", "3.0.3", "openapi"),
		record(classifier.CategoryNewEndpoint, differ.ChangeTypeAdded, nil, map[string]any{"get": map[string]any{}}, "paths", "/owners"),
		record(classifier.CategorySchema, differ.ChangeTypeModified, "integer", "string", "components", "schemas", "Pet", "properties", "id", "type"),
	}
	sum := classifier.New().Summarize(records)
	text := New().Render(sum, records, testMeta)

	assert.True(t, strings.HasPrefix(text, "# API Change\n"))

	newIdx := strings.Index(text, "## New Endpoints")
	schemaIdx := strings.Index(text, "## Schema Changes")
	internalIdx := strings.Index(text, "## Internal Changes")
	rawIdx := strings.Index(text, "## Raw Differences")
	require.NotEqual(t, -1, newIdx)
	require.NotEqual(t, -1, schemaIdx)
	require.NotEqual(t, -1, internalIdx)
	require.NotEqual(t, -1, rawIdx)
	assert.Less(t, newIdx, schemaIdx, "API surface sections come first")
	assert.Less(t, schemaIdx, internalIdx)
	assert.Less(t, internalIdx, rawIdx, "raw listing comes last")

	// Categories with no records produce no section at all.
	assert.NotContains(t, text, "## Removed Endpoints")
	assert.NotContains(t, text, "## Modified Endpoints")
	assert.NotContains(t, text, "## Security Changes")
	assert.NotContains(t, text, "## Documentation Changes")
}

func TestRender_ScalarValuesInline(t *testing.T) {
	records := []classifier.ClassifiedChange{
		record(classifier.CategoryDocumentation, differ.ChangeTypeModified, "1.0.0", "2.0.0", "info", "version"),
	}
	sum := classifier.New().Summarize(records)
	text := New().Render(sum, records, testMeta)

	assert.Contains(t, text, "- modified `root['info']['version']`: \"1.0.0\" -> \"2.0.0\"\n")
}

func TestRender_CompositeValuesAsCanonicalYAML(t *testing.T) {
	added := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	}
	records := []classifier.ClassifiedChange{
		record(classifier.CategorySchema, differ.ChangeTypeAdded, nil, added, "components", "schemas", "Owner"),
	}
	sum := classifier.New().Summarize(records)
	text := New().Render(sum, records, testMeta)

	// Composite values stay out of the section bullet and render as
	// sorted-key YAML in the raw listing.
	assert.Contains(t, text, "- added `root['components']['schemas']['Owner']`\n")
	assert.Contains(t, text, "### root['components']['schemas']['Owner']")
	assert.Contains(t, text, "```yaml\nproperties:\n")
	assert.Less(t,
		strings.Index(text, "properties:"),
		strings.Index(text, "type: object"),
		"map keys must render sorted")
}

func TestRender_RawSectionValueBlocks(t *testing.T) {
	records := []classifier.ClassifiedChange{
		record(classifier.CategoryDocumentation, differ.ChangeTypeModified, "Old text", "New text", "info", "description"),
		record(classifier.CategoryInternal, differ.ChangeTypeRemoved, "https://api.example.com", nil, "servers"),
	}
	sum := classifier.New().Summarize(records)
	text := New().Render(sum, records, testMeta)

	rawIdx := strings.Index(text, "## Raw Differences")
	require.NotEqual(t, -1, rawIdx)
	raw := text[rawIdx:]

	assert.Contains(t, raw, "### root['info']['description']")
	assert.Contains(t, raw, "**Old:**\n\n```yaml\n\"Old text\"\n```")
	assert.Contains(t, raw, "**New:**\n\n```yaml\n\"New text\"\n```")

	// Removed records carry only the old value.
	removedIdx := strings.Index(raw, "### root['servers']")
	require.NotEqual(t, -1, removedIdx)
	assert.NotContains(t, raw[removedIdx:], "**New:**")
}

func TestRender_NullIsRenderedAsNull(t *testing.T) {
	records := []classifier.ClassifiedChange{
		record(classifier.CategoryDocumentation, differ.ChangeTypeModified, "something", nil, "info", "description"),
	}
	sum := classifier.New().Summarize(records)
	text := New().Render(sum, records, testMeta)

	assert.Contains(t, text, "- modified `root['info']['description']`: \"something\" -> null\n")
	assert.Contains(t, text, "**New:**\n\n```yaml\nnull\n```")
}

func TestRender_ContextLine(t *testing.T) {
	sum := classifier.New().Summarize(nil)

	full := New().Render(sum, nil, testMeta)
	assert.Contains(t, full, "**Repository:** petstore | **Date:** 2025-06-01 | Comparing `old.yaml` -> `new.yaml`")

	empty := New().Render(sum, nil, Meta{})
	assert.NotContains(t, empty, "**Repository:**")
	assert.NotContains(t, empty, "Comparing")
}

func TestRender_Deterministic(t *testing.T) {
	records := []classifier.ClassifiedChange{
		record(classifier.CategoryNewEndpoint, differ.ChangeTypeAdded, nil,
			map[string]any{"get": map[string]any{"summary": "List"}, "post": map[string]any{"summary": "Create"}},
			"paths", "/owners"),
		record(classifier.CategoryDocumentation, differ.ChangeTypeModified, "1.0.0", "1.1.0", "info", "version"),
	}
	sum := classifier.New().Summarize(records)

	first := New().Render(sum, records, testMeta)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, New().Render(sum, records, testMeta))
	}
}

func TestRenderRawLines(t *testing.T) {
	records := []classifier.ClassifiedChange{
		record(classifier.CategoryDocumentation, differ.ChangeTypeModified, "1.0.0", "2.0.0", "info", "version"),
		record(classifier.CategoryNewEndpoint, differ.ChangeTypeAdded, nil, "stub", "paths", "/owners"),
	}

	text := RenderRawLines(records)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "[documentation] modified root['info']['version']: 1.0.0 -> 2.0.0", lines[0])
	assert.Equal(t, "[new-endpoint] added root['paths']['/owners']: stub", lines[1])
}

func TestSectionHeading(t *testing.T) {
	tests := []struct {
		category classifier.Category
		expected string
	}{
		{classifier.CategoryNewEndpoint, "New Endpoints"},
		{classifier.CategoryRemovedEndpoint, "Removed Endpoints"},
		{classifier.CategoryModifiedEndpoint, "Modified Endpoints"},
		{classifier.CategorySecurity, "Security Changes"},
		{classifier.CategorySchema, "Schema Changes"},
		{classifier.CategoryDocumentation, "Documentation Changes"},
		{classifier.CategoryInternal, "Internal Changes"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.expected, sectionHeading(tt.category))
		})
	}
}
