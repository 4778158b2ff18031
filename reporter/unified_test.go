package reporter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdelta/classifier"
	"github.com/erraggy/oasdelta/differ"
	"github.com/erraggy/oasdelta/internal/testutil"
)

func TestSourceDiff(t *testing.T) {
	oldDoc := testutil.BaseDocument()
	newDoc := testutil.CopyDocument(oldDoc)
	newDoc["info"].(map[string]any)["version"] = "2.0.0"

	section, err := New().SourceDiff(oldDoc, newDoc, testMeta)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(section, "## Source Diff\n\n```diff\n"))
	assert.True(t, strings.HasSuffix(section, "```\n"))
	assert.Contains(t, section, "--- old.yaml")
	assert.Contains(t, section, "+++ new.yaml")
	assert.Contains(t, section, "-    version: 1.0.0")
	assert.Contains(t, section, "+    version: 2.0.0")
}

func TestSourceDiff_EqualDocuments(t *testing.T) {
	doc := testutil.BaseDocument()

	section, err := New().SourceDiff(doc, testutil.CopyDocument(doc), testMeta)
	require.NoError(t, err)

	assert.NotContains(t, section, "@@", "equal documents produce no hunks")
}

func TestSourceDiff_MaxBytes(t *testing.T) {
	oldDoc := testutil.BaseDocument()
	newDoc := testutil.CopyDocument(oldDoc)
	newDoc["info"].(map[string]any)["description"] = strings.Repeat("changed ", 64)

	r := New()
	r.MaxRawDiffBytes = 16
	section, err := r.SourceDiff(oldDoc, newDoc, testMeta)
	require.NoError(t, err)

	assert.Contains(t, section, "diff omitted")
	assert.NotContains(t, section, "@@")
}

func TestRenderWithDiff(t *testing.T) {
	oldDoc := testutil.BaseDocument()
	newDoc := testutil.CopyDocument(oldDoc)
	newDoc["info"].(map[string]any)["version"] = "2.0.0"

	result := differ.New().DiffDocuments(oldDoc, newDoc)
	c := classifier.New()
	records := c.ClassifyAll(result.Changes)
	sum := c.Summarize(records)

	t.Run("disabled by default", func(t *testing.T) {
		text, err := New().RenderWithDiff(sum, records, testMeta, oldDoc, newDoc)
		require.NoError(t, err)
		assert.NotContains(t, text, "## Source Diff")
	})

	t.Run("enabled", func(t *testing.T) {
		r := New()
		r.IncludeRawDiff = true
		text, err := r.RenderWithDiff(sum, records, testMeta, oldDoc, newDoc)
		require.NoError(t, err)
		assert.Contains(t, text, "## Source Diff")
		assert.Less(t,
			strings.Index(text, "## Raw Differences"),
			strings.Index(text, "## Source Diff"),
			"diff appendix renders after the raw listing")
	})
}
