package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oasdelta/differ"
)

func record(category Category, keys ...string) ClassifiedChange {
	return ClassifiedChange{
		Change:   differ.Change{Path: keyPath(keys...), Type: differ.ChangeTypeModified},
		Category: category,
	}
}

func TestCategoryIsAPISurface(t *testing.T) {
	apiSurface := []Category{
		CategoryNewEndpoint,
		CategoryRemovedEndpoint,
		CategoryModifiedEndpoint,
		CategorySecurity,
		CategorySchema,
	}
	for _, cat := range apiSurface {
		assert.True(t, cat.IsAPISurface(), "%s should count as API surface", cat)
	}

	assert.False(t, CategoryDocumentation.IsAPISurface())
	assert.False(t, CategoryInternal.IsAPISurface())
}

func TestSummarize_NoRecords(t *testing.T) {
	s := New().Summarize(nil)

	assert.Equal(t, VerdictNoChanges, s.Verdict)
	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.Counts)
	assert.Equal(t, "No changes detected", s.Headline())
}

func TestSummarize_OnlyNonAPIChanges(t *testing.T) {
	s := New().Summarize([]ClassifiedChange{
		record(CategoryDocumentation, "info", "description"),
		record(CategoryInternal, "servers"),
		record(CategoryInternal, "openapi"),
	})

	assert.Equal(t, VerdictProductionUpdate, s.Verdict)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 0, s.APICount)
	assert.Equal(t, 3, s.NonAPICount)
	assert.Equal(t, 1, s.Counts[CategoryDocumentation])
	assert.Equal(t, 2, s.Counts[CategoryInternal])
	assert.Equal(t, "3 change(s), none touching the API surface", s.Headline())
}

func TestSummarize_MixedChanges(t *testing.T) {
	s := New().Summarize([]ClassifiedChange{
		record(CategoryNewEndpoint, "paths", "/owners"),
		record(CategorySchema, "components", "schemas", "Pet"),
		record(CategoryDocumentation, "info", "title"),
	})

	assert.Equal(t, VerdictAPIChange, s.Verdict)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.APICount)
	assert.Equal(t, 1, s.NonAPICount)
	assert.Equal(t, "2 API surface change(s), 1 other change(s)", s.Headline())
}

func TestSummarize_SingleAPISurfaceChangeIsEnough(t *testing.T) {
	s := New().Summarize([]ClassifiedChange{
		record(CategoryInternal, "servers"),
		record(CategoryInternal, "tags"),
		record(CategorySecurity, "components", "securitySchemes", "apiKey"),
	})

	assert.Equal(t, VerdictAPIChange, s.Verdict)
	assert.Equal(t, 1, s.APICount)
	assert.Equal(t, 2, s.NonAPICount)
}

func TestHeadline_ClassificationError(t *testing.T) {
	s := &Summary{Verdict: VerdictClassificationError}
	assert.Equal(t, "Classification could not be completed", s.Headline())
}
