package differ

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdelta/deltaerrors"
	"github.com/erraggy/oasdelta/diffpath"
	"github.com/erraggy/oasdelta/internal/testutil"
	"github.com/erraggy/oasdelta/parser"
)

// changeKeys flattens a result into "type path" strings for order assertions.
func changeKeys(result *DiffResult) []string {
	keys := make([]string, 0, len(result.Changes))
	for _, c := range result.Changes {
		keys = append(keys, string(c.Type)+" "+c.Path.String())
	}
	return keys
}

func pathOf(t *testing.T, keys ...string) diffpath.Path {
	t.Helper()
	p := diffpath.Root()
	for _, k := range keys {
		p = p.Child(k)
	}
	return p
}

func TestDifferNew(t *testing.T) {
	d := New()
	if d == nil {
		t.Fatal("Expected non-nil Differ")
	}
	if d.Logger != nil {
		t.Error("Expected no logger by default")
	}
}

func TestDiffDocuments_Identical(t *testing.T) {
	d := New()
	doc := testutil.BaseDocument()

	result := d.DiffDocuments(doc, doc)

	assert.False(t, result.HasChanges())
	assert.Empty(t, result.Changes)
	assert.Zero(t, result.AddedCount)
	assert.Zero(t, result.RemovedCount)
	assert.Zero(t, result.ModifiedCount)
}

func TestDiffDocuments_EqualCopies(t *testing.T) {
	d := New()
	result := d.DiffDocuments(testutil.BaseDocument(), testutil.BaseDocument())
	assert.False(t, result.HasChanges())
}

func TestDiffDocuments_BothEmpty(t *testing.T) {
	d := New()
	result := d.DiffDocuments(map[string]any{}, map[string]any{})
	assert.False(t, result.HasChanges())
}

func TestDiffDocuments_ScalarModified(t *testing.T) {
	d := New()
	oldDoc := map[string]any{"info": map[string]any{"version": "1.0.0"}}
	newDoc := map[string]any{"info": map[string]any{"version": "1.1.0"}}

	result := d.DiffDocuments(oldDoc, newDoc)

	require.Len(t, result.Changes, 1)
	change := result.Changes[0]
	assert.Equal(t, ChangeTypeModified, change.Type)
	assert.Equal(t, "root['info']['version']", change.Path.String())
	assert.Equal(t, "1.0.0", change.OldValue)
	assert.Equal(t, "1.1.0", change.NewValue)
	assert.Equal(t, 1, result.ModifiedCount)
}

func TestDiffDocuments_ReportsDeepestPath(t *testing.T) {
	d := New()
	oldDoc := map[string]any{
		"paths": map[string]any{
			"/pets": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": map[string]any{"description": "ok"},
					},
				},
			},
		},
	}
	newDoc := map[string]any{
		"paths": map[string]any{
			"/pets": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": map[string]any{"description": "a list of pets"},
					},
				},
			},
		},
	}

	result := d.DiffDocuments(oldDoc, newDoc)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, "root['paths']['/pets']['get']['responses']['200']['description']",
		result.Changes[0].Path.String())
}

func TestDiffDocuments_KeyAdded(t *testing.T) {
	d := New()
	oldDoc := map[string]any{"paths": map[string]any{}}
	newSubtree := map[string]any{"get": map[string]any{"summary": "List users"}}
	newDoc := map[string]any{"paths": map[string]any{"/users": newSubtree}}

	result := d.DiffDocuments(oldDoc, newDoc)

	require.Len(t, result.Changes, 1, "a new subtree is one addition, not one per leaf")
	change := result.Changes[0]
	assert.Equal(t, ChangeTypeAdded, change.Type)
	assert.Equal(t, "root['paths']['/users']", change.Path.String())
	assert.Nil(t, change.OldValue)
	assert.Equal(t, newSubtree, change.NewValue)
	assert.Equal(t, 1, result.AddedCount)
}

func TestDiffDocuments_KeyRemoved(t *testing.T) {
	d := New()
	oldSubtree := map[string]any{"get": map[string]any{"summary": "List users"}}
	oldDoc := map[string]any{"paths": map[string]any{"/users": oldSubtree}}
	newDoc := map[string]any{"paths": map[string]any{}}

	result := d.DiffDocuments(oldDoc, newDoc)

	require.Len(t, result.Changes, 1)
	change := result.Changes[0]
	assert.Equal(t, ChangeTypeRemoved, change.Type)
	assert.Equal(t, "root['paths']['/users']", change.Path.String())
	assert.Equal(t, oldSubtree, change.OldValue)
	assert.Nil(t, change.NewValue)
	assert.Equal(t, 1, result.RemovedCount)
}

func TestDiffDocuments_NullIsAValue(t *testing.T) {
	d := New()

	t.Run("null versus absent", func(t *testing.T) {
		result := d.DiffDocuments(map[string]any{"a": nil}, map[string]any{})
		require.Len(t, result.Changes, 1)
		assert.Equal(t, ChangeTypeRemoved, result.Changes[0].Type)
		assert.Equal(t, "root['a']", result.Changes[0].Path.String())
		assert.Nil(t, result.Changes[0].OldValue)
	})

	t.Run("absent versus null", func(t *testing.T) {
		result := d.DiffDocuments(map[string]any{}, map[string]any{"a": nil})
		require.Len(t, result.Changes, 1)
		assert.Equal(t, ChangeTypeAdded, result.Changes[0].Type)
		assert.Nil(t, result.Changes[0].NewValue)
	})

	t.Run("null versus value", func(t *testing.T) {
		result := d.DiffDocuments(map[string]any{"a": nil}, map[string]any{"a": 1})
		require.Len(t, result.Changes, 1)
		assert.Equal(t, ChangeTypeModified, result.Changes[0].Type)
		assert.Nil(t, result.Changes[0].OldValue)
		assert.Equal(t, 1, result.Changes[0].NewValue)
	})

	t.Run("null versus null", func(t *testing.T) {
		result := d.DiffDocuments(map[string]any{"a": nil}, map[string]any{"a": nil})
		assert.Empty(t, result.Changes)
	})
}

func TestDiffDocuments_TypeMismatchIsSingleModification(t *testing.T) {
	d := New()

	tests := []struct {
		name   string
		oldVal any
		newVal any
	}{
		{
			name:   "map replaced by scalar",
			oldVal: map[string]any{"deep": map[string]any{"leaf": 1}},
			newVal: "flattened",
		},
		{
			name:   "scalar replaced by sequence",
			oldVal: "single",
			newVal: []any{"a", "b"},
		},
		{
			name:   "sequence replaced by map",
			oldVal: []any{1, 2, 3},
			newVal: map[string]any{"0": 1},
		},
		{
			name:   "bool replaced by string",
			oldVal: true,
			newVal: "true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.DiffDocuments(
				map[string]any{"x": tt.oldVal},
				map[string]any{"x": tt.newVal},
			)
			require.Len(t, result.Changes, 1, "kind mismatch must not recurse")
			change := result.Changes[0]
			assert.Equal(t, ChangeTypeModified, change.Type)
			assert.Equal(t, "root['x']", change.Path.String())
			assert.Equal(t, tt.oldVal, change.OldValue)
			assert.Equal(t, tt.newVal, change.NewValue)
		})
	}
}

func TestDiffDocuments_Sequences(t *testing.T) {
	d := New()

	t.Run("element modified in place", func(t *testing.T) {
		result := d.DiffDocuments(
			map[string]any{"tags": []any{"a", "b", "c"}},
			map[string]any{"tags": []any{"a", "x", "c"}},
		)
		require.Len(t, result.Changes, 1)
		assert.Equal(t, "root['tags'][1]", result.Changes[0].Path.String())
		assert.Equal(t, ChangeTypeModified, result.Changes[0].Type)
	})

	t.Run("elements appended", func(t *testing.T) {
		result := d.DiffDocuments(
			map[string]any{"tags": []any{"a"}},
			map[string]any{"tags": []any{"a", "b", "c"}},
		)
		assert.Equal(t, []string{
			"added root['tags'][1]",
			"added root['tags'][2]",
		}, changeKeys(result))
	})

	t.Run("elements truncated", func(t *testing.T) {
		result := d.DiffDocuments(
			map[string]any{"tags": []any{"a", "b", "c"}},
			map[string]any{"tags": []any{"a"}},
		)
		assert.Equal(t, []string{
			"removed root['tags'][1]",
			"removed root['tags'][2]",
		}, changeKeys(result))
	})

	t.Run("shift reported per index", func(t *testing.T) {
		// Index-wise comparison has no move detection: removing the head
		// modifies every surviving index and removes the tail.
		result := d.DiffDocuments(
			map[string]any{"tags": []any{"a", "b", "c"}},
			map[string]any{"tags": []any{"b", "c"}},
		)
		assert.Equal(t, []string{
			"modified root['tags'][0]",
			"modified root['tags'][1]",
			"removed root['tags'][2]",
		}, changeKeys(result))
	})

	t.Run("nested map inside sequence", func(t *testing.T) {
		result := d.DiffDocuments(
			map[string]any{"servers": []any{map[string]any{"url": "https://a"}}},
			map[string]any{"servers": []any{map[string]any{"url": "https://b"}}},
		)
		require.Len(t, result.Changes, 1)
		assert.Equal(t, "root['servers'][0]['url']", result.Changes[0].Path.String())
	})
}

func TestDiffDocuments_Ordering(t *testing.T) {
	d := New()
	oldDoc := map[string]any{
		"zebra": 1,
		"apple": map[string]any{"x": 1, "a": 2},
		"mango": []any{1, 2},
	}
	newDoc := map[string]any{
		"zebra": 2,
		"apple": map[string]any{"x": 9, "b": 3},
		"mango": []any{1, 2, 3},
	}

	result := d.DiffDocuments(oldDoc, newDoc)

	// Lexicographic keys, ascending indices, depth-first.
	assert.Equal(t, []string{
		"removed root['apple']['a']",
		"added root['apple']['b']",
		"modified root['apple']['x']",
		"added root['mango'][2]",
		"modified root['zebra']",
	}, changeKeys(result))
}

func TestDiffDocuments_Deterministic(t *testing.T) {
	d := New()
	oldDoc := testutil.BaseDocument()
	newDoc := testutil.CopyDocument(oldDoc)
	paths := newDoc["paths"].(map[string]any)
	paths["/owners"] = map[string]any{"get": map[string]any{"summary": "List owners"}}
	delete(paths, "/pets/{petId}")
	newDoc["info"].(map[string]any)["version"] = "2.0.0"

	first := changeKeys(d.DiffDocuments(oldDoc, newDoc))
	require.NotEmpty(t, first)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, changeKeys(d.DiffDocuments(oldDoc, newDoc)), "run %d differs", i)
	}
}

func TestDiffDocuments_Symmetry(t *testing.T) {
	d := New()
	docA := testutil.BaseDocument()
	docB := testutil.CopyDocument(docA)
	pathsB := docB["paths"].(map[string]any)
	pathsB["/owners"] = map[string]any{"get": map[string]any{}}
	delete(pathsB, "/pets")
	docB["info"].(map[string]any)["version"] = "2.0.0"

	forward := d.DiffDocuments(docA, docB)
	reverse := d.DiffDocuments(docB, docA)

	require.Equal(t, len(forward.Changes), len(reverse.Changes))
	assert.Equal(t, forward.AddedCount, reverse.RemovedCount)
	assert.Equal(t, forward.RemovedCount, reverse.AddedCount)
	assert.Equal(t, forward.ModifiedCount, reverse.ModifiedCount)

	// Index the reverse run by path to pair up mirrored changes.
	reverseByPath := make(map[string]Change, len(reverse.Changes))
	for _, c := range reverse.Changes {
		reverseByPath[c.Path.String()] = c
	}

	for _, fwd := range forward.Changes {
		rev, ok := reverseByPath[fwd.Path.String()]
		require.True(t, ok, "no mirrored change at %s", fwd.Path)

		switch fwd.Type {
		case ChangeTypeAdded:
			assert.Equal(t, ChangeTypeRemoved, rev.Type)
			assert.Equal(t, fwd.NewValue, rev.OldValue)
		case ChangeTypeRemoved:
			assert.Equal(t, ChangeTypeAdded, rev.Type)
			assert.Equal(t, fwd.OldValue, rev.NewValue)
		case ChangeTypeModified:
			assert.Equal(t, ChangeTypeModified, rev.Type)
			assert.Equal(t, fwd.OldValue, rev.NewValue)
			assert.Equal(t, fwd.NewValue, rev.OldValue)
		}
	}
}

func TestDiffDocuments_NumericCrossTypes(t *testing.T) {
	d := New()

	t.Run("equal numbers in different decode types", func(t *testing.T) {
		result := d.DiffDocuments(
			map[string]any{"limit": 100},
			map[string]any{"limit": float64(100)},
		)
		assert.Empty(t, result.Changes, "100 and 100.0 are the same number")
	})

	t.Run("different numbers still diff", func(t *testing.T) {
		result := d.DiffDocuments(
			map[string]any{"limit": 100},
			map[string]any{"limit": 200},
		)
		require.Len(t, result.Changes, 1)
		assert.Equal(t, ChangeTypeModified, result.Changes[0].Type)
	})
}

func TestDiffParsed_CrossFormatInvariance(t *testing.T) {
	doc := testutil.BaseDocument()
	yamlPath := testutil.WriteTempYAML(t, doc)
	jsonPath := testutil.WriteTempJSON(t, doc)

	p := parser.New()
	fromYAML, err := p.Parse(yamlPath)
	require.NoError(t, err)
	fromJSON, err := p.Parse(jsonPath)
	require.NoError(t, err)

	d := New()
	result, err := d.DiffParsed(fromYAML, fromJSON)
	require.NoError(t, err)

	assert.Empty(t, result.Changes,
		"the same document loaded from YAML and JSON must not diff")
	assert.Equal(t, yamlPath, result.SourcePath)
	assert.Equal(t, jsonPath, result.TargetPath)
}

func TestDiffParsed_NilArguments(t *testing.T) {
	d := New()
	_, err := d.DiffParsed(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, deltaerrors.ErrConfig))
}

func TestDifferDiff_Files(t *testing.T) {
	oldDoc := testutil.BaseDocument()
	newDoc := testutil.CopyDocument(oldDoc)
	newDoc["info"].(map[string]any)["version"] = "1.1.0"

	d := New()
	result, err := d.Diff(testutil.WriteTempYAML(t, oldDoc), testutil.WriteTempYAML(t, newDoc))
	require.NoError(t, err)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, "root['info']['version']", result.Changes[0].Path.String())
}

func TestDifferDiff_InvalidSource(t *testing.T) {
	d := New()
	_, err := d.Diff("nonexistent.yaml", "also-nonexistent.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, deltaerrors.ErrLoad))
}

func TestChangeString(t *testing.T) {
	added := Change{
		Path:     pathOf(t, "paths", "/users"),
		Type:     ChangeTypeAdded,
		NewValue: map[string]any{"get": map[string]any{}},
	}
	assert.Equal(t, "added root['paths']['/users']: map[get:map[]]", added.String())

	removed := Change{
		Path:     pathOf(t, "info", "contact"),
		Type:     ChangeTypeRemoved,
		OldValue: "api@example.com",
	}
	assert.Equal(t, "removed root['info']['contact']: api@example.com", removed.String())

	modified := Change{
		Path:     pathOf(t, "info", "version"),
		Type:     ChangeTypeModified,
		OldValue: "1.0.0",
		NewValue: "2.0.0",
	}
	assert.Equal(t, "modified root['info']['version']: 1.0.0 -> 2.0.0", modified.String())
}
