package differ

import (
	"fmt"

	"github.com/erraggy/oasdelta/deltaerrors"
	"github.com/erraggy/oasdelta/diffpath"
	"github.com/erraggy/oasdelta/internal/equalutil"
	"github.com/erraggy/oasdelta/internal/maputil"
	"github.com/erraggy/oasdelta/parser"
)

// ChangeType indicates whether a change is an addition, removal, or modification
type ChangeType string

const (
	// ChangeTypeAdded indicates a new element was added
	ChangeTypeAdded ChangeType = "added"
	// ChangeTypeRemoved indicates an element was removed
	ChangeTypeRemoved ChangeType = "removed"
	// ChangeTypeModified indicates an existing element was changed
	ChangeTypeModified ChangeType = "modified"
)

// Change represents a single difference between two OpenAPI specifications.
//
// The Path addresses the deepest element that diverged: when both documents
// hold a mapping or a sequence at the same position, the difference is
// reported inside it, never at the container itself. Additions carry only
// NewValue, removals only OldValue. Modifications carry both, and the two
// values are never deep-equal.
type Change struct {
	// Path is the address of the changed element
	Path diffpath.Path
	// Type indicates if this is an addition, removal, or modification
	Type ChangeType
	// OldValue is the value in the source document (nil for additions)
	OldValue any
	// NewValue is the value in the target document (nil for removals)
	NewValue any
}

// String returns a one-line representation of the change.
// Map values render with sorted keys, so output is deterministic.
func (c Change) String() string {
	switch c.Type {
	case ChangeTypeAdded:
		return fmt.Sprintf("added %s: %v", c.Path, c.NewValue)
	case ChangeTypeRemoved:
		return fmt.Sprintf("removed %s: %v", c.Path, c.OldValue)
	case ChangeTypeModified:
		return fmt.Sprintf("modified %s: %v -> %v", c.Path, c.OldValue, c.NewValue)
	default:
		return fmt.Sprintf("%s %s", c.Type, c.Path)
	}
}

// DiffResult contains the results of comparing two OpenAPI specifications
type DiffResult struct {
	// SourcePath is the source document's input path (empty when diffing raw maps)
	SourcePath string
	// TargetPath is the target document's input path (empty when diffing raw maps)
	TargetPath string
	// Changes contains all detected changes in walk order
	Changes []Change
	// AddedCount is the number of added elements
	AddedCount int
	// RemovedCount is the number of removed elements
	RemovedCount int
	// ModifiedCount is the number of modified elements
	ModifiedCount int
}

// HasChanges returns true if any differences were detected
func (r *DiffResult) HasChanges() bool {
	return len(r.Changes) > 0
}

// Differ handles OpenAPI specification comparison
type Differ struct {
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "oasdelta" if not set
	UserAgent string
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// New creates a new Differ instance with default settings
func New() *Differ {
	return &Differ{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (d *Differ) log() parser.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return parser.NopLogger{}
}

// Diff compares two OpenAPI specification files or URLs
func (d *Differ) Diff(sourcePath, targetPath string) (*DiffResult, error) {
	p := parser.New()
	if d.UserAgent != "" {
		p.UserAgent = d.UserAgent
	}
	p.Logger = d.Logger

	sourceResult, err := p.Parse(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("differ: failed to parse source specification: %w", err)
	}

	targetResult, err := p.Parse(targetPath)
	if err != nil {
		return nil, fmt.Errorf("differ: failed to parse target specification: %w", err)
	}

	return d.DiffParsed(sourceResult, targetResult)
}

// DiffParsed compares two already-parsed OpenAPI specifications
func (d *Differ) DiffParsed(source, target *parser.ParseResult) (*DiffResult, error) {
	if source == nil || target == nil {
		return nil, &deltaerrors.ConfigError{
			Option:  "source/target",
			Message: "parsed documents must be non-nil",
		}
	}

	result := d.DiffDocuments(source.Document, target.Document)
	result.SourcePath = source.SourcePath
	result.TargetPath = target.SourcePath

	d.log().Debug("diff complete",
		"source", result.SourcePath,
		"target", result.TargetPath,
		"added", result.AddedCount,
		"removed", result.RemovedCount,
		"modified", result.ModifiedCount)

	return result, nil
}

// DiffDocuments compares two documents given as generic maps.
//
// The walk is deterministic: map keys are visited in lexicographic order,
// sequence indices ascending, depth-first. Repeated runs over the same pair
// of documents always produce the identical change list. Comparing a
// document against itself produces no changes, and swapping the two inputs
// turns every addition into a removal (and vice versa) at the same paths.
func (d *Differ) DiffDocuments(oldDoc, newDoc map[string]any) *DiffResult {
	result := &DiffResult{
		Changes: make([]Change, 0),
	}

	d.diffMaps(diffpath.Root(), oldDoc, newDoc, &result.Changes)

	for _, change := range result.Changes {
		switch change.Type {
		case ChangeTypeAdded:
			result.AddedCount++
		case ChangeTypeRemoved:
			result.RemovedCount++
		case ChangeTypeModified:
			result.ModifiedCount++
		}
	}

	return result
}

// diffValue compares a pair of values found at the same path in both
// documents and appends any differences.
func (d *Differ) diffValue(path diffpath.Path, oldVal, newVal any, changes *[]Change) {
	// Equal subtrees produce nothing. Numeric equality is checked across
	// decode types, so YAML's int and JSON's float64 for the same source
	// number do not diff.
	if equalutil.Equal(oldVal, newVal) {
		return
	}

	oldMap, oldIsMap := oldVal.(map[string]any)
	newMap, newIsMap := newVal.(map[string]any)
	if oldIsMap && newIsMap {
		d.diffMaps(path, oldMap, newMap, changes)
		return
	}

	oldSeq, oldIsSeq := oldVal.([]any)
	newSeq, newIsSeq := newVal.([]any)
	if oldIsSeq && newIsSeq {
		d.diffSequences(path, oldSeq, newSeq, changes)
		return
	}

	// Scalars, or containers of different kinds: a single modification at
	// this path with both values verbatim. No recursion below a kind
	// mismatch, even when one side is a container.
	*changes = append(*changes, Change{
		Path:     path,
		Type:     ChangeTypeModified,
		OldValue: oldVal,
		NewValue: newVal,
	})
}

// diffMaps walks the union of both maps' keys in lexicographic order.
// A key missing from one side is an addition or removal of the whole
// subtree under it; a nil value under a present key is a value, not an
// absence.
func (d *Differ) diffMaps(path diffpath.Path, oldMap, newMap map[string]any, changes *[]Change) {
	for _, key := range maputil.SortedKeyUnion(oldMap, newMap) {
		childPath := path.Child(key)
		oldVal, inOld := oldMap[key]
		newVal, inNew := newMap[key]
		switch {
		case !inOld:
			*changes = append(*changes, Change{
				Path:     childPath,
				Type:     ChangeTypeAdded,
				NewValue: newVal,
			})
		case !inNew:
			*changes = append(*changes, Change{
				Path:     childPath,
				Type:     ChangeTypeRemoved,
				OldValue: oldVal,
			})
		default:
			d.diffValue(childPath, oldVal, newVal, changes)
		}
	}
}

// diffSequences compares sequences index-wise up to the shorter length,
// then reports each excess element individually.
func (d *Differ) diffSequences(path diffpath.Path, oldSeq, newSeq []any, changes *[]Change) {
	minLen := len(oldSeq)
	if len(newSeq) < minLen {
		minLen = len(newSeq)
	}

	for i := 0; i < minLen; i++ {
		d.diffValue(path.Index(i), oldSeq[i], newSeq[i], changes)
	}
	for i := minLen; i < len(newSeq); i++ {
		*changes = append(*changes, Change{
			Path:     path.Index(i),
			Type:     ChangeTypeAdded,
			NewValue: newSeq[i],
		})
	}
	for i := minLen; i < len(oldSeq); i++ {
		*changes = append(*changes, Change{
			Path:     path.Index(i),
			Type:     ChangeTypeRemoved,
			OldValue: oldSeq[i],
		})
	}
}
