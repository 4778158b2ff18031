// Package diffpath provides the path address value type used to locate a node
// inside a parsed document tree.
//
// A Path is an ordered sequence of segments, each either a map key
// (ChildSegment) or a sequence index (IndexSegment). Paths are immutable:
// Child and Index return new values and never alias the receiver, so a path
// captured at one point of a tree walk is unaffected by later descent.
//
// The display form (for example root['paths']['/users'][0]) exists for
// reports and prompts only. Equality and prefix matching always operate on
// the segment sequence, never on the rendered string, and the display form
// is not required to parse back.
package diffpath

import (
	"strconv"
	"strings"
)

// Segment represents a single step in a Path.
type Segment interface {
	// segmentType returns a string identifying the segment type for debugging.
	segmentType() string

	// String returns the display form of this segment, e.g. ['paths'] or [0].
	String() string
}

// ChildSegment represents descent into a map value by key.
type ChildSegment struct {
	Key string
}

func (s ChildSegment) segmentType() string { return "child" }

// String returns the bracketed, quoted display form of the key.
func (s ChildSegment) String() string {
	return "['" + escapeKey(s.Key) + "']"
}

// IndexSegment represents descent into a sequence value by position.
type IndexSegment struct {
	Index int
}

func (s IndexSegment) segmentType() string { return "index" }

// String returns the bracketed display form of the index.
func (s IndexSegment) String() string {
	return "[" + strconv.Itoa(s.Index) + "]"
}

// Path is an immutable address of a node within a document tree.
// The zero value addresses the document root.
type Path struct {
	segments []Segment
}

// Root returns the path of the document root (no segments).
func Root() Path {
	return Path{}
}

// Child returns a new Path extending p with a map key segment.
func (p Path) Child(key string) Path {
	return p.extend(ChildSegment{Key: key})
}

// Index returns a new Path extending p with a sequence index segment.
func (p Path) Index(i int) Path {
	return p.extend(IndexSegment{Index: i})
}

// extend copies the segment slice so sibling paths never share backing arrays.
func (p Path) extend(seg Segment) Path {
	segments := make([]Segment, len(p.segments)+1)
	copy(segments, p.segments)
	segments[len(p.segments)] = seg
	return Path{segments: segments}
}

// Len returns the number of segments in the path.
func (p Path) Len() int {
	return len(p.segments)
}

// Segments returns a copy of the segment sequence.
func (p Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// Equal reports whether p and other have identical segment sequences.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, seg := range p.segments {
		// Segment implementations are comparable structs, so interface
		// comparison checks both dynamic type and value.
		if seg != other.segments[i] {
			return false
		}
	}
	return true
}

// First returns the key of the first segment when it is a map key segment.
// The second return is false for an empty path or a leading index segment.
func (p Path) First() (string, bool) {
	if len(p.segments) == 0 {
		return "", false
	}
	child, ok := p.segments[0].(ChildSegment)
	if !ok {
		return "", false
	}
	return child.Key, true
}

// HasPrefix reports whether the path begins with the given map keys, one
// whole segment per key. Matching is segment-wise: a key matches only a
// ChildSegment with exactly that key, so a field literally named "paths"
// nested deeper in the tree never matches the prefix ("paths").
func (p Path) HasPrefix(keys ...string) bool {
	if len(keys) > len(p.segments) {
		return false
	}
	for i, key := range keys {
		child, ok := p.segments[i].(ChildSegment)
		if !ok || child.Key != key {
			return false
		}
	}
	return true
}

// String returns the canonical display form, e.g. root['paths']['/users'][0].
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("root")
	for _, seg := range p.segments {
		b.WriteString(seg.String())
	}
	return b.String()
}

// escapeKey escapes backslashes and single quotes so any key renders
// unambiguously inside the bracketed quote form.
func escapeKey(key string) string {
	if !strings.ContainsAny(key, `\'`) {
		return key
	}
	var b strings.Builder
	for _, r := range key {
		if r == '\\' || r == '\'' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
