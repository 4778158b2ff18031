package classifier

import "strings"

// Verdict is the overall outcome of comparing two specifications.
//
// The verdicts are ordered from least to most noteworthy:
// NoChanges < ProductionUpdate < APIChange.
type Verdict int

const (
	// VerdictNoChanges indicates the documents are deeply equal.
	VerdictNoChanges Verdict = iota

	// VerdictProductionUpdate indicates every change is outside the API
	// surface (documentation, internal regions).
	VerdictProductionUpdate

	// VerdictAPIChange indicates at least one change touches the API
	// surface clients depend on.
	VerdictAPIChange

	// VerdictClassificationError indicates the verdict could not be
	// determined. Rule-based summarization never produces it; it exists
	// for refinement outcomes that are unrecoverable.
	VerdictClassificationError
)

// String returns the headline form of the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictNoChanges:
		return "No Changes"
	case VerdictProductionUpdate:
		return "Production Update"
	case VerdictAPIChange:
		return "API Change"
	case VerdictClassificationError:
		return "Error"
	default:
		return "unknown"
	}
}

// ParseVerdict maps a headline form back to its Verdict. Matching is
// case-insensitive and ignores surrounding whitespace, since the input
// typically comes from an external classification service.
func ParseVerdict(s string) (Verdict, bool) {
	s = strings.TrimSpace(s)
	for _, v := range []Verdict{
		VerdictNoChanges,
		VerdictProductionUpdate,
		VerdictAPIChange,
		VerdictClassificationError,
	} {
		if strings.EqualFold(s, v.String()) {
			return v, true
		}
	}
	return 0, false
}
