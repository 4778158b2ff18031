package classifier

import "fmt"

// Summary aggregates classified changes into per-category counts and an
// overall verdict.
type Summary struct {
	// Verdict is the overall outcome
	Verdict Verdict
	// Total is the number of classified changes
	Total int
	// Counts holds the number of changes per category
	Counts map[Category]int
	// APICount is the number of API surface changes
	APICount int
	// NonAPICount is the number of changes outside the API surface
	NonAPICount int
}

// Summarize aggregates records into a Summary and derives the verdict:
// no records means no changes, any API surface record means an API change,
// anything else is a production update.
func (c *Classifier) Summarize(records []ClassifiedChange) *Summary {
	s := &Summary{
		Total:  len(records),
		Counts: make(map[Category]int),
	}

	for _, rec := range records {
		s.Counts[rec.Category]++
		if rec.Category.IsAPISurface() {
			s.APICount++
		} else {
			s.NonAPICount++
		}
	}

	switch {
	case s.Total == 0:
		s.Verdict = VerdictNoChanges
	case s.APICount > 0:
		s.Verdict = VerdictAPIChange
	default:
		s.Verdict = VerdictProductionUpdate
	}

	c.log().Debug("summarized changes",
		"verdict", s.Verdict.String(),
		"total", s.Total,
		"api", s.APICount,
		"non_api", s.NonAPICount)

	return s
}

// Headline returns a one-line human summary of the comparison outcome.
func (s *Summary) Headline() string {
	switch s.Verdict {
	case VerdictNoChanges:
		return "No changes detected"
	case VerdictAPIChange:
		return fmt.Sprintf("%d API surface change(s), %d other change(s)", s.APICount, s.NonAPICount)
	case VerdictProductionUpdate:
		return fmt.Sprintf("%d change(s), none touching the API surface", s.NonAPICount)
	case VerdictClassificationError:
		return "Classification could not be completed"
	default:
		return s.Verdict.String()
	}
}
