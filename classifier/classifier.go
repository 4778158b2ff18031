package classifier

import (
	"github.com/erraggy/oasdelta/differ"
	"github.com/erraggy/oasdelta/parser"
)

// Category indicates the operational meaning of a change
type Category string

const (
	// CategoryNewEndpoint indicates an addition under the API paths
	CategoryNewEndpoint Category = "new-endpoint"
	// CategoryRemovedEndpoint indicates a removal under the API paths
	CategoryRemovedEndpoint Category = "removed-endpoint"
	// CategoryModifiedEndpoint indicates a modification under the API paths
	CategoryModifiedEndpoint Category = "modified-endpoint"
	// CategorySecurity indicates a security scheme change
	CategorySecurity Category = "security"
	// CategorySchema indicates a reusable schema, parameter, or response change
	CategorySchema Category = "schema"
	// CategoryDocumentation indicates an API metadata change
	CategoryDocumentation Category = "documentation"
	// CategoryInternal indicates a change outside any classified region
	CategoryInternal Category = "internal"
)

// IsAPISurface reports whether changes in this category alter the API
// contract that clients depend on.
func (c Category) IsAPISurface() bool {
	switch c {
	case CategoryNewEndpoint, CategoryRemovedEndpoint, CategoryModifiedEndpoint,
		CategorySecurity, CategorySchema:
		return true
	default:
		return false
	}
}

// Rule maps changes under a document region to categories by change kind.
//
// A rule matches when the change path starts with the rule's Prefix as whole
// key segments. `x-paths` does not match a [paths] prefix, and a `paths` key
// nested deeper in the document does not either; only the top-level region
// counts.
type Rule struct {
	// Prefix is the leading key segments a change path must start with
	Prefix []string
	// Added is the category assigned to additions under the prefix
	Added Category
	// Removed is the category assigned to removals under the prefix
	Removed Category
	// Modified is the category assigned to modifications under the prefix
	Modified Category
}

// categoryFor selects the rule's category for a change kind.
func (r Rule) categoryFor(t differ.ChangeType) Category {
	switch t {
	case differ.ChangeTypeAdded:
		return r.Added
	case differ.ChangeTypeRemoved:
		return r.Removed
	default:
		return r.Modified
	}
}

// uniform builds a rule that assigns the same category to every change kind.
func uniform(category Category, prefix ...string) Rule {
	return Rule{
		Prefix:   prefix,
		Added:    category,
		Removed:  category,
		Modified: category,
	}
}

// DefaultRules returns the standard rule table. Rules are checked in order
// and the first match decides, so the endpoint rule shadows everything
// nested under paths.
func DefaultRules() []Rule {
	return []Rule{
		{
			Prefix:   []string{"paths"},
			Added:    CategoryNewEndpoint,
			Removed:  CategoryRemovedEndpoint,
			Modified: CategoryModifiedEndpoint,
		},
		uniform(CategorySecurity, "components", "securitySchemes"),
		uniform(CategorySchema, "components", "schemas"),
		uniform(CategorySchema, "components", "parameters"),
		uniform(CategorySchema, "components", "responses"),
		uniform(CategoryDocumentation, "info"),
	}
}

// Classifier assigns categories to structural changes
type Classifier struct {
	// Rules is the ordered rule table; first match wins.
	// When nil, DefaultRules() is used.
	Rules []Rule
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// New creates a new Classifier with the default rule table
func New() *Classifier {
	return &Classifier{
		Rules: DefaultRules(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (c *Classifier) log() parser.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return parser.NopLogger{}
}

func (c *Classifier) ruleTable() []Rule {
	if c.Rules != nil {
		return c.Rules
	}
	return DefaultRules()
}

// Classify returns the category for a single change. Every change receives
// exactly one category: the first matching rule's, or internal when no rule
// matches.
func (c *Classifier) Classify(change differ.Change) Category {
	for _, rule := range c.ruleTable() {
		if change.Path.HasPrefix(rule.Prefix...) {
			return rule.categoryFor(change.Type)
		}
	}
	return CategoryInternal
}

// ClassifiedChange pairs a structural change with its category
type ClassifiedChange struct {
	differ.Change
	// Category is the classification assigned by the rule table
	Category Category
}

// ClassifyAll classifies every change, preserving input order
func (c *Classifier) ClassifyAll(changes []differ.Change) []ClassifiedChange {
	records := make([]ClassifiedChange, 0, len(changes))
	for _, change := range changes {
		records = append(records, ClassifiedChange{
			Change:   change,
			Category: c.Classify(change),
		})
	}

	c.log().Debug("classified changes", "total", len(records))

	return records
}
