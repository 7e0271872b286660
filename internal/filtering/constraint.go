package filtering

import (
	"fmt"
	"strings"

	"github.com/stacklok/game-catalog-server/internal/catalog"
)

// Constraint holds an optional selected value per facet dimension.
// A nil field means the dimension is not constrained. A non-nil empty value
// is a selection no record satisfies.
type Constraint struct {
	Category  *string
	Publisher *string
}

// ConstraintOption configures a Constraint
type ConstraintOption func(*Constraint)

// WithFacetValue selects value for facet f. An empty value leaves the facet unconstrained.
func WithFacetValue(f catalog.Facet, value string) ConstraintOption {
	return func(c *Constraint) {
		if value == "" {
			return
		}
		c.Set(f, value)
	}
}

// NewConstraint builds a constraint from options
func NewConstraint(opts ...ConstraintOption) Constraint {
	var c Constraint
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Set selects value for facet f
func (c *Constraint) Set(f catalog.Facet, value string) {
	v := value
	switch f {
	case catalog.FacetCategory:
		c.Category = &v
	case catalog.FacetPublisher:
		c.Publisher = &v
	}
}

// Get returns the selected value for facet f and whether one is present
func (c Constraint) Get(f catalog.Facet) (string, bool) {
	var p *string
	switch f {
	case catalog.FacetCategory:
		p = c.Category
	case catalog.FacetPublisher:
		p = c.Publisher
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// Len returns the number of constrained dimensions
func (c Constraint) Len() int {
	n := 0
	for _, f := range catalog.Facets {
		if _, ok := c.Get(f); ok {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no dimension is constrained
func (c Constraint) IsEmpty() bool {
	return c.Len() == 0
}

// String renders the constraint for logs, e.g. "category=Action,publisher=*"
func (c Constraint) String() string {
	parts := make([]string, 0, len(catalog.Facets))
	for _, f := range catalog.Facets {
		if v, ok := c.Get(f); ok {
			parts = append(parts, fmt.Sprintf("%s=%q", f, v))
		} else {
			parts = append(parts, fmt.Sprintf("%s=*", f))
		}
	}
	return strings.Join(parts, ",")
}
