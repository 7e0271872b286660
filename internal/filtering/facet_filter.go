package filtering

import (
	"fmt"

	"github.com/stacklok/game-catalog-server/internal/catalog"
)

// FacetFilter decides whether a record satisfies a constraint using exact label matching
type FacetFilter interface {
	// ShouldInclude determines if the record satisfies every constrained dimension
	// Returns (shouldInclude bool, reason string)
	ShouldInclude(record *catalog.GameRecord, constraint Constraint) (bool, string)
}

// DefaultFacetFilter implements facet filtering using exact, case-sensitive string matching
type DefaultFacetFilter struct{}

// NewDefaultFacetFilter creates a new DefaultFacetFilter
func NewDefaultFacetFilter() *DefaultFacetFilter {
	return &DefaultFacetFilter{}
}

// ShouldInclude determines if the record satisfies every constrained dimension
//
// Logic:
// 1. For each facet with a selected value, the record label must equal it exactly
// 2. The first mismatching facet excludes the record
// 3. An explicit empty selection matches nothing, since empty labels are not facet values
// 4. Facets without a selection are ignored
// 5. If no facet is constrained -> include (default behavior)
func (*DefaultFacetFilter) ShouldInclude(record *catalog.GameRecord, constraint Constraint) (bool, string) {
	matched := 0
	for _, f := range catalog.Facets {
		want, ok := constraint.Get(f)
		if !ok {
			continue
		}
		if want == "" {
			return false, fmt.Sprintf("%s '' is not a facet value", f)
		}
		if got := record.Value(f); got != want {
			return false, fmt.Sprintf("%s '%s' does not match '%s'", f, got, want)
		}
		matched++
	}

	if matched == 0 {
		return true, "no facet filters specified"
	}
	return true, fmt.Sprintf("matched %d facet filter(s)", matched)
}
