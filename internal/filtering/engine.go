package filtering

import (
	"log/slog"

	"github.com/stacklok/game-catalog-server/internal/catalog"
)

// Result is the outcome of a query against one snapshot
type Result struct {
	// Records holds the matching records in catalog order
	Records []catalog.GameRecord
	// Categories is every category label of the snapshot, independent of the constraint
	Categories []string
	// Publishers is every publisher label of the snapshot, independent of the constraint
	Publishers []string
}

// IDs returns the ids of the matching records in result order
func (r Result) IDs() []int {
	ids := make([]int, len(r.Records))
	for i := range r.Records {
		ids[i] = r.Records[i].ID
	}
	return ids
}

// Engine evaluates facet constraints against catalog snapshots
type Engine interface {
	// Query returns the records of snap satisfying every constrained dimension of c
	Query(snap *catalog.Snapshot, c Constraint) Result
}

// defaultEngine implements Engine on top of the snapshot position index
type defaultEngine struct {
	facetFilter FacetFilter
}

var _ Engine = (*defaultEngine)(nil)

// NewDefaultEngine creates a new Engine with the default facet filter
func NewDefaultEngine() Engine {
	return &defaultEngine{
		facetFilter: NewDefaultFacetFilter(),
	}
}

// NewEngine creates a new Engine with a custom facet filter
func NewEngine(facetFilter FacetFilter) Engine {
	return &defaultEngine{
		facetFilter: facetFilter,
	}
}

// Query returns the records of snap satisfying every constrained dimension of c
//
// The query process:
// 1. If no dimension is constrained, return the whole catalog
// 2. Pick the shortest posting list among the constrained dimensions
// 3. Verify every candidate against the full constraint
// 4. Attach the constraint-independent facet sets
func (e *defaultEngine) Query(snap *catalog.Snapshot, c Constraint) Result {
	if snap == nil {
		snap = catalog.Empty()
	}

	result := Result{
		Categories: snap.DistinctCategories(),
		Publishers: snap.DistinctPublishers(),
	}

	if c.IsEmpty() {
		result.Records = snap.AllRecords()
		slog.Debug("No facet constraint specified, returning full catalog",
			"games", len(result.Records))
		return result
	}

	candidates := e.candidates(snap, c)
	result.Records = make([]catalog.GameRecord, 0, len(candidates))
	for _, pos := range candidates {
		record := snap.RecordAt(pos)
		included, reason := e.facetFilter.ShouldInclude(&record, c)
		if included {
			result.Records = append(result.Records, record)
		} else {
			slog.Debug("Excluding game",
				"id", record.ID,
				"reason", reason)
		}
	}

	slog.Debug("Catalog query completed",
		"constraint", c.String(),
		"candidates", len(candidates),
		"matched", len(result.Records))

	return result
}

// candidates returns the shortest posting list among the constrained dimensions.
// A value no record carries yields an empty list.
func (*defaultEngine) candidates(snap *catalog.Snapshot, c Constraint) []int {
	var best []int
	first := true
	for _, f := range catalog.Facets {
		value, ok := c.Get(f)
		if !ok {
			continue
		}
		positions := snap.Positions(f, value)
		if first || len(positions) < len(best) {
			best = positions
			first = false
		}
	}
	return best
}
