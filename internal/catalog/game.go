// Package catalog holds the immutable game catalog snapshots served by the query API.
package catalog

// Facet identifies a dimension along which games can be filtered
type Facet string

const (
	// FacetCategory filters games by their category label
	FacetCategory Facet = "category"

	// FacetPublisher filters games by their publisher label
	FacetPublisher Facet = "publisher"
)

// Facets lists every facet dimension in presentation order
var Facets = []Facet{FacetCategory, FacetPublisher}

// String returns the facet name
func (f Facet) String() string {
	return string(f)
}

// Valid reports whether f is a known facet dimension
func (f Facet) Valid() bool {
	return f == FacetCategory || f == FacetPublisher
}

// GameRecord is a single game of the catalog.
// Records are copied into a Snapshot on construction and never mutated afterwards.
type GameRecord struct {
	ID          int
	Title       string
	Description string
	// StarRating is nil when the source carries no rating
	StarRating *float64

	Category   string
	CategoryID int

	Publisher   string
	PublisherID int
}

// Value returns the record's label for the given facet
func (g *GameRecord) Value(f Facet) string {
	switch f {
	case FacetCategory:
		return g.Category
	case FacetPublisher:
		return g.Publisher
	default:
		return ""
	}
}

// valueID returns the source identifier of the record's label for the given facet
func (g *GameRecord) valueID(f Facet) int {
	switch f {
	case FacetCategory:
		return g.CategoryID
	case FacetPublisher:
		return g.PublisherID
	default:
		return 0
	}
}

// FacetInfo is source-provided metadata about a facet label
type FacetInfo struct {
	ID          int
	Name        string
	Description string
}

// FacetValue is one selectable label of a facet together with its metadata
type FacetValue struct {
	ID          int
	Name        string
	Description string
	GameCount   int
}
