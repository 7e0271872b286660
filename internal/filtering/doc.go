// Package filtering provides the faceted filter engine behind the game query API.
//
// A query narrows a catalog snapshot with zero or more facet constraints. The
// engine never mutates the snapshot and keeps no state between calls, so a
// single Engine can serve any number of concurrent requests.
//
// # Architecture
//
// The filtering system consists of two main components:
//
//   - FacetFilter: Decides whether a single record satisfies a constraint
//   - Engine: Selects candidates from the snapshot index and verifies them
//
// # Filtering Logic
//
// A record is included if, for every facet dimension with a selected value,
// the record's label for that dimension equals the selected value exactly
// (case-sensitive). Dimensions without a selection do not restrict the result
// (logical AND across dimensions, identity for the empty constraint).
//
// A selected value that no record carries is not an error: the result simply
// holds no records.
//
// # Result Ordering
//
// Records are returned in catalog order. Candidates come from the snapshot's
// position index, whose posting lists are ascending, so ordering is preserved
// without sorting.
//
// # Facet Sets
//
// A Result always carries the full set of category and publisher labels of the
// snapshot, independent of the constraint. Facet lists are never cross-filtered.
//
// # Usage Example
//
//	engine := NewDefaultEngine()
//	constraint := NewConstraint(
//		WithFacetValue(catalog.FacetCategory, "Action"),
//	)
//	result := engine.Query(store.Current(), constraint)
package filtering
