package catalog

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Snapshot is an immutable view of the catalog.
//
// The distinct facet values and the per-facet position index are built once
// in NewSnapshot. Nothing in a Snapshot changes after construction, so any
// number of goroutines may read it without synchronization.
type Snapshot struct {
	id          string
	version     string
	lastUpdated time.Time
	source      string

	records []GameRecord
	byID    map[int]int

	// index maps a facet label to the ascending positions of the records carrying it
	index    map[Facet]map[string][]int
	distinct map[Facet][]string
	facets   map[Facet][]FacetValue

	facetInfo map[Facet]map[string]FacetInfo
}

// SnapshotOption configures optional snapshot metadata
type SnapshotOption func(*Snapshot)

// WithVersion sets the catalog document version
func WithVersion(version string) SnapshotOption {
	return func(s *Snapshot) {
		s.version = version
	}
}

// WithLastUpdated sets the time the catalog was last updated at its source
func WithLastUpdated(t time.Time) SnapshotOption {
	return func(s *Snapshot) {
		s.lastUpdated = t
	}
}

// WithSource sets a descriptive string about where the catalog came from
func WithSource(source string) SnapshotOption {
	return func(s *Snapshot) {
		s.source = source
	}
}

// WithFacetInfo attaches source metadata (ids, descriptions) to the labels of a facet.
// Metadata for labels that no record carries is ignored.
func WithFacetInfo(f Facet, infos []FacetInfo) SnapshotOption {
	return func(s *Snapshot) {
		byName := s.facetInfo[f]
		if byName == nil {
			byName = make(map[string]FacetInfo, len(infos))
			s.facetInfo[f] = byName
		}
		for _, info := range infos {
			byName[info.Name] = info
		}
	}
}

// NewSnapshot builds a snapshot from records, keeping their order.
// Record ids must be unique.
func NewSnapshot(records []GameRecord, opts ...SnapshotOption) (*Snapshot, error) {
	s := &Snapshot{
		id:        uuid.NewString(),
		records:   slices.Clone(records),
		byID:      make(map[int]int, len(records)),
		index:     make(map[Facet]map[string][]int, len(Facets)),
		distinct:  make(map[Facet][]string, len(Facets)),
		facets:    make(map[Facet][]FacetValue, len(Facets)),
		facetInfo: make(map[Facet]map[string]FacetInfo, len(Facets)),
	}
	if s.records == nil {
		s.records = []GameRecord{}
	}

	for _, opt := range opts {
		opt(s)
	}

	for i := range s.records {
		id := s.records[i].ID
		if prev, exists := s.byID[id]; exists {
			return nil, fmt.Errorf("duplicate game id %d at positions %d and %d", id, prev, i)
		}
		s.byID[id] = i
	}

	for _, f := range Facets {
		s.buildFacet(f)
	}

	return s, nil
}

// Empty returns a snapshot with no records
func Empty() *Snapshot {
	s, _ := NewSnapshot(nil, WithSource("empty"))
	return s
}

// buildFacet computes the index, the distinct labels and the facet directory of one facet
func (s *Snapshot) buildFacet(f Facet) {
	positions := make(map[string][]int)
	ids := make(map[string]int)
	for i := range s.records {
		label := s.records[i].Value(f)
		if label == "" {
			continue
		}
		positions[label] = append(positions[label], i)
		if _, seen := ids[label]; !seen {
			ids[label] = s.records[i].valueID(f)
		}
	}

	labels := make([]string, 0, len(positions))
	for label := range positions {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	values := make([]FacetValue, 0, len(labels))
	for _, label := range labels {
		value := FacetValue{
			ID:        ids[label],
			Name:      label,
			GameCount: len(positions[label]),
		}
		if info, ok := s.facetInfo[f][label]; ok {
			if info.ID != 0 {
				value.ID = info.ID
			}
			value.Description = info.Description
		}
		values = append(values, value)
	}

	s.index[f] = positions
	s.distinct[f] = labels
	s.facets[f] = values
}

// ID returns the unique generation id of this snapshot
func (s *Snapshot) ID() string {
	return s.id
}

// Version returns the catalog document version, if the source provided one
func (s *Snapshot) Version() string {
	return s.version
}

// LastUpdated returns the time the catalog was last updated at its source
func (s *Snapshot) LastUpdated() time.Time {
	return s.lastUpdated
}

// Source returns a descriptive string about where the catalog came from
func (s *Snapshot) Source() string {
	return s.source
}

// Len returns the number of records in the snapshot
func (s *Snapshot) Len() int {
	return len(s.records)
}

// AllRecords returns every record in catalog order
func (s *Snapshot) AllRecords() []GameRecord {
	return slices.Clone(s.records)
}

// RecordAt returns the record at position i in catalog order
func (s *Snapshot) RecordAt(i int) GameRecord {
	return s.records[i]
}

// Record looks a record up by its id
func (s *Snapshot) Record(id int) (GameRecord, bool) {
	i, ok := s.byID[id]
	if !ok {
		return GameRecord{}, false
	}
	return s.records[i], true
}

// DistinctCategories returns all category labels present in the catalog, sorted
func (s *Snapshot) DistinctCategories() []string {
	return s.Distinct(FacetCategory)
}

// DistinctPublishers returns all publisher labels present in the catalog, sorted
func (s *Snapshot) DistinctPublishers() []string {
	return s.Distinct(FacetPublisher)
}

// Distinct returns all labels of a facet present in the catalog, sorted
func (s *Snapshot) Distinct(f Facet) []string {
	return slices.Clone(s.distinct[f])
}

// Contains reports whether any record carries the given label for facet f
func (s *Snapshot) Contains(f Facet, value string) bool {
	_, ok := s.index[f][value]
	return ok
}

// Facets returns the directory of a facet: every label with its metadata and game count
func (s *Snapshot) Facets(f Facet) []FacetValue {
	return slices.Clone(s.facets[f])
}

// FacetByID looks a facet label up by its source id
func (s *Snapshot) FacetByID(f Facet, id int) (FacetValue, bool) {
	for _, v := range s.facets[f] {
		if v.ID == id && id != 0 {
			return v, true
		}
	}
	return FacetValue{}, false
}

// Positions returns the ascending catalog positions of the records carrying value for facet f.
// The returned slice is shared with the snapshot and must not be modified.
func (s *Snapshot) Positions(f Facet, value string) []int {
	return s.index[f][value]
}
