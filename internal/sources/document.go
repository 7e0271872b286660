package sources

import (
	"fmt"
	"time"

	"github.com/stacklok/game-catalog-server/internal/catalog"
)

// Document is a catalog as it is read from a source
type Document struct {
	Version     string       `json:"version,omitempty"`
	LastUpdated *time.Time   `json:"lastUpdated,omitempty"`
	Categories  []FacetEntry `json:"categories,omitempty"`
	Publishers  []FacetEntry `json:"publishers,omitempty"`
	Games       []GameEntry  `json:"games"`
}

// FacetEntry describes one category or publisher
type FacetEntry struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GameEntry is one game of a catalog document.
// It has the same shape as a game returned by the catalog API.
type GameEntry struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StarRating  *float64  `json:"starRating,omitempty"`
	Category    *FacetRef `json:"category,omitempty"`
	Publisher   *FacetRef `json:"publisher,omitempty"`
}

// FacetRef references a category or publisher by id, name or both
type FacetRef struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// facetDirectory resolves references against the entries listed in a document
type facetDirectory struct {
	facet  catalog.Facet
	byID   map[int]FacetEntry
	byName map[string]FacetEntry
}

func newFacetDirectory(f catalog.Facet, entries []FacetEntry) (*facetDirectory, error) {
	d := &facetDirectory{
		facet:  f,
		byID:   make(map[int]FacetEntry, len(entries)),
		byName: make(map[string]FacetEntry, len(entries)),
	}
	for _, e := range entries {
		if e.ID != 0 {
			if prev, exists := d.byID[e.ID]; exists {
				return nil, fmt.Errorf("duplicate %s id %d (%q and %q)", f, e.ID, prev.Name, e.Name)
			}
			d.byID[e.ID] = e
		}
		if _, exists := d.byName[e.Name]; exists {
			return nil, fmt.Errorf("duplicate %s name %q", f, e.Name)
		}
		d.byName[e.Name] = e
	}
	return d, nil
}

// resolve returns the label and id a game reference points at
func (d *facetDirectory) resolve(ref *FacetRef) (string, int, error) {
	if ref == nil {
		return "", 0, nil
	}

	switch {
	case ref.Name == "" && ref.ID == 0:
		return "", 0, nil
	case ref.Name == "":
		entry, ok := d.byID[ref.ID]
		if !ok {
			return "", 0, fmt.Errorf("unknown %s id %d", d.facet, ref.ID)
		}
		return entry.Name, entry.ID, nil
	case ref.ID == 0:
		if entry, ok := d.byName[ref.Name]; ok {
			return entry.Name, entry.ID, nil
		}
		return ref.Name, 0, nil
	default:
		if entry, ok := d.byID[ref.ID]; ok && entry.Name != ref.Name {
			return "", 0, fmt.Errorf("%s id %d is named %q, not %q", d.facet, ref.ID, entry.Name, ref.Name)
		}
		return ref.Name, ref.ID, nil
	}
}

func (d *facetDirectory) infos() []catalog.FacetInfo {
	infos := make([]catalog.FacetInfo, 0, len(d.byName))
	for _, e := range d.byName {
		infos = append(infos, catalog.FacetInfo{ID: e.ID, Name: e.Name, Description: e.Description})
	}
	return infos
}

// Records converts the games of the document into catalog records, keeping their order
func (d *Document) Records() ([]catalog.GameRecord, error) {
	categories, publishers, err := d.directories()
	if err != nil {
		return nil, err
	}
	return d.records(categories, publishers)
}

func (d *Document) directories() (*facetDirectory, *facetDirectory, error) {
	categories, err := newFacetDirectory(catalog.FacetCategory, d.Categories)
	if err != nil {
		return nil, nil, err
	}
	publishers, err := newFacetDirectory(catalog.FacetPublisher, d.Publishers)
	if err != nil {
		return nil, nil, err
	}
	return categories, publishers, nil
}

func (d *Document) records(categories, publishers *facetDirectory) ([]catalog.GameRecord, error) {
	records := make([]catalog.GameRecord, 0, len(d.Games))
	for i, g := range d.Games {
		record := catalog.GameRecord{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			StarRating:  g.StarRating,
		}

		var err error
		record.Category, record.CategoryID, err = categories.resolve(g.Category)
		if err != nil {
			return nil, fmt.Errorf("game[%d] (id %d): %w", i, g.ID, err)
		}
		record.Publisher, record.PublisherID, err = publishers.resolve(g.Publisher)
		if err != nil {
			return nil, fmt.Errorf("game[%d] (id %d): %w", i, g.ID, err)
		}

		records = append(records, record)
	}
	return records, nil
}

// Snapshot builds an immutable catalog snapshot from the document.
// Category and publisher descriptions listed in the document are attached to the facet directory.
func (d *Document) Snapshot(opts ...catalog.SnapshotOption) (*catalog.Snapshot, error) {
	categories, publishers, err := d.directories()
	if err != nil {
		return nil, err
	}

	records, err := d.records(categories, publishers)
	if err != nil {
		return nil, err
	}

	snapOpts := []catalog.SnapshotOption{
		catalog.WithVersion(d.Version),
		catalog.WithFacetInfo(catalog.FacetCategory, categories.infos()),
		catalog.WithFacetInfo(catalog.FacetPublisher, publishers.infos()),
	}
	if d.LastUpdated != nil {
		snapOpts = append(snapOpts, catalog.WithLastUpdated(*d.LastUpdated))
	}
	snapOpts = append(snapOpts, opts...)

	return catalog.NewSnapshot(records, snapOpts...)
}
