package filtering

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/game-catalog-server/internal/catalog"
)

func scenarioSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	snap, err := catalog.NewSnapshot([]catalog.GameRecord{
		{ID: 1, Title: "One", Category: "Action", Publisher: "Acme"},
		{ID: 2, Title: "Two", Category: "Action", Publisher: "Beta"},
		{ID: 3, Title: "Three", Category: "Puzzle", Publisher: "Acme"},
	})
	require.NoError(t, err)
	return snap
}

func TestEngine_Query_Scenario(t *testing.T) {
	t.Parallel()

	snap := scenarioSnapshot(t)
	engine := NewDefaultEngine()

	tests := []struct {
		name        string
		constraint  Constraint
		expectedIDs []int
	}{
		{
			name:        "no constraint returns full catalog",
			constraint:  NewConstraint(),
			expectedIDs: []int{1, 2, 3},
		},
		{
			name:        "category only",
			constraint:  NewConstraint(WithFacetValue(catalog.FacetCategory, "Action")),
			expectedIDs: []int{1, 2},
		},
		{
			name:        "publisher only",
			constraint:  NewConstraint(WithFacetValue(catalog.FacetPublisher, "Acme")),
			expectedIDs: []int{1, 3},
		},
		{
			name: "category and publisher",
			constraint: NewConstraint(
				WithFacetValue(catalog.FacetCategory, "Action"),
				WithFacetValue(catalog.FacetPublisher, "Acme"),
			),
			expectedIDs: []int{1},
		},
		{
			name:        "unknown category",
			constraint:  NewConstraint(WithFacetValue(catalog.FacetCategory, "Strategy")),
			expectedIDs: []int{},
		},
		{
			name:        "case sensitive match",
			constraint:  NewConstraint(WithFacetValue(catalog.FacetCategory, "action")),
			expectedIDs: []int{},
		},
		{
			name: "valid pair with no overlap",
			constraint: NewConstraint(
				WithFacetValue(catalog.FacetCategory, "Puzzle"),
				WithFacetValue(catalog.FacetPublisher, "Beta"),
			),
			expectedIDs: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := engine.Query(snap, tt.constraint)
			assert.Equal(t, tt.expectedIDs, result.IDs())
			assert.Equal(t, []string{"Action", "Puzzle"}, result.Categories)
			assert.Equal(t, []string{"Acme", "Beta"}, result.Publishers)
		})
	}
}

func TestEngine_Query_EmptyCatalog(t *testing.T) {
	t.Parallel()

	engine := NewDefaultEngine()
	for _, c := range []Constraint{
		NewConstraint(),
		NewConstraint(WithFacetValue(catalog.FacetCategory, "Action")),
		NewConstraint(WithFacetValue(catalog.FacetPublisher, "Acme")),
	} {
		result := engine.Query(catalog.Empty(), c)
		assert.Empty(t, result.Records, c.String())
		assert.Empty(t, result.Categories)
		assert.Empty(t, result.Publishers)
	}

	result := engine.Query(nil, NewConstraint())
	assert.Empty(t, result.Records)
}

func TestEngine_Query_EmptySelectionAgreesWithFilter(t *testing.T) {
	t.Parallel()

	snap, err := catalog.NewSnapshot([]catalog.GameRecord{
		{ID: 1, Title: "Unsorted", Category: "", Publisher: "Acme"},
		{ID: 2, Title: "Sorted", Category: "Action", Publisher: "Acme"},
	})
	require.NoError(t, err)

	constraint := Constraint{Category: new(string)}
	result := NewDefaultEngine().Query(snap, constraint)
	assert.Empty(t, result.Records)

	filter := NewDefaultFacetFilter()
	for _, record := range snap.AllRecords() {
		include, reason := filter.ShouldInclude(&record, constraint)
		assert.False(t, include, "record %d: %s", record.ID, reason)
	}
}

func TestEngine_Query_DoesNotMutateSnapshot(t *testing.T) {
	t.Parallel()

	snap := scenarioSnapshot(t)
	before := snap.AllRecords()
	engine := NewDefaultEngine()

	result := engine.Query(snap, NewConstraint(WithFacetValue(catalog.FacetCategory, "Action")))
	require.NotEmpty(t, result.Records)
	result.Records[0].Title = "changed"
	result.Categories[0] = "changed"

	assert.Equal(t, before, snap.AllRecords())
	assert.Equal(t, []string{"Action", "Puzzle"}, snap.DistinctCategories())
}

type rejectAllFilter struct{}

func (rejectAllFilter) ShouldInclude(*catalog.GameRecord, Constraint) (bool, string) {
	return false, "rejected"
}

func TestNewEngine_CustomFacetFilter(t *testing.T) {
	t.Parallel()

	engine := NewEngine(rejectAllFilter{})
	result := engine.Query(scenarioSnapshot(t), NewConstraint(WithFacetValue(catalog.FacetPublisher, "Acme")))
	assert.Empty(t, result.Records)
}

// randomSnapshot builds a catalog with labels drawn from small pools so that
// constraints hit, overlap and miss.
func randomSnapshot(t *testing.T, r *rand.Rand) *catalog.Snapshot {
	t.Helper()
	categories := []string{"Action", "Puzzle", "Racing", "", "action"}
	publishers := []string{"Acme", "Beta", "Gamma", ""}

	n := r.IntN(40)
	records := make([]catalog.GameRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, catalog.GameRecord{
			ID:        i*7 + 1,
			Title:     fmt.Sprintf("Game %d", i),
			Category:  categories[r.IntN(len(categories))],
			Publisher: publishers[r.IntN(len(publishers))],
		})
	}
	snap, err := catalog.NewSnapshot(records)
	require.NoError(t, err)
	return snap
}

func randomConstraint(r *rand.Rand) Constraint {
	categories := []string{"Action", "Puzzle", "Racing", "Strategy", "action"}
	publishers := []string{"Acme", "Beta", "Gamma", "Delta"}
	var opts []ConstraintOption
	if r.IntN(2) == 0 {
		opts = append(opts, WithFacetValue(catalog.FacetCategory, categories[r.IntN(len(categories))]))
	}
	if r.IntN(2) == 0 {
		opts = append(opts, WithFacetValue(catalog.FacetPublisher, publishers[r.IntN(len(publishers))]))
	}
	return NewConstraint(opts...)
}

func intersect(a, b []int) []int {
	out := []int{}
	for _, id := range a {
		if slices.Contains(b, id) {
			out = append(out, id)
		}
	}
	return out
}

func isSubsequence(sub, full []int) bool {
	i := 0
	for _, id := range full {
		if i < len(sub) && sub[i] == id {
			i++
		}
	}
	return i == len(sub)
}

func TestEngine_Query_Properties(t *testing.T) {
	t.Parallel()

	engine := NewDefaultEngine()
	r := rand.New(rand.NewPCG(42, 1024))

	for iteration := 0; iteration < 200; iteration++ {
		snap := randomSnapshot(t, r)
		c := randomConstraint(r)
		result := engine.Query(snap, c)
		all := engine.Query(snap, NewConstraint())

		// identity element
		require.Equal(t, snap.AllRecords(), all.Records)

		// monotonic narrowing, order preserved
		require.True(t, isSubsequence(result.IDs(), all.IDs()), "iteration %d: %s", iteration, c)

		// exact match
		for _, record := range result.Records {
			if v, ok := c.Get(catalog.FacetCategory); ok {
				require.Equal(t, v, record.Category)
			}
			if v, ok := c.Get(catalog.FacetPublisher); ok {
				require.Equal(t, v, record.Publisher)
			}
		}

		// completeness: every satisfying record is returned
		expected := []int{}
		for _, record := range snap.AllRecords() {
			if ok, _ := NewDefaultFacetFilter().ShouldInclude(&record, c); ok {
				expected = append(expected, record.ID)
			}
		}
		require.Equal(t, expected, result.IDs())

		// commutativity: Query({A,B}) == Query({A}) ∩ Query({B})
		onlyCategory := Constraint{Category: c.Category}
		onlyPublisher := Constraint{Publisher: c.Publisher}
		require.Equal(t,
			intersect(engine.Query(snap, onlyCategory).IDs(), engine.Query(snap, onlyPublisher).IDs()),
			result.IDs())

		// idempotence
		require.Equal(t, result, engine.Query(snap, c))

		// facet sets never depend on the constraint
		require.Equal(t, all.Categories, result.Categories)
		require.Equal(t, all.Publishers, result.Publishers)
	}
}

func BenchmarkEngine_Query(b *testing.B) {
	records := make([]catalog.GameRecord, 0, 10000)
	for i := 0; i < 10000; i++ {
		records = append(records, catalog.GameRecord{
			ID:        i + 1,
			Title:     fmt.Sprintf("Game %d", i),
			Category:  fmt.Sprintf("Category %d", i%25),
			Publisher: fmt.Sprintf("Publisher %d", i%200),
		})
	}
	snap, err := catalog.NewSnapshot(records)
	if err != nil {
		b.Fatal(err)
	}
	engine := NewDefaultEngine()
	c := NewConstraint(
		WithFacetValue(catalog.FacetCategory, "Category 3"),
		WithFacetValue(catalog.FacetPublisher, "Publisher 103"),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Query(snap, c)
	}
}
