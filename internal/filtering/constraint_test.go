package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stacklok/game-catalog-server/internal/catalog"
)

func TestNewConstraint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      []ConstraintOption
		category  string
		publisher string
		length    int
		rendered  string
	}{
		{
			name:     "empty",
			length:   0,
			rendered: "category=*,publisher=*",
		},
		{
			name:     "empty value is absent",
			opts:     []ConstraintOption{WithFacetValue(catalog.FacetCategory, "")},
			length:   0,
			rendered: "category=*,publisher=*",
		},
		{
			name:     "category",
			opts:     []ConstraintOption{WithFacetValue(catalog.FacetCategory, "Action")},
			category: "Action",
			length:   1,
			rendered: `category="Action",publisher=*`,
		},
		{
			name: "both",
			opts: []ConstraintOption{
				WithFacetValue(catalog.FacetPublisher, "Acme"),
				WithFacetValue(catalog.FacetCategory, "Puzzle"),
			},
			category:  "Puzzle",
			publisher: "Acme",
			length:    2,
			rendered:  `category="Puzzle",publisher="Acme"`,
		},
		{
			name:     "unknown facet is ignored",
			opts:     []ConstraintOption{WithFacetValue(catalog.Facet("platform"), "PC")},
			length:   0,
			rendered: "category=*,publisher=*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewConstraint(tt.opts...)

			category, _ := c.Get(catalog.FacetCategory)
			publisher, _ := c.Get(catalog.FacetPublisher)
			assert.Equal(t, tt.category, category)
			assert.Equal(t, tt.publisher, publisher)
			assert.Equal(t, tt.length, c.Len())
			assert.Equal(t, tt.length == 0, c.IsEmpty())
			assert.Equal(t, tt.rendered, c.String())
		})
	}
}

func TestConstraint_SetCopiesValue(t *testing.T) {
	t.Parallel()

	value := "Action"
	var c Constraint
	c.Set(catalog.FacetCategory, value)
	value = "Puzzle"

	got, ok := c.Get(catalog.FacetCategory)
	assert.True(t, ok)
	assert.Equal(t, "Action", got)
}
