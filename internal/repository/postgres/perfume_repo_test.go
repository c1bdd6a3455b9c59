package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topnotes/catalog-api/internal/repository"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{"plain", "oud", "oud"},
		{"percent", "100%", `100\%`},
		{"underscore", "no_5", `no\_5`},
		{"backslash", `a\b`, `a\\b`},
		{"mixed", `%_\`, `\%\_\\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.term))
		})
	}
}

func TestBuildFilterSearchMatchesLiterally(t *testing.T) {
	where, args := buildFilter(repository.PerfumeFilter{SearchTerm: "no_5 100%"})

	assert.Contains(t, where, `ESCAPE '\'`)
	require.Len(t, args, 1)
	assert.Equal(t, `no\_5 100\%`, args[0])
}

func TestBuildFilterCombines(t *testing.T) {
	where, args := buildFilter(repository.PerfumeFilter{
		ActiveOnly: true,
		Language:   "ar",
		Brand:      "أزارو",
		Category:   "شرقي",
	})

	assert.Contains(t, where, "is_active = true")
	assert.Contains(t, where, "brand_ar = $1")
	assert.Contains(t, where, "category_ar = $2")
	assert.Equal(t, []any{"أزارو", "شرقي"}, args)
}
