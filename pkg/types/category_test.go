package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategoryType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    CategoryType
		wantErr error
	}{
		{name: "exact match", input: "Movies", want: TypeMovies},
		{name: "lower case", input: "books", want: TypeBooks},
		{name: "display label with space", input: "TV Shows", want: TypeTVShows},
		{name: "compact form", input: "tvshows", want: TypeTVShows},
		{name: "surrounding whitespace", input: "  Places ", want: TypePlaces},
		{name: "unknown type", input: "Podcasts", wantErr: ErrInvalidType},
		{name: "empty string", input: "", wantErr: ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategoryType(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryTypeValid(t *testing.T) {
	for _, ct := range CategoryTypes {
		assert.True(t, ct.Valid(), "%s should be valid", ct)
	}
	assert.False(t, CategoryType("TV Shows").Valid(), "labels are not enum values")
	assert.False(t, CategoryType("").Valid())
	assert.Len(t, CategoryTypes, 8)
}

func TestCategoryTypeLabel(t *testing.T) {
	assert.Equal(t, "TV Shows", TypeTVShows.Label())
	assert.Equal(t, "Food", TypeFood.Label())
}

func TestNormalizeName(t *testing.T) {
	got, err := NormalizeName("  Top 10 Horror Movies  ")
	assert.NoError(t, err)
	assert.Equal(t, "Top 10 Horror Movies", got)

	_, err = NormalizeName("   ")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NormalizeName("")
	assert.ErrorIs(t, err, ErrInvalidName)
}
