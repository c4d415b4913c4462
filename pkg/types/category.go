package types

import (
	"strings"
	"time"
)

// CategoryType is the closed set of kinds a category can hold.
type CategoryType string

// Category types offered by the create-category form.
const (
	TypeMovies  CategoryType = "Movies"
	TypeSongs   CategoryType = "Songs"
	TypeBooks   CategoryType = "Books"
	TypeFood    CategoryType = "Food"
	TypeGames   CategoryType = "Games"
	TypeTVShows CategoryType = "TVShows"
	TypePlaces  CategoryType = "Places"
	TypeOther   CategoryType = "Other"
)

// CategoryTypes lists every valid category type in display order.
var CategoryTypes = []CategoryType{
	TypeMovies,
	TypeSongs,
	TypeBooks,
	TypeFood,
	TypeGames,
	TypeTVShows,
	TypePlaces,
	TypeOther,
}

// Valid reports whether t is one of the CategoryTypes.
func (t CategoryType) Valid() bool {
	for _, v := range CategoryTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Label returns the human-readable form, e.g. "TV Shows".
func (t CategoryType) Label() string {
	if t == TypeTVShows {
		return "TV Shows"
	}
	return string(t)
}

// ParseCategoryType converts user text to a CategoryType. Matching ignores
// case and spaces, so "tv shows" and "TVShows" both yield TypeTVShows.
// Returns ErrInvalidType if nothing matches.
func ParseCategoryType(s string) (CategoryType, error) {
	key := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	for _, v := range CategoryTypes {
		if strings.EqualFold(key, string(v)) {
			return v, nil
		}
	}
	return "", ErrInvalidType
}

// Category is a named, typed collection of items ranked against each other.
type Category struct {
	CategoryID  string       `json:"category_id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Type        CategoryType `json:"type"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NormalizeName trims surrounding whitespace from a category or item name.
// Returns ErrInvalidName if nothing is left.
func NormalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", ErrInvalidName
	}
	return n, nil
}
