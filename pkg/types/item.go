package types

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
)

// Ranking bounds, inclusive.
const (
	MinRanking     = 1
	MaxRanking     = 10
	DefaultRanking = 5
)

// ItemNameKey returns the key under which item names are compared for
// uniqueness within a category: the name with Unicode case folding applied.
// A Caser is stateful, so each call gets its own.
func ItemNameKey(name string) string {
	return cases.Fold().String(name)
}

// Item is a single ranked entity belonging to exactly one category.
type Item struct {
	ItemID     string    `json:"item_id"`
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	Ranking    int       `json:"ranking"`
	Seq        uint64    `json:"seq"` // Insertion sequence; orders equal rankings.
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidateRanking returns ErrRange when r is outside [MinRanking, MaxRanking].
func ValidateRanking(r int) error {
	if r < MinRanking || r > MaxRanking {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrRange, r, MinRanking, MaxRanking)
	}
	return nil
}

// Ranked pairs an item with its 1-based position in a sorted view.
type Ranked struct {
	Position int  `json:"position"`
	Item     Item `json:"item"`
}
