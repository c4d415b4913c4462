// JSON record structures for the JSONL data files.
package sqlite

import (
	"time"

	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

// Data file names inside the data directory.
const (
	dbFile          = "rankaroo.db"
	categoriesJSONL = "categories.jsonl"
	itemsJSONL      = "items.jsonl"
)

// categoryJSON represents a category in categories.jsonl. Line order is the
// category insertion order.
type categoryJSON struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// itemJSON represents an item in items.jsonl.
type itemJSON struct {
	ItemID     string `json:"item_id"`
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Ranking    int    `json:"ranking"`
	Seq        uint64 `json:"seq"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime returns the zero time for empty or malformed values.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func toCategoryJSON(c types.Category) categoryJSON {
	return categoryJSON{
		CategoryID:  c.CategoryID,
		Name:        c.Name,
		Description: c.Description,
		Type:        string(c.Type),
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

func (r categoryJSON) category() types.Category {
	return types.Category{
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Description: r.Description,
		Type:        types.CategoryType(r.Type),
		CreatedAt:   parseTime(r.CreatedAt),
		UpdatedAt:   parseTime(r.UpdatedAt),
	}
}

func toItemJSON(it types.Item) itemJSON {
	return itemJSON{
		ItemID:     it.ItemID,
		CategoryID: it.CategoryID,
		Name:       it.Name,
		Ranking:    it.Ranking,
		Seq:        it.Seq,
		CreatedAt:  formatTime(it.CreatedAt),
		UpdatedAt:  formatTime(it.UpdatedAt),
	}
}

func (r itemJSON) item() types.Item {
	return types.Item{
		ItemID:     r.ItemID,
		CategoryID: r.CategoryID,
		Name:       r.Name,
		Ranking:    r.Ranking,
		Seq:        r.Seq,
		CreatedAt:  parseTime(r.CreatedAt),
		UpdatedAt:  parseTime(r.UpdatedAt),
	}
}
