// Package sqlite implements the SQLite repository for rankaroo.
// Implements: rankaroo-core (persistence boundary: LoadAll/SaveAll);
//
//	docs/ARCHITECTURE § SQLite Repository.
package sqlite

// Schema DDL. Categories keep a position column so the store's insertion
// order survives a round trip; items keep their insertion sequence.
const (
	createCategories = `CREATE TABLE categories (
    category_id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    name TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    type TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createItems = `CREATE TABLE items (
    item_id TEXT PRIMARY KEY,
    category_id TEXT NOT NULL,
    name TEXT NOT NULL,
    ranking INTEGER NOT NULL CHECK (ranking BETWEEN 1 AND 10),
    seq INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (category_id) REFERENCES categories(category_id) ON DELETE CASCADE
);`
)

// Index DDL for the sorted-view and per-category queries.
const (
	idxItemsCategory = `CREATE INDEX idx_items_category ON items(category_id, ranking DESC, seq);`
	idxCategoryType  = `CREATE INDEX idx_categories_type ON categories(type);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createCategories,
	createItems,
	idxItemsCategory,
	idxCategoryType,
}
