// Startup loading of the JSONL files into a fresh SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

const (
	insertCategorySQL = `INSERT INTO categories (category_id, position, name, description, type, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	insertItemSQL = `INSERT INTO items (item_id, category_id, name, ranking, seq, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
)

// loadJSONL reads categories.jsonl and items.jsonl from dataDir and inserts
// them into db in one transaction: either everything loads or the database
// stays empty. Records that are malformed, reference a missing category, or
// violate a constraint are skipped and counted. Names are trimmed and checked
// for uniqueness the way the stores check them (categories exactly, items by
// case-folded key within their category); the first record in file order wins.
func loadJSONL(ctx context.Context, db *sql.DB, dataDir string, log *zap.Logger) error {
	cats, err := readJSONL[categoryJSON](filepath.Join(dataDir, categoriesJSONL))
	if err != nil {
		return err
	}
	items, err := readJSONL[itemJSON](filepath.Join(dataDir, itemsJSONL))
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	skipped := 0
	catNames := make(map[string]bool, len(cats))
	for i, c := range cats {
		name, err := types.NormalizeName(c.Name)
		if err != nil || c.CategoryID == "" || !types.CategoryType(c.Type).Valid() || catNames[name] {
			skipped++
			continue
		}
		if _, err := tx.ExecContext(ctx, insertCategorySQL,
			c.CategoryID, i, name, c.Description, c.Type, c.CreatedAt, c.UpdatedAt,
		); err != nil {
			skipped++
			continue
		}
		catNames[name] = true
	}

	itemNames := make(map[string]map[string]bool)
	for _, it := range items {
		name, err := types.NormalizeName(it.Name)
		if err != nil || it.ItemID == "" || it.CategoryID == "" {
			skipped++
			continue
		}
		key := types.ItemNameKey(name)
		if itemNames[it.CategoryID][key] {
			skipped++
			continue
		}
		if _, err := tx.ExecContext(ctx, insertItemSQL,
			it.ItemID, it.CategoryID, name, it.Ranking, it.Seq, it.CreatedAt, it.UpdatedAt,
		); err != nil {
			skipped++
			continue
		}
		if itemNames[it.CategoryID] == nil {
			itemNames[it.CategoryID] = make(map[string]bool)
		}
		itemNames[it.CategoryID][key] = true
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}

	log.Debug("loaded JSONL",
		zap.String("data_dir", dataDir),
		zap.Int("categories", len(cats)),
		zap.Int("items", len(items)),
		zap.Int("skipped", skipped),
	)
	return nil
}
