// Implements: rankaroo-cli (seed command: sample categories and items).
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/rankaroo/pkg/rankaroo"
	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

type seedItem struct {
	name    string
	ranking int
}

type seedCategory struct {
	name  string
	ct    types.CategoryType
	items []seedItem
}

var sampleData = []seedCategory{
	{name: "Top 10 Horror Movies", ct: types.TypeMovies, items: []seedItem{
		{"The Shining", 10},
		{"Get Out", 9},
		{"Hereditary", 8},
		{"The Conjuring", 7},
	}},
	{name: "Best 90s Movies", ct: types.TypeMovies},
	{name: "Top Workout Songs", ct: types.TypeSongs},
	{name: "Favorite Books", ct: types.TypeBooks},
	{name: "Best Restaurants", ct: types.TypeFood},
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample categories and items",
		Long:  "Create the sample categories and items. Categories whose name already exists are skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRanker(cmd.Context(), func(r *rankaroo.Ranker) error {
				created, err := seed(r, a.log)
				if err != nil {
					return err
				}
				if a.jsonMode {
					return a.printJSON(cmd, r.Summary())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d categories\n", created)
				return nil
			})
		},
	}
}

// seed creates the sample data and returns the number of categories created.
func seed(r *rankaroo.Ranker, log *zap.Logger) (int, error) {
	existing := make(map[string]bool)
	for _, c := range r.ListCategories() {
		existing[c.Name] = true
	}

	created := 0
	for _, sc := range sampleData {
		if existing[sc.name] {
			log.Debug("seed category exists", zap.String("name", sc.name))
			continue
		}
		id, err := r.CreateCategory(sc.name, "", sc.ct)
		if err != nil {
			return created, fmt.Errorf("seeding %q: %w", sc.name, err)
		}
		created++
		for _, it := range sc.items {
			if _, err := r.AddItem(id, it.name, it.ranking); err != nil {
				return created, fmt.Errorf("seeding %q in %q: %w", it.name, sc.name, err)
			}
		}
	}
	return created, nil
}
