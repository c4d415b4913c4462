// Implements: rankaroo-cli (category commands: create, rename, describe,
// delete, list, show, types).
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rankaroo/pkg/rankaroo"
	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}
	cmd.AddCommand(
		newCategoryCreateCmd(a),
		newCategoryRenameCmd(a),
		newCategoryDescribeCmd(a),
		newCategoryDeleteCmd(a),
		newCategoryListCmd(a),
		newCategoryShowCmd(a),
		newCategoryTypesCmd(a),
	)
	return cmd
}

func newCategoryCreateCmd(a *app) *cobra.Command {
	var name, description, typeName string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new category",
		Long: `Create a category with a unique name and one of the category types.

Examples:
  rankaroo category create --name "Top 10 Horror Movies" --type Movies
  rankaroo category create --name "Road trip" --type "TV Shows" --description "Binge list"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := types.ParseCategoryType(typeName)
			if err != nil {
				return err
			}
			return a.withRanker(cmd.Context(), func(r *rankaroo.Ranker) error {
				id, err := r.CreateCategory(name, description, ct)
				if err != nil {
					return err
				}
				cat, err := r.GetCategory(id)
				if err != nil {
					return err
				}
				if a.jsonMode {
					return a.printJSON(cmd, cat)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created category %s: %s\n", cat.CategoryID, cat.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "category name (required)")
	cmd.Flags().StringVar(&description, "description", "", "category description")
	cmd.Flags().StringVar(&typeName, "type", "", "category type: Movies, Songs, Books, Food, Games, TV Shows, Places, Other (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newCategoryRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <category-id> <new-name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRanker(cmd.Context(), func(r *rankaroo.Ranker) error {
				if err := r.RenameCategory(args[0], args[1]); err != nil {
					return err
				}
				return a.printCategory(cmd, r, args[0], func(c types.Category) string {
					return fmt.Sprintf("Renamed category %s to %s", c.CategoryID, c.Name)
				})
			})
		},
	}
}

func newCategoryDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <category-id> <description>",
		Short: "Set a category's description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRanker(cmd.Context(), func(r *rankaroo.Ranker) error {
				if err := r.DescribeCategory(args[0], args[1]); err != nil {
					return err
				}
				return a.printCategory(cmd, r, args[0], func(c types.Category) string {
					return fmt.Sprintf("Updated description of %s: %s", c.CategoryID, c.Description)
				})
			})
		},
	}
}

func newCategoryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category and all of its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRanker(cmd.Context(), func(r *rankaroo.Ranker) error {
				cat, err := r.GetCategory(args[0])
				if err != nil {
					return err
				}
				if err := r.DeleteCategory(cat.CategoryID); err != nil {
					return err
				}
				if a.jsonMode {
					return a.printJSON(cmd, map[string]string{"deleted": cat.CategoryID})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s: %s\n", cat.CategoryID, cat.Name)
				return nil
			})
		},
	}
}

func newCategoryListCmd(a *app) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter types.CategoryType
			if typeName != "" {
				ct, err := types.ParseCategoryType(typeName)
				if err != nil {
					return err
				}
				filter = ct
			}
			return a.withRanker(cmd.Context(), func(r *rankaroo.Ranker) error {
				if filter == "" {
					return a.printCategories(cmd, r.ListCategories())
				}
				cats, err := r.CategoriesByType(filter)
				if err != nil {
					return err
				}
				return a.printCategories(cmd, cats)
			})
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "only list categories of this type")
	return cmd
}

func newCategoryShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <category-id>",
		Short: "Show a category and its ranked items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRanker(cmd.Context(), func(r *rankaroo.Ranker) error {
				return a.showLeaderboard(cmd, r, args[0])
			})
		},
	}
}

func newCategoryTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the supported category types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonMode {
				return a.printJSON(cmd, types.CategoryTypes)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, ct := range types.CategoryTypes {
				fmt.Fprintf(w, "%s\t%s\n", ct, ct.Label())
			}
			return w.Flush()
		},
	}
}

// printCategory reloads a category after a change and prints it as JSON or
// as the line produced by msg.
func (a *app) printCategory(cmd *cobra.Command, r *rankaroo.Ranker, id string, msg func(types.Category) string) error {
	cat, err := r.GetCategory(id)
	if err != nil {
		return err
	}
	if a.jsonMode {
		return a.printJSON(cmd, cat)
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg(cat))
	return nil
}

func (a *app) showLeaderboard(cmd *cobra.Command, r *rankaroo.Ranker, categoryID string) error {
	cat, err := r.GetCategory(categoryID)
	if err != nil {
		return err
	}
	ranked, err := r.Leaderboard(categoryID)
	if err != nil {
		return err
	}
	return a.printLeaderboard(cmd, cat, ranked)
}
