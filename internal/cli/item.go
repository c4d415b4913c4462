// Implements: rankaroo-cli (item commands: add, rank, remove, list).
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rankaroo/pkg/rankaroo"
	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

func newItemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Add, rank, and remove items in a category",
	}
	cmd.AddCommand(
		newItemAddCmd(a),
		newItemRankCmd(a),
		newItemRemoveCmd(a),
		newItemListCmd(a),
	)
	return cmd
}

func newItemAddCmd(a *app) *cobra.Command {
	var ranking int

	cmd := &cobra.Command{
		Use:   "add <category-id> <name>",
		Short: "Add an item to a category",
		Long: fmt.Sprintf(`Add an item with a ranking from %d to %d (default %d).

Example:
  rankaroo item add <category-id> "The Shining" --ranking 10`, types.MinRanking, types.MaxRanking, types.DefaultRanking),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRanker(cmd.Context(), func(r *rankaroo.Ranker) error {
				id, err := r.AddItem(args[0], args[1], ranking)
				if err != nil {
					return err
				}
				return a.printItem(cmd, r, id, "Added")
			})
		},
	}

	cmd.Flags().IntVarP(&ranking, "ranking", "r", types.DefaultRanking, "ranking from 1 to 10")
	return cmd
}

func newItemRankCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rank <item-id> <ranking>",
		Short: "Change an item's ranking",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ranking, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("ranking %q: %w", args[1], types.ErrRange)
			}
			return a.withRanker(cmd.Context(), func(r *rankaroo.Ranker) error {
				if err := r.UpdateItemRanking(args[0], ranking); err != nil {
					return err
				}
				return a.printItem(cmd, r, args[0], "Ranked")
			})
		},
	}
}

func newItemRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <item-id>",
		Aliases: []string{"rm"},
		Short:   "Remove an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRanker(cmd.Context(), func(r *rankaroo.Ranker) error {
				it, err := r.GetItem(args[0])
				if err != nil {
					return err
				}
				if err := r.RemoveItem(it.ItemID); err != nil {
					return err
				}
				if a.jsonMode {
					return a.printJSON(cmd, map[string]string{"deleted": it.ItemID})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s: %s\n", it.ItemID, it.Name)
				return nil
			})
		},
	}
}

func newItemListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <category-id>",
		Short: "List a category's items, highest ranking first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRanker(cmd.Context(), func(r *rankaroo.Ranker) error {
				return a.showLeaderboard(cmd, r, args[0])
			})
		},
	}
}

func (a *app) printItem(cmd *cobra.Command, r *rankaroo.Ranker, id, verb string) error {
	it, err := r.GetItem(id)
	if err != nil {
		return err
	}
	if a.jsonMode {
		return a.printJSON(cmd, it)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s (%d/%d)\n", verb, it.ItemID, it.Name, it.Ranking, types.MaxRanking)
	return nil
}
