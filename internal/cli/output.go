package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

// printJSON writes v as indented JSON to the command's output.
func (a *app) printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return systemErr(fmt.Errorf("marshal output: %w", err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// infof prints a human-readable message; it is silent in --json mode.
func (a *app) infof(cmd *cobra.Command, format string, args ...any) {
	if a.jsonMode {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func (a *app) printCategories(cmd *cobra.Command, cats []types.Category) error {
	if a.jsonMode {
		if cats == nil {
			cats = []types.Category{}
		}
		return a.printJSON(cmd, cats)
	}
	if len(cats) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No categories.")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tDESCRIPTION")
	for _, c := range cats {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.CategoryID, c.Name, c.Type.Label(), c.Description)
	}
	return w.Flush()
}

func (a *app) printLeaderboard(cmd *cobra.Command, cat types.Category, ranked []types.Ranked) error {
	if a.jsonMode {
		if ranked == nil {
			ranked = []types.Ranked{}
		}
		return a.printJSON(cmd, struct {
			Category types.Category `json:"category"`
			Items    []types.Ranked `json:"items"`
		}{cat, ranked})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", cat.Name, cat.Type.Label())
	if cat.Description != "" {
		fmt.Fprintln(out, cat.Description)
	}
	if len(ranked) == 0 {
		fmt.Fprintln(out, "No items yet.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, r := range ranked {
		fmt.Fprintf(w, "#%d\t%s\t%d/%d\t%s\n", r.Position, r.Item.Name, r.Item.Ranking, types.MaxRanking, r.Item.ItemID)
	}
	return w.Flush()
}
