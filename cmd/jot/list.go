package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avdw/jot/pkg/query"
)

var (
	listSearch   string
	listCategory string
	listJSON     bool
	listCounts   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `List the notes matching the search string and category filter, important notes first, most recently updated next.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, _, _ := openEnv(cmd)
		all := store.ListAll()

		if listCounts {
			counts := query.CategoryCounts(all)
			for _, c := range store.Categories() {
				fmt.Printf("%-12s %d\n", c.Name, counts[c.ID])
			}
			return
		}

		visible := query.Filter(all, listSearch, listCategory)

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(visible); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		if len(visible) == 0 {
			if len(all) == 0 {
				fmt.Println("No notes yet. Create one with 'jot add'.")
			} else {
				fmt.Println("No notes match the current filter.")
			}
			return
		}

		for _, n := range visible {
			marks := ""
			if n.Important {
				marks += "!"
			}
			if n.Checked {
				marks += "x"
			}
			if n.Reminder != nil {
				marks += "@"
			}
			fmt.Printf("%s  %-2s %s (%s) %s\n",
				n.ID, marks, n.Title, n.Category, n.UpdatedAt.Format(time.RFC3339))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive substring match on title or content")
	listCmd.Flags().StringVar(&listCategory, "category", query.AllCategories, "Category id, or 'all'")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listCounts, "counts", false, "Print per-category note counts over the full collection")
}
