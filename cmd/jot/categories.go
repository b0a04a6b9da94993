package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avdw/jot/pkg/core"
	"github.com/avdw/jot/pkg/query"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with note counts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, _, _ := openEnv(cmd)
		counts := query.CategoryCounts(store.ListAll())

		for _, c := range store.Categories() {
			fmt.Printf("%-10s %-12s %-8s %d\n", c.ID, c.Name, c.Color, counts[c.ID])
		}
	},
}

var categoriesSetCmd = &cobra.Command{
	Use:   "set [id] [name] [color]",
	Short: "Create or update a category",
	Long:  `Create or update a category. The category collection is replaced and persisted wholesale; notes referencing a removed category simply lose their badge.`,
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		id, name, color := args[0], args[1], args[2]
		store, _, _ := openEnv(cmd)

		categories := store.Categories()
		found := false
		for i := range categories {
			if categories[i].ID == id {
				categories[i].Name = name
				categories[i].Color = color
				found = true
				break
			}
		}
		if !found {
			categories = append(categories, core.Category{ID: id, Name: name, Color: color})
		}

		if err := store.SaveCategories(cmd.Context(), categories); err != nil {
			fatal("Failed to save categories", err)
		}
		fmt.Printf("Category saved: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(categoriesSetCmd)
}
