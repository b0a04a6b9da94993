package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avdw/jot/pkg/core"
)

var (
	editTitle       string
	editContent     string
	editCategory    string
	editRemind      string
	editClearRemind bool
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Update fields of a note",
	Long:  `Update the given fields of a note. Only flags that were set are applied; the note's updated timestamp is refreshed either way.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		store, _, _ := openEnv(cmd)

		if _, ok := store.Get(id); !ok {
			fmt.Fprintf(os.Stderr, "Note not found: %s\n", id)
			os.Exit(1)
		}

		var patch core.Patch
		if cmd.Flags().Changed("title") {
			patch.Title = &editTitle
		}
		if cmd.Flags().Changed("content") {
			patch.Content = &editContent
		}
		if cmd.Flags().Changed("category") {
			patch.Category = &editCategory
		}
		if editClearRemind {
			patch.ClearReminder = true
		} else if editRemind != "" {
			at, err := parseWhen(editRemind)
			if err != nil {
				fatal("Invalid --remind value", err)
			}
			patch.Reminder = &at
		}

		if err := store.Update(cmd.Context(), id, patch); err != nil {
			fatal("Failed to update note", err)
		}
		fmt.Printf("Updated %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
	editCmd.Flags().StringVar(&editCategory, "category", "", "New category id")
	editCmd.Flags().StringVar(&editRemind, "remind", "", "Arm a reminder (duration like 45m, or RFC 3339 timestamp)")
	editCmd.Flags().BoolVar(&editClearRemind, "clear-remind", false, "Disarm the reminder")
}
