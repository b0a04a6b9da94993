package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long:  `Delete permanently removes a note. Deleting an unknown id is not an error.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		store, _, _ := openEnv(cmd)

		_, existed := store.Get(id)
		if err := store.Delete(cmd.Context(), id); err != nil {
			fatal("Failed to delete note", err)
		}

		if existed {
			fmt.Printf("Deleted %s\n", id)
		} else {
			fmt.Printf("Nothing to delete: %s\n", id)
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
