package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avdw/jot/pkg/core"
)

var checkCmd = &cobra.Command{
	Use:   "check [id]",
	Short: "Toggle a note's completion checkmark",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		toggle(cmd, args[0], func(n core.Note) core.Patch {
			checked := !n.Checked
			return core.Patch{Checked: &checked}
		})
	},
}

var starCmd = &cobra.Command{
	Use:   "star [id]",
	Short: "Toggle a note's important flag",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		toggle(cmd, args[0], func(n core.Note) core.Patch {
			important := !n.Important
			return core.Patch{Important: &important}
		})
	},
}

func toggle(cmd *cobra.Command, id string, patch func(core.Note) core.Patch) {
	store, _, _ := openEnv(cmd)

	n, ok := store.Get(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Note not found: %s\n", id)
		os.Exit(1)
	}

	if err := store.Update(cmd.Context(), id, patch(n)); err != nil {
		fatal("Failed to update note", err)
	}
	fmt.Printf("Updated %s\n", id)
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(starCmd)
}
