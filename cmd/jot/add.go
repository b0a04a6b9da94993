package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avdw/jot/pkg/core"
)

var (
	addTitle     string
	addContent   string
	addCategory  string
	addImportant bool
	addRemind    string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Long:  `Create a note. A blank title becomes "Untitled Note"; a note with neither title nor content is rejected.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := core.ValidateDraft(addTitle, addContent); err != nil {
			fmt.Fprintf(os.Stderr, "Nothing to save: %v\n", err)
			os.Exit(1)
		}

		var remindAt *time.Time
		if addRemind != "" {
			at, err := parseWhen(addRemind)
			if err != nil {
				fatal("Invalid --remind value", err)
			}
			remindAt = &at
		}

		store, _, _ := openEnv(cmd)
		note, err := store.Create(cmd.Context(), core.Draft{
			Title:     addTitle,
			Content:   addContent,
			Category:  addCategory,
			Important: addImportant,
			Reminder:  remindAt,
		})
		if err != nil {
			fatal("Failed to create note", err)
		}

		fmt.Printf("Created %s: %s\n", note.ID, note.Title)
	},
}

// parseWhen accepts either a duration offset ("45m") or an absolute RFC 3339
// timestamp.
func parseWhen(s string) (time.Time, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return time.Now().Add(d), nil
	}
	at, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected a duration like 45m or an RFC 3339 timestamp: %w", err)
	}
	return at, nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Note title")
	addCmd.Flags().StringVarP(&addContent, "content", "c", "", "Note content")
	addCmd.Flags().StringVar(&addCategory, "category", "personal", "Category id")
	addCmd.Flags().BoolVar(&addImportant, "important", false, "Flag the note as important")
	addCmd.Flags().StringVar(&addRemind, "remind", "", "Arm a reminder (duration like 45m, or RFC 3339 timestamp)")
}
