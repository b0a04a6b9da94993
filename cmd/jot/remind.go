package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avdw/jot"
	"github.com/avdw/jot/pkg/core"
	"github.com/avdw/jot/pkg/notify"
)

var remindOnce bool

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the reminder scheduler",
	Long: `Run the reminder scheduler until interrupted. Due reminders fire a
desktop notification once and are disarmed. Notes written by other jot
invocations are picked up by watching the data directory.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, storage, cfg := openEnv(cmd)

		notifier := notify.NewDesktop(notify.Config{
			Command: cfg.NotifyCommand,
			Storage: storage,
			Logger:  slog.Default(),
		})

		sched := jot.NewScheduler(store, notifier,
			jot.WithInterval(cfg.Interval()),
			jot.WithLogger(slog.Default()),
		)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if remindOnce {
			fired := sched.Scan(ctx)
			fmt.Printf("Fired %d reminder(s)\n", fired)
			return
		}

		// Reload when another process touches the records, so the next scan
		// sees the current collection rather than this process's snapshot.
		events, err := storage.Watch(ctx, core.NotesKey)
		if err != nil {
			fatal("Failed to watch data directory", err)
		}
		go func() {
			for range events {
				if err := store.Load(ctx); err != nil {
					slog.Default().Warn("failed to reload notes", "error", err)
				}
			}
		}()

		slog.Default().Info("reminder scheduler running", "interval", cfg.Interval().String())
		if err := sched.Run(ctx); err != nil {
			fatal("Scheduler stopped", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.Flags().BoolVar(&remindOnce, "once", false, "Run a single scan and exit")
}
