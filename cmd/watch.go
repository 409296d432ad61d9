package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/reading-portal/internal/scheduler"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var departmentID int64

	c := &cobra.Command{
		Use:   "watch",
		Short: "Poll a department's slots and report eligibility changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			actor, err := a.actingUser(cmd.Context())
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			w := &scheduler.Watcher{
				Cache:        a.cache,
				Clock:        a.clk,
				Actor:        actor,
				DepartmentID: departmentID,
				Interval:     a.cfg.WatchInterval,
				OnChange: func(ch scheduler.Change) {
					if ch.First {
						fmt.Fprintf(os.Stdout, "%s  %s\n", ch.Snapshot.Date, ch.Current.Badge())
						return
					}
					fmt.Fprintf(os.Stdout, "%s  %s -> %s\n", ch.Snapshot.Date, ch.Previous.Badge(), ch.Current.Badge())
				},
			}

			err = w.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	c.Flags().Int64Var(&departmentID, "department", 0, "department id")
	_ = c.MarkFlagRequired("department")
	return c
}
