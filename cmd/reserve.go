package cmd

import (
	"fmt"
	"os"

	"github.com/example/reading-portal/internal/application/usecases"
	"github.com/example/reading-portal/internal/domain/reading"
	"github.com/example/reading-portal/internal/internaltypes"
	"github.com/spf13/cobra"
)

func newReserveCmd() *cobra.Command {
	var (
		departmentID int64
		date         string
	)

	c := &cobra.Command{
		Use:   "reserve",
		Short: "Reserve a reading slot for yourself",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			actor, err := a.actingUser(cmd.Context())
			if err != nil {
				return err
			}
			d, err := reading.ParseDate(date)
			if err != nil {
				return err
			}
			snap, err := a.snapshotFor(cmd.Context(), departmentID, d)
			if err != nil {
				return err
			}

			uc := usecases.Reserve{API: a.api, Tracker: a.tracker, Cache: a.cache, Clock: a.clk}
			out, err := uc.Execute(cmd.Context(), snap, actor)
			switch {
			case err != nil && internaltypes.IsConflict(err):
				// Lost the race for the last slot; the next snapshot
				// governs.
				fmt.Fprintf(os.Stdout, "warning: %v\n", err)
				return nil
			case err != nil:
				return err
			case !out.Dispatched:
				fmt.Fprintf(os.Stdout, "not reservable: %s\n", out.Verdict.Badge)
				return nil
			}
			fmt.Fprintf(os.Stdout, "reserved %s in department %d\n", d, departmentID)
			return nil
		},
	}

	c.Flags().Int64Var(&departmentID, "department", 0, "department id")
	c.Flags().StringVar(&date, "date", "", "slot date YYYY-MM-DD")
	_ = c.MarkFlagRequired("department")
	_ = c.MarkFlagRequired("date")
	return c
}

func newCancelCmd() *cobra.Command {
	var (
		departmentID int64
		date         string
	)

	c := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel your reading on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			actor, err := a.actingUser(cmd.Context())
			if err != nil {
				return err
			}
			d, err := reading.ParseDate(date)
			if err != nil {
				return err
			}
			snap, err := a.snapshotFor(cmd.Context(), departmentID, d)
			if err != nil {
				return err
			}

			uc := usecases.Cancel{API: a.api, Tracker: a.tracker, Cache: a.cache, Clock: a.clk}
			out, err := uc.Execute(cmd.Context(), snap, actor)
			if err != nil {
				return err
			}
			if !out.Dispatched {
				if !out.Verdict.SignedUp {
					fmt.Fprintf(os.Stdout, "no reading of yours on %s\n", d)
				} else {
					fmt.Fprintf(os.Stdout, "not cancellable: %s\n", out.Verdict.Badge)
				}
				return nil
			}
			fmt.Fprintf(os.Stdout, "cancelled %s in department %d\n", d, departmentID)
			return nil
		},
	}

	c.Flags().Int64Var(&departmentID, "department", 0, "department id")
	c.Flags().StringVar(&date, "date", "", "slot date YYYY-MM-DD")
	_ = c.MarkFlagRequired("department")
	_ = c.MarkFlagRequired("date")
	return c
}
