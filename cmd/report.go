package cmd

import (
	"fmt"
	"os"

	"github.com/example/reading-portal/internal/application/usecases"
	"github.com/example/reading-portal/internal/domain/reading"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Attach or update the report of a past reading",
	}
	cmd.AddCommand(newReportAddCmd())
	cmd.AddCommand(newReportUpdateCmd())
	return cmd
}

// findOwnReading locates one of the actor's readings by id in the recent
// "mine" view.
func findOwnReading(a *app, cmd *cobra.Command, readingID int64) (reading.Reading, error) {
	today := reading.DateOf(a.clk.Now())
	snaps, err := a.cache.Mine(cmd.Context(), today.AddDays(-90), today.AddDays(30))
	if err != nil {
		return reading.Reading{}, err
	}
	for _, s := range snaps {
		for _, r := range s.Readings {
			if r.ID == readingID {
				return r, nil
			}
		}
	}
	return reading.Reading{}, fmt.Errorf("reading %d not found in your recent readings", readingID)
}

func newReportAddCmd() *cobra.Command {
	var (
		readingID   int64
		title       string
		description string
	)

	c := &cobra.Command{
		Use:   "add",
		Short: "Attach a report to one of your past readings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			actor, err := a.actingUser(cmd.Context())
			if err != nil {
				return err
			}
			r, err := findOwnReading(a, cmd, readingID)
			if err != nil {
				return err
			}

			uc := usecases.AttachReport{API: a.api, Clock: a.clk}
			if err := uc.Execute(cmd.Context(), r, actor, title, description); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "report attached to reading %d\n", readingID)
			return nil
		},
	}

	c.Flags().Int64Var(&readingID, "reading", 0, "reading id")
	c.Flags().StringVar(&title, "title", "", "report title")
	c.Flags().StringVar(&description, "description", "", "report text")
	_ = c.MarkFlagRequired("reading")
	_ = c.MarkFlagRequired("title")
	return c
}

func newReportUpdateCmd() *cobra.Command {
	var (
		reportID    int64
		title       string
		description string
	)

	c := &cobra.Command{
		Use:   "update",
		Short: "Rewrite an existing report",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			actor, err := a.actingUser(cmd.Context())
			if err != nil {
				return err
			}

			uc := usecases.UpdateReport{API: a.api}
			if err := uc.Execute(cmd.Context(), reportID, actor, title, description); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "report %d updated\n", reportID)
			return nil
		},
	}

	c.Flags().Int64Var(&reportID, "id", 0, "report id")
	c.Flags().StringVar(&title, "title", "", "report title")
	c.Flags().StringVar(&description, "description", "", "report text")
	_ = c.MarkFlagRequired("id")
	_ = c.MarkFlagRequired("title")
	return c
}
