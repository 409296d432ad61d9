package cmd

import (
	"fmt"
	"os"

	"github.com/example/reading-portal/internal/domain/reading"
	"github.com/example/reading-portal/internal/logger"
	"github.com/spf13/cobra"
)

func newDepartmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "departments",
		Short: "List departments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			deps, err := a.api.Departments(cmd.Context())
			if err != nil {
				return err
			}
			for _, d := range deps {
				fmt.Fprintf(os.Stdout, "id=%d name=%q\n", d.ID, d.Name)
			}
			return nil
		},
	}
}

func newSlotsCmd() *cobra.Command {
	var departmentID int64

	c := &cobra.Command{
		Use:   "slots",
		Short: "List a department's slots with your eligibility verdict per date",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			actor, err := a.actingUser(cmd.Context())
			if err != nil {
				return err
			}

			snaps, err := a.cache.Department(cmd.Context(), departmentID)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Fprintln(os.Stdout, "no slot data")
				return nil
			}

			now := a.clk.Now()
			for _, s := range snaps {
				v := reading.Evaluate(reading.Input{Snapshot: s, Actor: actor, Now: now})
				printSlot(s, v)
				for _, w := range v.Warnings {
					logger.L().Warn("slot data integrity", "department", departmentID, "date", s.Date, "detail", w)
				}
			}
			return nil
		},
	}

	c.Flags().Int64Var(&departmentID, "department", 0, "department id")
	_ = c.MarkFlagRequired("department")
	return c
}

func printSlot(s reading.Snapshot, v reading.Verdict) {
	occupancy := fmt.Sprintf("%d/%d", len(s.Readings), reading.Capacity)
	if s.Blocked() {
		occupancy = "-"
	}
	marks := ""
	if v.SignedUp {
		marks += " [you]"
	}
	if v.CanReserve {
		marks += " [can reserve]"
	}
	if v.CanCancel {
		marks += " [can cancel]"
	}
	if v.CanAdminAssign {
		marks += " [admin assign]"
	}
	fmt.Fprintf(os.Stdout, "%s (%s)  %-20s %s%s\n",
		s.Date, s.Date.Weekday().String()[:3], v.Badge, occupancy, marks)
	for _, r := range s.Readings {
		if r.Blocked {
			continue
		}
		fmt.Fprintf(os.Stdout, "    - %s (%s)\n", r.User.Name, r.User.Seniority)
	}
}

func newMineCmd() *cobra.Command {
	var from, to string

	c := &cobra.Command{
		Use:   "mine",
		Short: "List your own readings in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			actor, err := a.actingUser(cmd.Context())
			if err != nil {
				return err
			}

			today := reading.DateOf(a.clk.Now())
			fromDate, toDate := today.AddDays(-30), today.AddDays(30)
			if from != "" {
				if fromDate, err = reading.ParseDate(from); err != nil {
					return err
				}
			}
			if to != "" {
				if toDate, err = reading.ParseDate(to); err != nil {
					return err
				}
			}

			snaps, err := a.cache.Mine(cmd.Context(), fromDate, toDate)
			if err != nil {
				return err
			}

			var any bool
			for _, s := range snaps {
				r, ok := s.FindByUser(actor.ID)
				if !ok {
					continue
				}
				any = true
				note := ""
				if r.NeedsReport(today) {
					note = "  report missing"
				} else if r.HasReport() {
					note = fmt.Sprintf("  report #%d %q", r.Report.ID, r.Report.Title)
				}
				fmt.Fprintf(os.Stdout, "%s  department=%d  reading=%d%s\n", s.Date, s.DepartmentID, r.ID, note)
			}
			if !any {
				fmt.Fprintln(os.Stdout, "no readings in range")
			}
			return nil
		},
	}

	c.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD (default: 30 days back)")
	c.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD (default: 30 days ahead)")
	return c
}
