package cmd

import (
	"fmt"
	"os"

	"github.com/example/reading-portal/internal/application/usecases"
	"github.com/example/reading-portal/internal/domain/reading"
	"github.com/example/reading-portal/internal/domain/user"
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin slot management (assign/remove other users)",
	}
	cmd.AddCommand(newAdminAssignCmd())
	cmd.AddCommand(newAdminRemoveCmd())
	cmd.AddCommand(newAdminAssigneesCmd())
	return cmd
}

func newAdminAssignCmd() *cobra.Command {
	var (
		departmentID int64
		date         string
		userID       int64
	)

	c := &cobra.Command{
		Use:   "assign",
		Short: "Assign a user to a reading slot (skips cutoff and junior quota)",
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

			users, err := a.api.Users(cmd.Context())
			if err != nil {
				return err
			}
			var target *user.User
			for i := range users {
				if users[i].ID == userID {
					target = &users[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("unknown user id %d", userID)
			}

			uc := usecases.AdminAssign{API: a.api, Cache: a.cache}
			out, err := uc.Execute(cmd.Context(), snap, actor, *target)
			if err != nil {
				return err
			}
			if !out.Dispatched {
				fmt.Fprintf(os.Stdout, "slot %s not assignable (full or blocked)\n", d)
				return nil
			}
			fmt.Fprintf(os.Stdout, "assigned user %d to %s in department %d\n", userID, d, departmentID)
			return nil
		},
	}

	c.Flags().Int64Var(&departmentID, "department", 0, "department id")
	c.Flags().StringVar(&date, "date", "", "slot date YYYY-MM-DD")
	c.Flags().Int64Var(&userID, "user", 0, "target user id")
	_ = c.MarkFlagRequired("department")
	_ = c.MarkFlagRequired("date")
	_ = c.MarkFlagRequired("user")
	return c
}

func newAdminRemoveCmd() *cobra.Command {
	var (
		departmentID int64
		date         string
		readingID    int64
	)

	c := &cobra.Command{
		Use:   "remove",
		Short: "Remove any user's reading by id",
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

			uc := usecases.AdminRemove{API: a.api, Cache: a.cache}
			if _, err := uc.Execute(cmd.Context(), snap, actor, readingID); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "removed reading %d\n", readingID)
			return nil
		},
	}

	c.Flags().Int64Var(&departmentID, "department", 0, "department id")
	c.Flags().StringVar(&date, "date", "", "slot date YYYY-MM-DD")
	c.Flags().Int64Var(&readingID, "reading", 0, "reading id")
	_ = c.MarkFlagRequired("department")
	_ = c.MarkFlagRequired("date")
	_ = c.MarkFlagRequired("reading")
	return c
}

func newAdminAssigneesCmd() *cobra.Command {
	var (
		departmentID int64
		date         string
	)

	c := &cobra.Command{
		Use:   "assignees",
		Short: "List users assignable to a slot (those not already in it)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.actingUser(cmd.Context()); err != nil {
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
			users, err := a.api.Users(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range reading.EligibleAssignees(users, snap) {
				fmt.Fprintf(os.Stdout, "id=%d name=%q seniority=%s\n", u.ID, u.Name, u.Seniority)
			}
			return nil
		},
	}

	c.Flags().Int64Var(&departmentID, "department", 0, "department id")
	c.Flags().StringVar(&date, "date", "", "slot date YYYY-MM-DD")
	_ = c.MarkFlagRequired("department")
	_ = c.MarkFlagRequired("date")
	return c
}
