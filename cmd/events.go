package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List and join one-off activities",
	}
	cmd.AddCommand(newEventsListCmd())
	cmd.AddCommand(newEventsJoinCmd())
	cmd.AddCommand(newEventsLeaveCmd())
	return cmd
}

func newEventsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.actingUser(cmd.Context()); err != nil {
				return err
			}
			events, err := a.api.Events(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range events {
				fmt.Fprintf(os.Stdout, "id=%d date=%s title=%q attendees=%d\n",
					e.ID, e.Date, e.Title, len(e.Users))
			}
			return nil
		},
	}
}

func newEventsJoinCmd() *cobra.Command {
	var id int64
	c := &cobra.Command{
		Use:   "join",
		Short: "Sign up for an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.actingUser(cmd.Context()); err != nil {
				return err
			}
			if err := a.api.SignUpForEvent(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "joined event %d\n", id)
			return nil
		},
	}
	c.Flags().Int64Var(&id, "id", 0, "event id")
	_ = c.MarkFlagRequired("id")
	return c
}

func newEventsLeaveCmd() *cobra.Command {
	var id int64
	c := &cobra.Command{
		Use:   "leave",
		Short: "Sign off from an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.actingUser(cmd.Context()); err != nil {
				return err
			}
			if err := a.api.SignOffEvent(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "left event %d\n", id)
			return nil
		},
	}
	c.Flags().Int64Var(&id, "id", 0, "event id")
	_ = c.MarkFlagRequired("id")
	return c
}
