package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/example/reading-portal/internal/infrastructure/session"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	c := &cobra.Command{
		Use:   "login",
		Short: "Log in to the reading portal and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			if password == "" {
				fmt.Fprint(os.Stderr, "password: ")
				rd := bufio.NewReader(os.Stdin)
				line, err := rd.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}

			token, err := a.api.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if err := a.sessions.Save(session.Session{
				AccessToken: token,
				Email:       email,
				SavedAt:     time.Now().UTC(),
			}); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "logged in as %s\n", email)
			return nil
		},
	}

	c.Flags().StringVar(&email, "email", "", "portal account email")
	c.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	_ = c.MarkFlagRequired("email")
	return c
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.sessions.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the acting user and capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			u, err := a.actingUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "id=%d name=%q email=%s role=%s seniority=%s\n",
				u.ID, u.Name, u.Email, u.Role, u.Seniority)
			return nil
		},
	}
}
