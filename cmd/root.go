package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "readingctl",
		Short: "Book, cancel and inspect department reading slots from the terminal",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newKeysCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newDepartmentsCmd())
	root.AddCommand(newSlotsCmd())
	root.AddCommand(newMineCmd())
	root.AddCommand(newReserveCmd())
	root.AddCommand(newCancelCmd())
	root.AddCommand(newAdminCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newEventsCmd())
	root.AddCommand(newWatchCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
