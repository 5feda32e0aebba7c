// Package application implements application management commands for resourcectl.
package application

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for application management.
var Cmd = &cobra.Command{
	Use:     "application",
	Aliases: []string{"app"},
	Short:   "Application management",
	Long: `Manage described applications registered with the resourced server.

Application commands allow you to register descriptor files, list and
inspect registered applications, and remove them again.
These operations require admin privileges.

Examples:
  # Register an application from a descriptor file
  resourcectl application apply -f webstore.yaml

  # List all registered applications
  resourcectl application list

  # Show the stored descriptor
  resourcectl application get webstore

  # Remove an application
  resourcectl application delete webstore`,
}

func init() {
	Cmd.AddCommand(applyCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(deleteCmd)
}
