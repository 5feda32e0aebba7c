// Package session implements mail-session deployment commands for resourcectl.
package session

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for mail-session deployment.
var Cmd = &cobra.Command{
	Use:   "session",
	Short: "Mail session deployment",
	Long: `Deploy and undeploy the mail sessions of a registered application,
and inspect the bindings published in the naming service.

Examples:
  # Publish all eligible mail sessions of an application
  resourcectl session deploy webstore

  # Unregister them again
  resourcectl session undeploy webstore

  # List published bindings
  resourcectl session bindings`,
}

func init() {
	Cmd.AddCommand(deployCmd)
	Cmd.AddCommand(undeployCmd)
	Cmd.AddCommand(bindingsCmd)
}
