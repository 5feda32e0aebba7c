// Package adminobject implements admin-object lookup commands for resourcectl.
package adminobject

import (
	"github.com/spf13/cobra"
)

var (
	lookupApp    string
	lookupBundle string
)

// Cmd is the parent command for admin-object lookups.
var Cmd = &cobra.Command{
	Use:     "adminobject",
	Aliases: []string{"ao"},
	Short:   "Admin object lookups",
	Long: `Inspect the admin objects declared by a registered application bundle.

All lookups run against one bundle of one application, selected with the
--app and --bundle flags.

Examples:
  # List declared interfaces
  resourcectl adminobject interfaces --app webstore --bundle backend

  # List implementation classes for an interface
  resourcectl adminobject classes --app webstore --bundle backend --interface jakarta.jms.Queue

  # Show the effective properties of an admin object
  resourcectl adminobject properties --app webstore --bundle backend \
    --interface jakarta.jms.Queue --class com.example.QueueImpl`,
}

func init() {
	Cmd.PersistentFlags().StringVar(&lookupApp, "app", "", "Application name (required)")
	Cmd.PersistentFlags().StringVar(&lookupBundle, "bundle", "", "Bundle name (required)")
	_ = Cmd.MarkPersistentFlagRequired("app")
	_ = Cmd.MarkPersistentFlagRequired("bundle")

	Cmd.AddCommand(interfacesCmd)
	Cmd.AddCommand(classesCmd)
	Cmd.AddCommand(existsCmd)
	Cmd.AddCommand(propertiesCmd)
	Cmd.AddCommand(confidentialCmd)
}
