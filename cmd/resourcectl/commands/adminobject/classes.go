package adminobject

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/cmd/resourcectl/cmdutil"
)

var classesInterface string

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List implementation classes for an interface",
	Long: `List the implementation class names declared for an admin object
interface in a bundle.

Duplicate declarations are reported once, and admin objects without an
implementation class are skipped.

Examples:
  # List classes for an interface
  resourcectl adminobject classes --app webstore --bundle backend --interface jakarta.jms.Queue`,
	RunE: runClasses,
}

func init() {
	classesCmd.Flags().StringVar(&classesInterface, "interface", "", "Admin object interface name (required)")
	_ = classesCmd.MarkFlagRequired("interface")
}

func runClasses(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	classes, err := client.AdminObjectClasses(lookupApp, lookupBundle, classesInterface)
	if err != nil {
		return fmt.Errorf("failed to list classes: %w", err)
	}

	table := singleColumn("CLASS", classes)
	return cmdutil.PrintOutput(os.Stdout, classes, len(classes) == 0,
		fmt.Sprintf("No classes declared for interface '%s'.", classesInterface), table)
}
