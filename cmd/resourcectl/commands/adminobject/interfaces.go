package adminobject

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/cmd/resourcectl/cmdutil"
	"github.com/marmos91/resourced/internal/cli/output"
)

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List declared admin object interfaces",
	Long: `List the interface names of every admin object declared in a bundle.

Names are reported in document order and duplicates are kept, so the
output mirrors the descriptor.

Examples:
  # List interfaces as table
  resourcectl adminobject interfaces --app webstore --bundle backend

  # List as JSON
  resourcectl adminobject interfaces --app webstore --bundle backend -o json`,
	RunE: runInterfaces,
}

func runInterfaces(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	interfaces, err := client.AdminObjectInterfaces(lookupApp, lookupBundle)
	if err != nil {
		return fmt.Errorf("failed to list interfaces: %w", err)
	}

	table := singleColumn("INTERFACE", interfaces)
	return cmdutil.PrintOutput(os.Stdout, interfaces, len(interfaces) == 0, "No admin objects declared.", table)
}

// singleColumn builds a one-column table for a list of names.
func singleColumn(header string, values []string) *output.TableData {
	table := output.NewTableData(header)
	for _, v := range values {
		table.AddRow(v)
	}
	return table
}
