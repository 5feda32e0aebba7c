package adminobject

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/cmd/resourcectl/cmdutil"
	"github.com/marmos91/resourced/internal/cli/output"
)

var (
	propertiesInterface string
	propertiesClass     string
)

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Show the effective properties of an admin object",
	Long: `Show the effective properties of the first admin object in a bundle
that matches the interface and, when given, the implementation class.

Introspected defaults of the implementation class are merged with the
declared descriptor properties; declared values win.

Examples:
  # Properties of the first declaration for an interface
  resourcectl adminobject properties --app webstore --bundle backend --interface jakarta.jms.Queue

  # Properties of a specific implementation
  resourcectl adminobject properties --app webstore --bundle backend \
    --interface jakarta.jms.Queue --class com.example.QueueImpl`,
	RunE: runProperties,
}

func init() {
	propertiesCmd.Flags().StringVar(&propertiesInterface, "interface", "", "Admin object interface name (required)")
	propertiesCmd.Flags().StringVar(&propertiesClass, "class", "", "Implementation class name (optional)")
	_ = propertiesCmd.MarkFlagRequired("interface")
}

func runProperties(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	props, err := client.AdminObjectProperties(lookupApp, lookupBundle, propertiesInterface, propertiesClass)
	if err != nil {
		return fmt.Errorf("failed to get properties: %w", err)
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	table := output.NewTableData("NAME", "VALUE")
	for _, name := range names {
		table.AddRow(name, props[name])
	}

	return cmdutil.PrintOutput(os.Stdout, props, len(props) == 0, "No properties.", table)
}
