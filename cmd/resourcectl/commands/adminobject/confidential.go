package adminobject

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/cmd/resourcectl/cmdutil"
)

var (
	confidentialInterface string
	confidentialClass     string
)

var confidentialCmd = &cobra.Command{
	Use:   "confidential",
	Short: "List confidential property names of an admin object",
	Long: `List the names of the confidential properties of the first admin
object in a bundle that matches the interface and, when given, the
implementation class.

Examples:
  resourcectl adminobject confidential --app webstore --bundle backend \
    --interface jakarta.jms.Queue --class com.example.QueueImpl`,
	RunE: runConfidential,
}

func init() {
	confidentialCmd.Flags().StringVar(&confidentialInterface, "interface", "", "Admin object interface name (required)")
	confidentialCmd.Flags().StringVar(&confidentialClass, "class", "", "Implementation class name (optional)")
	_ = confidentialCmd.MarkFlagRequired("interface")
}

func runConfidential(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	names, err := client.AdminObjectConfidential(lookupApp, lookupBundle, confidentialInterface, confidentialClass)
	if err != nil {
		return fmt.Errorf("failed to get confidential properties: %w", err)
	}

	table := singleColumn("PROPERTY", names)
	return cmdutil.PrintOutput(os.Stdout, names, len(names) == 0, "No confidential properties.", table)
}
