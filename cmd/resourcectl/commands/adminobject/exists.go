package adminobject

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/cmd/resourcectl/cmdutil"
)

var (
	existsInterface string
	existsClass     string
)

var existsCmd = &cobra.Command{
	Use:   "exists",
	Short: "Check whether an interface/class pair is declared",
	Long: `Check whether a bundle declares an admin object with the exact
interface and implementation class pair.

Exits with status 0 and prints "yes" when the pair is declared, prints
"no" otherwise.

Examples:
  resourcectl adminobject exists --app webstore --bundle backend \
    --interface jakarta.jms.Queue --class com.example.QueueImpl`,
	RunE: runExists,
}

func init() {
	existsCmd.Flags().StringVar(&existsInterface, "interface", "", "Admin object interface name (required)")
	existsCmd.Flags().StringVar(&existsClass, "class", "", "Implementation class name (required)")
	_ = existsCmd.MarkFlagRequired("interface")
	_ = existsCmd.MarkFlagRequired("class")
}

func runExists(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	exists, err := client.AdminObjectExists(lookupApp, lookupBundle, existsInterface, existsClass)
	if err != nil {
		return fmt.Errorf("failed to check admin object: %w", err)
	}

	fmt.Println(cmdutil.BoolToYesNo(exists))
	return nil
}
