package application

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/cmd/resourcectl/cmdutil"
	"github.com/marmos91/resourced/pkg/descriptor"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a registered application",
	Long: `Show the stored descriptor of a registered application.

The table view summarizes the bundles; use -o yaml or -o json to see
the full descriptor.

Examples:
  # Summarize an application's bundles
  resourcectl application get webstore

  # Dump the full descriptor
  resourcectl application get webstore -o yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

// bundleTable renders an application's bundles for table output.
type bundleTable struct {
	app *descriptor.Application
}

// Headers implements TableRenderer.
func (bt bundleTable) Headers() []string {
	return []string{"BUNDLE", "ADMIN OBJECTS", "MAIL SESSIONS"}
}

// Rows implements TableRenderer.
func (bt bundleTable) Rows() [][]string {
	rows := make([][]string, 0, len(bt.app.Bundles))
	for _, b := range bt.app.Bundles {
		rows = append(rows, []string{
			b.Name,
			strconv.Itoa(len(b.AdminObjects)),
			strconv.Itoa(len(b.AllMailSessions())),
		})
	}
	return rows
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	app, err := client.GetApplication(args[0])
	if err != nil {
		return fmt.Errorf("failed to get application: %w", err)
	}

	return cmdutil.PrintResource(os.Stdout, app, bundleTable{app: app})
}
