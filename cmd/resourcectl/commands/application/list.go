package application

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/cmd/resourcectl/cmdutil"
	"github.com/marmos91/resourced/pkg/apiclient"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered applications",
	Long: `List all applications registered with the resourced server.

Examples:
  # List applications as table
  resourcectl application list

  # List as JSON
  resourcectl application list -o json`,
	RunE: runList,
}

// ApplicationList is a list of applications for table rendering.
type ApplicationList []apiclient.ApplicationSummary

// Headers implements TableRenderer.
func (al ApplicationList) Headers() []string {
	return []string{"NAME", "BUNDLES", "MAIL SESSIONS"}
}

// Rows implements TableRenderer.
func (al ApplicationList) Rows() [][]string {
	rows := make([][]string, 0, len(al))
	for _, a := range al {
		rows = append(rows, []string{a.Name, strconv.Itoa(a.Bundles), strconv.Itoa(a.MailSessions)})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	apps, err := client.ListApplications()
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, apps, len(apps) == 0, "No applications registered.", ApplicationList(apps))
}
