package session

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/cmd/resourcectl/cmdutil"
	"github.com/marmos91/resourced/internal/cli/timeutil"
	"github.com/marmos91/resourced/pkg/apiclient"
)

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "List published naming-service bindings",
	Long: `List every binding currently published in the naming service.

Examples:
  # List bindings as table
  resourcectl session bindings

  # List as JSON, including the bound resources
  resourcectl session bindings -o json`,
	RunE: runBindings,
}

// BindingList is a list of bindings for table rendering.
type BindingList []apiclient.Binding

// Headers implements TableRenderer.
func (bl BindingList) Headers() []string {
	return []string{"NAME", "APPLICATION", "PUBLISHED"}
}

// Rows implements TableRenderer.
func (bl BindingList) Rows() [][]string {
	rows := make([][]string, 0, len(bl))
	for _, b := range bl {
		rows = append(rows, []string{
			b.Name,
			cmdutil.EmptyOr(b.Application, "-"),
			timeutil.FormatTime(b.PublishedAt.Format(time.RFC3339)),
		})
	}
	return rows
}

func runBindings(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	bindings, err := client.ListBindings()
	if err != nil {
		return fmt.Errorf("failed to list bindings: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, bindings, len(bindings) == 0, "No bindings published.", BindingList(bindings))
}
