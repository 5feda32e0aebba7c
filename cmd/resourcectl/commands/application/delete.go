package application

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/cmd/resourcectl/cmdutil"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a registered application",
	Long: `Remove a registered application from the resourced server.

Mail sessions the server registered for the application are unregistered
first. You will be prompted for confirmation unless --force is specified.

Examples:
  # Remove an application with confirmation
  resourcectl application delete webstore

  # Remove without confirmation
  resourcectl application delete webstore --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	return cmdutil.RunDeleteWithConfirmation("Application", name, deleteForce, func() error {
		if err := client.DeleteApplication(name); err != nil {
			return fmt.Errorf("failed to delete application: %w", err)
		}
		return nil
	})
}
