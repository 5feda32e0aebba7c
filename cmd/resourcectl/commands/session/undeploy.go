package session

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/cmd/resourcectl/cmdutil"
)

var undeployCmd = &cobra.Command{
	Use:   "undeploy <application>",
	Short: "Undeploy the mail sessions of an application",
	Long: `Unregister every previously registered mail session of an application
from the naming service.

Undeploying an application that was never deployed is a no-op.

Examples:
  resourcectl session undeploy webstore`,
	Args: cobra.ExactArgs(1),
	RunE: runUndeploy,
}

func runUndeploy(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	result, err := client.UndeploySessions(args[0])
	if err != nil {
		return fmt.Errorf("failed to undeploy sessions: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, result,
		fmt.Sprintf("Unregistered %d mail sessions for '%s' (%d applications deployed)",
			result.Affected, result.Application, result.Deployed))
}
