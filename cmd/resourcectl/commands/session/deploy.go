package session

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/cmd/resourcectl/cmdutil"
)

var deployCmd = &cobra.Command{
	Use:   "deploy <application>",
	Short: "Deploy the mail sessions of an application",
	Long: `Register every eligible mail session of an application with the
naming service.

Sessions whose name targets a component-private scope are skipped.
Deploying an already deployed application republishes its sessions.

Examples:
  resourcectl session deploy webstore`,
	Args: cobra.ExactArgs(1),
	RunE: runDeploy,
}

func runDeploy(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	result, err := client.DeploySessions(args[0])
	if err != nil {
		return fmt.Errorf("failed to deploy sessions: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, result,
		fmt.Sprintf("Registered %d mail sessions for '%s' (%d applications deployed)",
			result.Affected, result.Application, result.Deployed))
}
