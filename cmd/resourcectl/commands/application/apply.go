package application

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/cmd/resourcectl/cmdutil"
	"github.com/marmos91/resourced/pkg/descriptor"
)

var applyFile string

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Register an application from a descriptor file",
	Long: `Register a described application with the resourced server.

The descriptor file can be YAML or JSON. Applying a descriptor for an
already registered application replaces the previous registration.

Examples:
  # Register an application
  resourcectl application apply -f webstore.yaml

  # Register from a JSON descriptor
  resourcectl application apply -f webstore.json`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyFile, "file", "f", "", "Descriptor file (required)")
	_ = applyCmd.MarkFlagRequired("file")
}

func runApply(cmd *cobra.Command, args []string) error {
	app, err := descriptor.LoadFile(applyFile)
	if err != nil {
		return fmt.Errorf("failed to load descriptor: %w", err)
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	summary, err := client.CreateApplication(app)
	if err != nil {
		return fmt.Errorf("failed to register application: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, summary,
		fmt.Sprintf("Application '%s' registered (%d bundles, %d mail sessions)",
			summary.Name, summary.Bundles, summary.MailSessions))
}
