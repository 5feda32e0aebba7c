package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/marmos91/resourced/internal/cli/prompt"
	"github.com/marmos91/resourced/pkg/api"
	"github.com/marmos91/resourced/pkg/config"
)

var (
	initForce         bool
	initAdminPassword string
	initSkipAdmin     bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample resourced configuration file and set up the
admin user.

By default, the configuration file is created at $XDG_CONFIG_HOME/resourced/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  resourced init

  # Initialize with custom path
  resourced init --config /etc/resourced/config.yaml

  # Force overwrite existing config
  resourced init --force

  # Non-interactive admin setup
  resourced init --admin-password secret-password`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
	initCmd.Flags().StringVar(&initAdminPassword, "admin-password", "", "Admin password (prompted interactively when omitted)")
	initCmd.Flags().BoolVar(&initSkipAdmin, "skip-admin", false, "Skip admin password setup")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	var configPath string
	var err error

	if configFile != "" {
		// Use custom path
		err = config.InitConfigToPath(configFile, initForce)
		configPath = configFile
	} else {
		// Use default path
		configPath, err = config.InitConfig(initForce)
	}

	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if !initSkipAdmin {
		if err := setupAdminUser(configPath); err != nil {
			return err
		}
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Println("  2. Start the server with: resourced start")
	fmt.Printf("  3. Or specify custom config: resourced start --config %s\n", configPath)
	fmt.Println("\nSecurity note:")
	fmt.Println("  A random JWT secret has been generated for development use.")
	fmt.Println("  For production, generate a secure secret and use an environment variable:")
	fmt.Println("    # Generates a 64-character hex string (32 bytes of entropy)")
	fmt.Printf("    export %s=$(openssl rand -hex 32)\n", api.EnvAPISecret)

	return nil
}

// setupAdminUser stores the bcrypt hash of the admin password in the freshly
// generated config file.
func setupAdminUser(configPath string) error {
	password := initAdminPassword
	if password == "" {
		var err error
		password, err = prompt.PasswordWithConfirmation("Admin password", "Confirm admin password", 8)
		if err != nil {
			return fmt.Errorf("failed to read admin password: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to reload generated config: %w", err)
	}
	cfg.Admin.PasswordHash = string(hash)

	if err := config.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Admin user %q configured\n", cfg.Admin.Username)
	return nil
}
