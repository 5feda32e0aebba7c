package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/pkg/config"
	"github.com/marmos91/resourced/pkg/descriptor"
)

var (
	schemaOutput string
	schemaKind   string
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schema for configuration or descriptors",
	Long: `Generate a JSON schema for the resourced configuration file or for
application descriptors.

The schema can be used for:
  - IDE autocompletion (VS Code, IntelliJ, etc.)
  - File validation
  - Documentation generation

Examples:
  # Print config schema to stdout
  resourced schema

  # Print the application descriptor schema
  resourced schema --kind application

  # Save schema to file
  resourced schema --output config.schema.json`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "Output file (default: stdout)")
	schemaCmd.Flags().StringVarP(&schemaKind, "kind", "k", "config", "Schema kind (config|application)")
}

func runSchema(cmd *cobra.Command, args []string) error {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	var schema *jsonschema.Schema
	switch schemaKind {
	case "config":
		schema = reflector.Reflect(&config.Config{})
		schema.Title = "resourced Configuration"
		schema.Description = "Configuration schema for the resourced server"
	case "application":
		schema = reflector.Reflect(&descriptor.Application{})
		schema.Title = "Application Descriptor"
		schema.Description = "Schema for described applications registered with resourced"
	default:
		return fmt.Errorf("unknown schema kind: %q (valid: config, application)", schemaKind)
	}
	schema.Version = "https://json-schema.org/draft/2020-12/schema"

	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if schemaOutput != "" {
		if err := os.WriteFile(schemaOutput, schemaJSON, 0644); err != nil {
			return fmt.Errorf("failed to write schema file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "JSON schema written to %s\n", schemaOutput)
		return nil
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(schemaJSON))
	return nil
}
