package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/biome-survival/internal/config"
)

var (
	flagSchemaOut string
	flagDefaults  bool
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the config file JSON schema",
	Long: `Print the JSON schema of the game config file, for editor completion
and validation of custom configs. With --defaults the built-in config is
printed as YAML instead, ready to be edited and passed with --config.

Examples:
  survival schema > survival.schema.json
  survival schema --out ./schemas/survival.json
  survival schema --defaults > my-biomes.yaml`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&flagSchemaOut, "out", "", "Write to a file instead of stdout")
	schemaCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the default config YAML")
}

func runSchema(cmd *cobra.Command, _ []string) error {
	var data []byte
	if flagDefaults {
		data = config.DefaultYAML()
	} else {
		var err error
		data, err = json.MarshalIndent(buildSchema(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal schema: %w", err)
		}
		data = append(data, '\n')
	}

	if flagSchemaOut == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return writeFile(flagSchemaOut, data)
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(new(config.SurvivalConfig))
	schema.Title = "Biome Survival Config"
	schema.Description = "World, player, spawner, item, effect, health and biome settings"
	return schema
}

// writeFile replaces path atomically.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
