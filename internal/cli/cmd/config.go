package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/floatdock/internal/cli/styles"
	"github.com/bnema/floatdock/internal/infrastructure/config"
)

var (
	configYes         bool
	configSchemaWrite bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the config file path and the active layout settings",
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print the JSON schema describing config.toml.

With --write the schema is stored next to the config file instead, where
TOML language servers pick it up.`,
	RunE: runConfigSchema,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Add missing default settings to the config file",
	Long: `Compare the config file with the defaults, add the settings it lacks and
drop the keys floatdock does not read. Existing values are kept.`,
	RunE: runConfigMigrate,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the config file with the defaults",
	RunE:  runConfigReset,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configMigrateCmd)
	configCmd.AddCommand(configResetCmd)

	configSchemaCmd.Flags().BoolVarP(&configSchemaWrite, "write", "w", false, "write the schema next to the config file")
	configMigrateCmd.Flags().BoolVarP(&configYes, "yes", "y", false, "skip confirmation prompt")
	configResetCmd.Flags().BoolVarP(&configYes, "yes", "y", false, "skip confirmation prompt")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderer.RenderConfigInfo(app.Manager.ConfigFile(), app.Manager.LayoutSettings()))

	changes, err := config.NewMigrator(app.Manager.ConfigFile()).DetectChanges()
	if err != nil {
		fmt.Fprintln(out, renderer.RenderError(err))
		return nil
	}
	if len(changes) > 0 {
		fmt.Fprintln(out, renderer.RenderMigrateHint(len(changes)))
	}
	return nil
}

func runConfigMigrate(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	out := cmd.OutOrStdout()
	path := app.Manager.ConfigFile()
	migrator := config.NewMigrator(path)

	changes, err := migrator.DetectChanges()
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Fprintln(out, renderer.RenderUpToDate(path))
		return nil
	}
	fmt.Fprintln(out, renderer.RenderChanges(changes))

	if !configYes {
		ok, err := askConfirm(app.Theme, "Apply these changes?", path)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, renderer.RenderCanceled())
			return nil
		}
	}

	applied, err := migrator.Migrate()
	if err != nil {
		fmt.Fprintln(out, renderer.RenderError(err))
		return err
	}
	fmt.Fprintln(out, renderer.RenderMigrated(len(applied), path))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if !configSchemaWrite {
		data, err := config.GenerateSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	path := filepath.Join(app.Manager.ConfigDir(), "config.schema.json")
	if err := config.WriteSchemaFile(path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.NewConfigRenderer(app.Theme).RenderSchemaWritten(path))
	return nil
}

func runConfigReset(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	out := cmd.OutOrStdout()

	if !configYes {
		ok, err := askConfirm(app.Theme, "Replace the config file with the defaults?", app.Manager.ConfigFile())
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, renderer.RenderCanceled())
			return nil
		}
	}

	if err := app.Manager.Save(config.DefaultConfig()); err != nil {
		fmt.Fprintln(out, renderer.RenderError(err))
		return err
	}
	fmt.Fprintln(out, renderer.RenderReset(app.Manager.ConfigFile()))
	return nil
}
