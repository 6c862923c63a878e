package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/floatdock/internal/cli/styles"
	"github.com/bnema/floatdock/internal/domain/entity"
	"github.com/bnema/floatdock/internal/logging"
)

var boundsYes bool

var boundsCmd = &cobra.Command{
	Use:   "bounds",
	Short: "Manage remembered panel positions",
	Long: `The preview host remembers where panels were left when you press s.
These commands list and remove those saved positions.`,
}

var boundsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved panel positions",
	RunE:  runBoundsList,
}

var boundsDeleteCmd = &cobra.Command{
	Use:   "delete <panel-id>",
	Short: "Forget the saved position of one panel",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoundsDelete,
}

var boundsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every saved panel position",
	RunE:  runBoundsClear,
}

func init() {
	rootCmd.AddCommand(boundsCmd)
	boundsCmd.AddCommand(boundsListCmd)
	boundsCmd.AddCommand(boundsDeleteCmd)
	boundsCmd.AddCommand(boundsClearCmd)
	boundsClearCmd.Flags().BoolVarP(&boundsYes, "yes", "y", false, "skip confirmation prompt")
}

func runBoundsList(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	bounds, err := app.Bounds.List(app.Context())
	if err != nil {
		return fmt.Errorf("list saved bounds: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.NewBoundsRenderer(app.Theme).RenderList(app.DB.Path(), bounds))
	return nil
}

func runBoundsDelete(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	ctx := app.Context()
	id := entity.PanelID(args[0])
	saved, err := app.Bounds.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("look up %s: %w", args[0], err)
	}
	if saved == nil {
		return fmt.Errorf("no saved position for panel %q", args[0])
	}
	if err := app.Bounds.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", args[0], err)
	}
	logging.FromContext(ctx).Debug().Str("panel", args[0]).Msg("saved bounds deleted")
	fmt.Fprintln(cmd.OutOrStdout(), styles.NewBoundsRenderer(app.Theme).RenderCleared(1))
	return nil
}

func runBoundsClear(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	ctx := app.Context()
	renderer := styles.NewBoundsRenderer(app.Theme)
	out := cmd.OutOrStdout()

	bounds, err := app.Bounds.List(ctx)
	if err != nil {
		return fmt.Errorf("list saved bounds: %w", err)
	}
	if len(bounds) == 0 {
		fmt.Fprintln(out, renderer.RenderEmpty(app.DB.Path()))
		return nil
	}

	if !boundsYes {
		ok, err := askConfirm(app.Theme, fmt.Sprintf("Forget %d saved panel position(s)?", len(bounds)), app.DB.Path())
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, styles.NewConfigRenderer(app.Theme).RenderCanceled())
			return nil
		}
	}

	if err := app.Bounds.Clear(ctx); err != nil {
		return fmt.Errorf("clear saved bounds: %w", err)
	}
	fmt.Fprintln(out, renderer.RenderCleared(len(bounds)))
	return nil
}
