package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bnema/floatdock/internal/cli/scenario"
	"github.com/bnema/floatdock/internal/cli/styles"
	"github.com/bnema/floatdock/internal/infrastructure/display"
)

const (
	defaultDeskCols = 96
	defaultDeskRows = 27
)

var (
	simulateOutput   string
	simulateDefaults bool
	simulateDraw     bool
)

var errExpectationsFailed = errors.New("scenario expectations failed")

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Replay a scripted scenario against the layout engine",
	Long: `Load a YAML scenario (monitors, panels and a list of steps such as move,
drag, release, resize, show, hide, close or settings), replay it on a simulated
desk and print where every panel ended up.

Animations are fast-forwarded after each step unless the step sets hold: true.
The command fails when an expectation of the scenario is not met.

Examples:
  floatdock simulate drag.yaml
  floatdock simulate --draw drag.yaml
  floatdock simulate -o yaml --defaults drag.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringVarP(&simulateOutput, "output", "o", "table", "output format: table, yaml or json")
	simulateCmd.Flags().BoolVar(&simulateDefaults, "defaults", false, "ignore the layout and monitors of the config file")
	simulateCmd.Flags().BoolVar(&simulateDraw, "draw", false, "draw the final desk below the table")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	s, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	var opts scenario.Options
	if !simulateDefaults {
		opts.Settings = app.Config.Layout.ToLayoutSettings()
		opts.Monitors = app.Config.Monitors
	}

	res, err := scenario.Run(app.Context(), s, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch simulateOutput {
	case "yaml":
		err = writeYAML(out, res)
	case "json":
		err = writeJSON(out, res)
	case "table", "":
		fmt.Fprintln(out, styles.NewSimulateRenderer(app.Theme).RenderResult(res))
		if simulateDraw {
			err = drawResult(out, app.Theme, s, opts, res)
		}
	default:
		return fmt.Errorf("unknown output format %q (want table, yaml or json)", simulateOutput)
	}
	if err != nil {
		return err
	}

	if !res.Passed() {
		return errExpectationsFailed
	}
	return nil
}

func drawResult(w io.Writer, theme *styles.Theme, s *scenario.Scenario, opts scenario.Options, res *scenario.Result) error {
	monitors := s.Monitors
	if len(monitors) == 0 {
		monitors = opts.Monitors
	}
	screen, err := display.FromConfig(monitors)
	if err != nil {
		return err
	}

	panels := make([]styles.DeskPanel, 0, len(res.Panels))
	for _, p := range res.Panels {
		panels = append(panels, styles.DeskPanel{
			ID:      p.ID,
			Kind:    p.Kind,
			Rect:    p.Rect,
			Visible: p.Visible,
		})
	}
	desk := theme.RenderDesk(screen.PrimaryWorkArea(), panels, defaultDeskCols, defaultDeskRows)
	_, err = fmt.Fprintln(w, theme.Box.Render(desk))
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
