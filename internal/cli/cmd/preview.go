package cmd

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/floatdock/internal/cache"
	"github.com/bnema/floatdock/internal/cli/preview"
	"github.com/bnema/floatdock/internal/infrastructure/config"
	"github.com/bnema/floatdock/internal/logging"
	"github.com/bnema/floatdock/internal/ui/mainloop"
)

const refreshKey = "refresh-all"

var previewNoRestore bool

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Arrange the configured panels on a simulated desk",
	Long: `Open the panels of the config file on a simulated desk in the terminal and
move, drag, resize or hide them with the keyboard to see how the layout engine
reacts.

Saving (s) remembers the positions for the next preview. Editing config.toml
while the preview runs re-lays out every panel with the new settings.

Logs go to $XDG_STATE_HOME/floatdock/preview.log while the preview runs.`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().BoolVar(&previewNoRestore, "no-restore", false, "ignore saved panel positions")
}

func runPreview(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	stateDir, err := config.GetStateDir()
	if err != nil {
		return fmt.Errorf("resolve log directory: %w", err)
	}
	rotator, err := logging.NewLogRotator(logging.RotatorOptions{
		Dir:        stateDir,
		Name:       "preview.log",
		MaxBackups: 3,
		MaxAgeDays: 14,
		Compress:   true,
	})
	if err != nil {
		return err
	}
	defer rotator.Close()

	// The terminal belongs to the TUI, so logs go to the file only.
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(app.Config.Logging.Level),
		Format: "json",
		Output: rotator,
	})
	ctx, cancel := context.WithCancel(logging.WithContext(app.Context(), logger))
	defer cancel()
	ctx = logging.WithSession(ctx, logging.GenerateSessionID())
	defer logging.RecoverPanic(ctx)
	log := logging.FromContext(ctx)

	// Pending writes must survive the cancellation that ends the preview.
	bounds := cache.NewBoundsCache(context.WithoutCancel(ctx), app.Bounds)
	if err := bounds.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to load saved bounds")
	}
	defer bounds.Flush()

	loop := mainloop.NewLoop(0)
	relay := preview.NewRelay()
	host, err := preview.NewHost(ctx, preview.HostOptions{
		Post:        loop.Post,
		Scheduler:   loop,
		Settings:    app.Manager,
		Monitors:    app.Config.Monitors,
		Panels:      app.Config.Panels,
		Bounds:      bounds,
		SkipRestore: previewNoRestore,
		Publish:     relay.Offer,
	})
	if err != nil {
		return err
	}

	prog := tea.NewProgram(preview.NewModel(app.Theme, host), tea.WithAltScreen(), tea.WithContext(ctx))

	coalescer := mainloop.NewCoalescer(loop.Post)
	defer coalescer.Destroy()
	app.Manager.OnConfigChange(func(*config.Config) {
		log.Info().Msg("config changed, refreshing layout")
		coalescer.Post(refreshKey, host.Refresh)
	})
	if err := app.Manager.Watch(ctx); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	}

	log.Info().Str("config", app.Manager.ConfigFile()).Msg("preview started")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer logging.RecoverPanic(ctx)
		err := loop.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer logging.RecoverPanic(ctx)
		err := relay.Run(gctx, func(msg any) { prog.Send(msg) })
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer logging.RecoverPanic(ctx)
		defer cancel()
		host.Start()
		_, err := prog.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	err = g.Wait()
	log.Info().Err(err).Msg("preview stopped")
	return err
}
