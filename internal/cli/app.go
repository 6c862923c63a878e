// Package cli wires the floatdock command-line host: configuration, logging,
// theme and the saved-bounds store.
package cli

import (
	"context"
	"fmt"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/cli/styles"
	"github.com/bnema/floatdock/internal/domain/build"
	"github.com/bnema/floatdock/internal/infrastructure/config"
	"github.com/bnema/floatdock/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/floatdock/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	// DB is opened on first use; most commands never touch it.
	DB     *sqlite.LazyDB
	Bounds port.BoundsStore

	ctx context.Context
}

// NewApp loads the configuration and builds the CLI dependencies.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	return NewAppWithManager(mgr)
}

// NewAppWithManager builds the CLI dependencies around an existing config manager.
func NewAppWithManager(mgr *config.Manager) (*App, error) {
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	db := sqlite.NewLazyDB(cfg.Database.Path)

	return &App{
		Config:  cfg,
		Manager: mgr,
		Theme:   styles.NewTheme(),
		DB:      db,
		Bounds:  sqlite.NewBoundsRepository(db),
		ctx:     ctx,
	}, nil
}

// Context returns the base context carrying the CLI logger.
func (a *App) Context() context.Context {
	if a == nil || a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// Close releases the database connection if one was opened.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
