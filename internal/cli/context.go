// Package cli wires configuration, logging, storage, permissions and the
// terminal UI into the context shared by every datasave command.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/zoro11031/datasave/internal/config"
	"github.com/zoro11031/datasave/internal/logging"
	"github.com/zoro11031/datasave/internal/permission"
	"github.com/zoro11031/datasave/internal/screen"
	"github.com/zoro11031/datasave/internal/storage"
	"github.com/zoro11031/datasave/internal/ui"
)

// Options controls how the AppContext is built
type Options struct {
	ConfigPath     string
	LogLevel       string // overrides LOG_LEVEL when set
	NonInteractive bool
	AssumeYes      bool // answer permission requests with yes
	Fs             afero.Fs
	UI             *ui.UI
	Logger         *slog.Logger
}

// AppContext holds all dependencies needed by commands
type AppContext struct {
	Config      *config.Config
	Settings    *config.Settings
	UI          *ui.UI
	Logger      *slog.Logger
	Store       *storage.Store
	Permissions *permission.Manager
}

// NewAppContext creates an AppContext with all dependencies initialized
func NewAppContext(opts Options) (*AppContext, error) {
	cfg := config.New(opts.ConfigPath)
	if err := cfg.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		level := settings.Level()
		if opts.LogLevel != "" {
			level = config.ParseLevel(opts.LogLevel)
		}
		logger = logging.Setup(level)
	}

	uiInstance := opts.UI
	if uiInstance == nil {
		uiInstance = ui.New()
	}
	uiInstance.SetNonInteractive(opts.NonInteractive)

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	roots := storage.ResolveRoots(fs, settings.InternalDir, settings.ExternalDir)
	if settings.ExternalDir != "" && roots.External == "" {
		logger.Debug("external storage unavailable, using internal root", "external", settings.ExternalDir)
	}

	var requester permission.Requester = permission.NewPromptRequester(uiInstance)
	if opts.AssumeYes {
		requester = &permission.StaticRequester{Answer: true}
	}

	return &AppContext{
		Config:      cfg,
		Settings:    settings,
		UI:          uiInstance,
		Logger:      logger,
		Store:       storage.New(fs, roots, logger),
		Permissions: permission.NewManager(permission.NewGrantStore(fs, settings.GrantsDir), requester, logger),
	}, nil
}

// NewController creates a screen controller bound to this context
func (a *AppContext) NewController() *screen.Controller {
	return screen.NewController(screen.Options{
		Store:         a.Store,
		Permissions:   a.Permissions,
		Logger:        a.Logger,
		ToastDuration: a.Settings.ToastDuration,
	})
}

// NewScreen creates the interactive screen
func (a *AppContext) NewScreen() *screen.Screen {
	return screen.New(a.NewController(), a.UI, a.UI)
}
