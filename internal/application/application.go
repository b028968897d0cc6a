package application

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/eugenenazirov/vconsole-setup/internal/cascade"
	"github.com/eugenenazirov/vconsole-setup/internal/config"
	"github.com/eugenenazirov/vconsole-setup/internal/console"
	"github.com/eugenenazirov/vconsole-setup/internal/loader"
	"github.com/eugenenazirov/vconsole-setup/internal/locale"
)

const (
	keymapHelper = "loadkeys"
	fontHelper   = "setfont"
)

// Console is the part of a virtual console device the run needs.
type Console interface {
	Validate() error
	DisableUTF8(togglePath string) error
	Close() error
}

// ConsoleOpener opens the device at path.
type ConsoleOpener func(path string) (Console, error)

// Option configures App behaviour.
type Option func(*App)

// WithConsoleOpener overrides how the device is opened, primarily for tests.
func WithConsoleOpener(open ConsoleOpener) Option {
	return func(a *App) {
		a.openConsole = open
	}
}

// WithLauncher overrides how helpers are started, primarily for tests.
func WithLauncher(launcher loader.Launcher) Option {
	return func(a *App) {
		a.launcher = launcher
	}
}

// WithEnv overrides the environment used for locale detection.
func WithEnv(lookup locale.LookupFunc) Option {
	return func(a *App) {
		a.lookupEnv = lookup
	}
}

// App encapsulates the configuration and collaborators of a run.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	variant cascade.Variant

	openConsole ConsoleOpener
	launcher    loader.Launcher
	lookupEnv   locale.LookupFunc
}

// New initializes the application from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	variant, err := cascade.LookupVariant(cfg.Variant)
	if err != nil {
		return nil, fmt.Errorf("failed to select configuration variant: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		cfg:         cfg,
		logger:      logger,
		variant:     variant,
		openConsole: openDevice,
		launcher:    loader.ExecLauncher{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Run executes the whole setup. Errors before the device is validated abort
// immediately; configuration problems are only logged; helper failures make
// Run fail once both helpers have been awaited.
func (a *App) Run() error {
	device := a.cfg.Device

	con, err := a.openConsole(device)
	if err != nil {
		a.logger.Error("failed to open console", zap.String("device", device), zap.Error(err))
		return err
	}
	defer func() {
		if cerr := con.Close(); cerr != nil {
			a.logger.Debug("failed to close console", zap.String("device", device), zap.Error(cerr))
		}
	}()

	if err := con.Validate(); err != nil {
		a.logger.Error("device is not a virtual console", zap.String("device", device), zap.Error(err))
		return err
	}

	utf8 := locale.IsUTF8(a.lookupEnv)
	settings := a.resolve()
	utf8 = cascade.ApplyUnicodePreference(settings, utf8, a.logger)
	settings = settings.WithDefaults(a.cfg.DefaultKeymap, a.cfg.DefaultFont)

	a.logger.Info("console configuration resolved",
		zap.String("device", device),
		zap.String("keymap", settings.Keymap),
		zap.String("keymap_toggle", settings.KeymapToggle),
		zap.String("font", settings.Font),
		zap.String("font_map", settings.FontMap),
		zap.String("font_unimap", settings.FontUnimap),
		zap.Bool("utf8", utf8),
	)

	if !utf8 {
		if err := con.DisableUTF8(a.cfg.RootedPath(a.cfg.UTF8TogglePath)); err != nil {
			a.logger.Warn("failed to disable UTF-8", zap.Error(err))
		}
	}

	return a.applySettings(settings, utf8)
}

func (a *App) resolve() cascade.Settings {
	stages := cascade.Stages(a.variant, cascade.Paths{
		Cmdline: a.cfg.CmdlinePath,
		Config:  a.cfg.ConfigPath,
	})
	return cascade.NewResolver(stages, a.logger, cascade.WithRoot(a.cfg.Root)).Resolve()
}

// applySettings starts both helpers and waits for whatever was started.
// A start failure skips the remaining helper.
func (a *App) applySettings(s cascade.Settings, utf8 bool) error {
	group := loader.NewGroup(a.launcher, a.logger)
	device := a.cfg.Device

	startErr := group.Start(keymapHelper, loader.KeymapArgs(a.cfg.LoadKeysPath, device, s.Keymap, s.KeymapToggle, utf8))
	if startErr == nil {
		startErr = group.Start(fontHelper, loader.FontArgs(a.cfg.SetFontPath, device, s.Font, s.FontMap, s.FontUnimap))
	}

	return multierr.Combine(startErr, group.WaitAll())
}

func openDevice(path string) (Console, error) {
	c, err := console.Open(path)
	if err != nil {
		return nil, err
	}
	return c, nil
}
