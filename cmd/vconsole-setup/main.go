package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/vconsole-setup/internal/application"
	"github.com/eugenenazirov/vconsole-setup/internal/cascade"
	"github.com/eugenenazirov/vconsole-setup/internal/config"
	"github.com/eugenenazirov/vconsole-setup/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run parses args, performs the setup and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	kingpinApp := kingpin.New("vconsole-setup", "Applies the virtual console keymap and font at boot")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	variant := kingpinApp.Flag("variant", "Distribution whose legacy configuration files are consulted").Enum(cascade.VariantNames()...)
	root := kingpinApp.Flag("root", "Directory all configuration files are resolved below").String()
	loadKeys := kingpinApp.Flag("loadkeys", "Path to the keymap helper").String()
	setFont := kingpinApp.Flag("setfont", "Path to the font helper").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warning, err)").String()
	device := kingpinApp.Arg("device", "Virtual console device").String()

	kingpinApp.ErrorWriter(stderr)
	if _, err := kingpinApp.Parse(args); err != nil {
		fmt.Fprintf(stderr, "vconsole-setup: %v\n", err)
		return 1
	}

	overrides := &config.CLIOverrides{
		ConfigFile:   *configFile,
		Device:       device,
		Variant:      variant,
		Root:         root,
		LoadKeysPath: loadKeys,
		SetFontPath:  setFont,
		LogLevel:     logLevel,
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "vconsole-setup: failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := logging.New(logging.Options{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
		Outputs:  cfg.LogOutputs,
	})
	if err != nil {
		fmt.Fprintf(stderr, "vconsole-setup: failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return 1
	}

	if err := app.Run(); err != nil {
		return 1
	}
	return 0
}
