// Package commands builds the xsheet command line.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bethropolis/xsheet/internal/app"
	"github.com/bethropolis/xsheet/internal/config"
	"github.com/bethropolis/xsheet/internal/logger"
)

// options are shared by every subcommand.
type options struct {
	flags config.Flags
	cfg   *config.Config
}

// New creates the root command. Without a subcommand it opens the sheet
// editor on the given file.
func New() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "xsheet [FILE]",
		Short: "Exposure sheet editor for frame-by-frame animation.",
		Example: `
xsheet walk.xsheet.yaml
xsheet --frames 48 --fps 12 new.xsheet.yaml
`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var filePath string
			if len(args) > 0 {
				filePath = args[0]
			}
			return o.runEditor(filePath)
		},
	}
	o.flags.DefineFlags(cmd.PersistentFlags())

	addCommands(cmd, o)
	return cmd
}

func addCommands(topLevel *cobra.Command, o *options) {
	addInspect(topLevel, o)
	addExport(topLevel, o)
	addSnapshots(topLevel, o)
}

// setup loads configuration and starts logging.
func (o *options) setup() error {
	cfg, err := config.Load(o.flags.ConfigFilePath, &o.flags)
	if err != nil {
		// Defaults are still usable; report once logging runs.
		defer logger.Warnf("Config: %v", err)
	}
	if cfg == nil {
		return fmt.Errorf("no configuration: %w", err)
	}
	o.cfg = cfg

	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg.LogUndecoded()
	logger.Debugf("Log level set to: %s", cfg.Logger.LogLevel)
	return nil
}

func (o *options) runEditor(filePath string) error {
	logger.Infof("Starting xsheet...")
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	}

	sheetApp, err := app.NewApp(app.Options{FilePath: filePath, Config: o.cfg})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		return err
	}
	if err := sheetApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return err
	}
	logger.Infof("xsheet finished.")
	return nil
}
