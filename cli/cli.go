package cli

import (
	"context"
	"fmt"
	"os"

	"chartd/config"
	"chartd/core/utils"
	"github.com/spf13/cobra"
)

var version = "dev"

type globalOpts struct {
	configPath string
	verbose    bool
}

// Execute runs the chartd command tree.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func NewRootCommand() *cobra.Command {
	opts := &globalOpts{}
	root := &cobra.Command{
		Use:          "chartd",
		Short:        "chartd renders bar, well and radar charts to PNG",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file (default $APP_CONFIG or config/app.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newRenderCmd(opts))
	return root
}

func (o *globalOpts) loadConfig() (*config.AppConfig, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if o.configPath != "" {
		if _, statErr := os.Stat(o.configPath); statErr != nil {
			return nil, fmt.Errorf("config file: %w", statErr)
		}
		cfg, err = config.LoadFrom(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	return cfg, nil
}

func (o *globalOpts) logger(cfg *config.AppConfig, format string) *utils.Logger {
	level := cfg.Log.Level
	if o.verbose {
		level = "debug"
	}
	if format == "" {
		format = cfg.Log.Format
	}
	return utils.NewLoggerWithOptions(utils.LogOptions{Level: level, Format: format, Output: os.Stderr})
}
