package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/renderwave/internal/config"
	"github.com/rshade/renderwave/internal/logging"
)

// annotationConfigOptional marks commands that still run when the config
// file cannot be loaded, so a broken file can be replaced.
const annotationConfigOptional = "renderwave/config-optional"

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

type configKey struct{}

// configFromContext returns the configuration loaded for the running command,
// or the defaults when none was loaded.
func configFromContext(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
			return cfg
		}
	}
	return config.Default()
}

// NewRootCmd creates the root Cobra command for the renderwave CLI.
// It loads configuration, wires up logging and tracing, and registers the
// list arithmetic, replay, browse and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:          "renderwave",
		Short:        "Virtual list arithmetic for progressively rendered lists",
		Long:         "renderwave: Visible-window, batch-snap, grouping and keyboard-scroll helpers for virtualized lists",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				if _, err = outputFormat(cmd, cfg); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default ~/.renderwave/config.yaml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json or ndjson (default from config)")

	cmd.AddCommand(
		NewVisibleCmd(),
		NewSnapCmd(),
		NewGroupCmd(),
		NewScrollCmd(),
		NewWindowCmd(),
		NewReplayCmd(),
		NewBrowseCmd(),
		newConfigCmd(),
	)

	return cmd
}

// loadConfig resolves configuration for cmd. Commands annotated as
// config-optional fall back to defaults when the file is unreadable.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.New(path)
	if err == nil {
		return cfg, nil
	}
	if _, ok := cmd.Annotations[annotationConfigOptional]; ok {
		cmd.PrintErrf("Warning: %v\n", err)
		cfg = config.Default()
		if path != "" {
			cfg.SetConfigPath(path)
		}
		return cfg, nil
	}
	return nil, fmt.Errorf("loading configuration: %w", err)
}

const rootCmdExample = `  # Which revealed rows fall inside the window [10, 20)
  renderwave visible --start 10 --end 20 --revealed 5,10,15,25

  # Snap a scroll offset to the nearest batch boundary
  renderwave snap --scroll-top 1234 --item-height 45 --batch-size 20

  # First index of each label
  renderwave group fruit veg fruit dairy

  # Resolve a key press to a scroll offset
  renderwave scroll PageDown --current 100 --container 400 --max 4100

  # Compute the rendered window for a viewport
  renderwave window --scroll-top 900 --count 1000 --overscan 5

  # Replay a captured call log
  renderwave replay calls.yaml --output ndjson

  # Browse a file as a progressively revealed list
  renderwave browse items.txt

  # Initialize configuration
  renderwave config init`
