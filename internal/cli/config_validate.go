package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the config file, the project overlay and
RENDERWAVE_* environment overrides.

This includes:
- Positive item height, container height and batch size
- Non-negative overscan and reveal interval
- A known default output format`,
		Example: `  # Validate current configuration
  renderwave config validate

  # Validate and show detailed information
  renderwave config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := configFromContext(cmd.Context())

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		l := cfg.List
		cmd.Printf("\nConfiguration file: %s\n", cfg.ConfigPath())
		cmd.Printf("List: item height %dpx, container %dpx, batch %d, interval %dms, overscan %d\n",
			l.ItemHeight, l.ContainerHeight, l.BatchSize, l.IntervalMS, l.Overscan)
		cmd.Printf("Snap to batch: %t, keyboard navigation: %t\n", l.SnapToBatch, l.KeyboardNavigation)
		cmd.Printf("Output format: %s\n", cfg.Output.DefaultFormat)
		cmd.Printf("Logging: level %s, format %s\n", cfg.Logging.Level, cfg.Logging.Format)
	}

	return nil
}
