package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/renderwave/internal/config"
)

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())

	return cmd
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after files and environment are applied.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Example: `  # Show configuration as YAML
  renderwave config show

  # Show configuration as JSON
  renderwave config show --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())

			if cmd.Flags().Changed("output") {
				format, err := outputFormat(cmd, cfg)
				if err != nil {
					return err
				}
				if format != config.FormatTable {
					return renderJSONFormat(cmd, format, cfg)
				}
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			cmd.Printf("# %s\n%s", cfg.ConfigPath(), data)
			return nil
		},
	}
}

// renderJSONFormat writes value as indented JSON or a single NDJSON line.
func renderJSONFormat(cmd *cobra.Command, format string, value any) error {
	if format == config.FormatNDJSON {
		return renderNDJSON(cmd.OutOrStdout(), []any{value})
	}
	return renderJSON(cmd.OutOrStdout(), value)
}
