package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/renderwave/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// Without --project it writes the global file; with --project it writes
// ./.renderwave/config.yaml, which overlays the global file per section.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

The global file lives at ~/.renderwave/config.yaml (or $RENDERWAVE_CONFIG, or
--config). Use --project to create ./.renderwave/config.yaml instead; its
top-level sections replace the matching global sections. A .gitignore is added
next to the project file.`,
		Example: `  # Create global configuration
  renderwave config init

  # Create project-local configuration
  renderwave config init --project

  # Create configuration, overwriting existing
  renderwave config init --force`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configFromContext(cmd.Context()).ConfigPath()
			if project {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving working directory: %w", err)
				}
				path = config.ProjectPath(wd)
			}
			if err := initConfig(cmd, path, force); err != nil {
				return err
			}
			if project {
				return initProjectGitignore(cmd, filepath.Dir(path))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create project-local configuration in the working directory")

	return cmd
}

// initConfig writes the default configuration to path.
func initConfig(cmd *cobra.Command, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	cfg := config.Default()
	cfg.SetConfigPath(path)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Info().Ctx(cmd.Context()).Str("path", path).Msg("configuration initialized")
	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)

	return nil
}

// initProjectGitignore adds a .gitignore to a project config directory.
func initProjectGitignore(cmd *cobra.Command, dir string) error {
	created, err := config.EnsureGitignore(dir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}
	if created {
		cmd.Printf("Created .gitignore to keep local logs out of version control\n")
	}
	return nil
}
