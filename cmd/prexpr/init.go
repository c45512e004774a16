package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/prexpr/internal/config"
	"github.com/spf13/cobra"
)

// InitCommand represents the init command
type InitCommand struct {
	force      bool
	yaml       bool
	configPath string
}

// NewInitCommand creates a new init command
func NewInitCommand() *InitCommand {
	return &InitCommand{}
}

// CreateCobraCommand creates the cobra command for configuration initialization
func (i *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize prexpr configuration file",
		Long: `Create a prexpr configuration file in the current directory.

By default a commented .prexpr.toml is written. With --yaml the defaults are
written to .prexpr.yaml instead.

Examples:
  # Create .prexpr.toml
  prexpr init

  # Create .prexpr.yaml
  prexpr init --yaml

  # Overwrite an existing file
  prexpr init --force`,
		Args: cobra.NoArgs,
		RunE: i.runInit,
	}

	cmd.Flags().BoolVarP(&i.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&i.yaml, "yaml", false, "Write YAML instead of TOML")
	cmd.Flags().StringVarP(&i.configPath, "config", "c", "", "Configuration file path")

	return cmd
}

// runInit executes the init command
func (i *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	target := i.configPath
	if target == "" {
		target = config.TomlConfigFileName
		if i.yaml {
			target = ".prexpr.yaml"
		}
	}

	configPath, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil && !i.force {
		return fmt.Errorf("configuration file already exists: %s\nUse --force to overwrite", configPath)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", configDir, err)
	}

	if i.yaml {
		if err := config.SaveConfig(config.DefaultConfig(), configPath); err != nil {
			return fmt.Errorf("failed to write configuration file: %w", err)
		}
	} else {
		configData, err := config.GenerateDefaultConfigTOML()
		if err != nil {
			return err
		}
		if err := os.WriteFile(configPath, []byte(configData), 0644); err != nil {
			return fmt.Errorf("failed to write configuration file: %w", err)
		}
	}

	relPath, err := filepath.Rel(".", configPath)
	if err != nil {
		relPath = configPath
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", relPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Edit it to set default variables and simplification options.\n")

	return nil
}

// NewInitCmd creates and returns the init cobra command
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
