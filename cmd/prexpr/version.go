package main

import (
	"fmt"

	"github.com/ludo-technologies/prexpr/internal/version"
	"github.com/ludo-technologies/prexpr/service"
	"github.com/spf13/cobra"
)

// VersionCommand represents the version command
type VersionCommand struct {
	short bool
	json  bool
}

// NewVersionCommand creates a new version command
func NewVersionCommand() *VersionCommand {
	return &VersionCommand{}
}

// CreateCobraCommand creates the cobra command for version display
func (v *VersionCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display version information for prexpr.

Examples:
  # Show full version information
  prexpr version

  # Show only version number (useful for scripts)
  prexpr version --short`,
		Args: cobra.NoArgs,
		RunE: v.runVersion,
	}

	cmd.Flags().BoolVarP(&v.short, "short", "s", false, "Show only version number")
	cmd.Flags().BoolVar(&v.json, "json", false, "Show version information as JSON")

	return cmd
}

// runVersion executes the version command
func (v *VersionCommand) runVersion(cmd *cobra.Command, args []string) error {
	switch {
	case v.short:
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version.Short())
	case v.json:
		return service.WriteJSON(cmd.OutOrStdout(), version.Get())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version.Info())
	}
	return nil
}

// NewVersionCmd creates and returns the version cobra command
func NewVersionCmd() *cobra.Command {
	return NewVersionCommand().CreateCobraCommand()
}
