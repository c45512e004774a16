package main

import (
	"fmt"
	"io"

	"github.com/ludo-technologies/prexpr/app"
	"github.com/spf13/cobra"
)

// CheckCommand validates expressions for CI pipelines
type CheckCommand struct {
	flags processingFlags
	quiet bool
}

// NewCheckCommand creates a new check command
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{}
}

// CreateCobraCommand creates the cobra command for checking expressions
func (c *CheckCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [expression|file|dir ...]",
		Short: "Check that expressions are well formed",
		Long: `Check expressions given as arguments or read from files and report the
ones that cannot be processed.

Exit codes:
  0  every expression is well formed
  1  at least one expression is malformed
  2  the check itself failed (missing files, bad configuration, ...)

Examples:
  # Check every expression file under the current directory
  prexpr check .

  # Only report problems
  prexpr check --quiet exprs/`,
		Args: cobra.ArbitraryArgs,
		RunE: c.runCheck,
	}

	c.flags.register(cmd, false)
	cmd.Flags().BoolVarP(&c.quiet, "quiet", "q", false, "Suppress output unless issues are found")

	return cmd
}

// runCheck executes the check command
func (c *CheckCommand) runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(c.flags.expressions) == 0 {
		args = []string{"."}
	}

	req, err := c.flags.buildRequest(cmd, args)
	if err != nil {
		return err
	}
	req.OutputWriter = io.Discard

	useCase, err := buildUseCase(cmd, req)
	if err != nil {
		return fmt.Errorf("failed to create use case: %w", err)
	}

	result, err := app.NewCheckUseCase(useCase).Execute(cmd.Context(), *req)
	if err != nil {
		return err
	}

	out := cmd.ErrOrStderr()
	if !c.quiet {
		for _, warning := range result.Response.Warnings {
			fmt.Fprintf(out, "warning: %s\n", warning)
		}
	}

	if !result.Passed() {
		for _, r := range result.Invalid {
			fmt.Fprintf(out, "%s: %s\n", r.Label, r.Error)
		}
		return fmt.Errorf("%w: %d of %d expression(s) invalid", errCheckFailed, len(result.Invalid), result.Response.Summary.Total)
	}

	if !c.quiet {
		fmt.Fprintf(out, "All %d expression(s) are well formed\n", result.Response.Summary.Total)
	}
	return nil
}

// NewCheckCmd creates and returns the check cobra command
func NewCheckCmd() *cobra.Command {
	return NewCheckCommand().CreateCobraCommand()
}
