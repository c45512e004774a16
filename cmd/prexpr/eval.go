package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// EvalCommand processes expressions and writes a report
type EvalCommand struct {
	flags processingFlags
}

// NewEvalCommand creates a new eval command
func NewEvalCommand() *EvalCommand {
	return &EvalCommand{}
}

// CreateCobraCommand creates the cobra command for expression processing
func (e *EvalCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [expression|file|dir ...]",
		Short: "Parse, simplify and evaluate prefix expressions",
		Long: `Process prefix expressions given as arguments or read from files.

Arguments that name an existing file or directory are read one expression
per line; blank lines and lines starting with # are skipped. Every other
argument is an expression. Expressions starting with "-" must be passed
with -e or after "--".

Each expression is parsed, printed in prefix and infix notation, has its
variables bound from --set and the configuration, is simplified, and is
evaluated when no free variables remain.

Simplification modes:
  none   leave the expression as written
  basic  fold operators whose operands are both integers
  fancy  basic folding plus identities such as "* 1 x" -> x and "- x x" -> 0

Examples:
  # Simplify one expression
  prexpr eval "+ 2 * 3 4"

  # Subtraction needs -e so it is not read as a flag
  prexpr eval -e "- 10 4"

  # Bind a variable and evaluate
  prexpr eval --set x=5 "* x + 1 2"

  # Process every .prefix file under a directory as JSON
  prexpr eval --json exprs/

  # Write a CSV report
  prexpr eval --csv -o report.csv exprs/`,
		Args: cobra.ArbitraryArgs,
		RunE: e.runEval,
	}

	e.flags.register(cmd, true)

	return cmd
}

// runEval executes the eval command
func (e *EvalCommand) runEval(cmd *cobra.Command, args []string) error {
	req, err := e.flags.buildRequest(cmd, args)
	if err != nil {
		return err
	}

	useCase, err := buildUseCase(cmd, req)
	if err != nil {
		return fmt.Errorf("failed to create use case: %w", err)
	}

	start := time.Now()
	response, err := useCase.Execute(cmd.Context(), *req)
	if err != nil {
		return err
	}

	verbosef(cmd, "Processed %d expression(s) from %d file(s) in %s\n",
		response.Summary.Total, response.Summary.FilesProcessed, time.Since(start).Round(time.Millisecond))

	return nil
}

// NewEvalCmd creates and returns the eval cobra command
func NewEvalCmd() *cobra.Command {
	return NewEvalCommand().CreateCobraCommand()
}
