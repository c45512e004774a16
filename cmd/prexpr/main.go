package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ludo-technologies/prexpr/internal/version"
	"github.com/ludo-technologies/prexpr/service"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the prexpr command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prexpr",
		Short: "Parse, simplify and evaluate prefix expressions",
		Long: `prexpr works with integer arithmetic written in prefix notation,
such as "+ 2 * x 3". Expressions are parsed into binary trees which can be
printed in prefix or infix form, simplified, and evaluated once every
variable has a value.

Operators are +, - and *, operands are integers or variable names, and
tokens are separated by single spaces.`,
		Version:       version.Short(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewEvalCmd())
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// reportError prints err with its category and recovery suggestions
func reportError(w io.Writer, err error, verbose bool) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)

	fmt.Fprintf(w, "Error: %v\n", err)
	if !verbose {
		return
	}
	fmt.Fprintf(w, "\n%s: %s\n", categorized.Category, categorized.Message)
	for _, suggestion := range categorizer.GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(w, "  - %s\n", suggestion)
	}
}

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		reportError(os.Stderr, err, verbose)
		os.Exit(exitCode(err))
	}
}
