package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ludo-technologies/prexpr/app"
	"github.com/ludo-technologies/prexpr/domain"
	"github.com/ludo-technologies/prexpr/internal/config"
	"github.com/ludo-technologies/prexpr/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// GetExplicitFlags extracts which flags were explicitly set from a cobra command
func GetExplicitFlags(cmd *cobra.Command) map[string]bool {
	explicitFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			explicitFlags[f.Name] = true
		})
	}
	return explicitFlags
}

// processingFlags are shared by every command that runs expressions
type processingFlags struct {
	expressions []string
	configFile  string

	format     string
	json       bool
	yaml       bool
	csv        bool
	outputPath string
	notation   string
	stats      bool

	simplify string
	strict   bool
	bindings map[string]int

	recursive bool
	include   []string
	exclude   []string

	workers int
	timeout int
}

func (f *processingFlags) register(cmd *cobra.Command, withOutput bool) {
	defaults := domain.DefaultExpressionRequest()
	flags := cmd.Flags()

	flags.StringArrayVarP(&f.expressions, "expr", "e", nil, "Expression to process (repeatable)")
	flags.StringVarP(&f.configFile, "config", "c", "", "Configuration file path")
	flags.StringVar(&f.simplify, service.FlagSimplify, string(defaults.SimplifyMode), "Simplification mode: none, basic, fancy")
	flags.BoolVar(&f.strict, service.FlagStrict, defaults.Strict, "Reject tokens left over after a complete expression")
	flags.StringToIntVar(&f.bindings, service.FlagSet, nil, "Bind variables before simplifying, e.g. --set x=3,y=-1")
	flags.BoolVarP(&f.recursive, service.FlagRecursive, "r", defaults.Recursive, "Walk directories recursively")
	flags.StringSliceVar(&f.include, service.FlagInclude, nil, "File patterns to include")
	flags.StringSliceVar(&f.exclude, service.FlagExclude, nil, "File patterns to exclude")
	flags.IntVar(&f.workers, service.FlagWorkers, defaults.MaxWorkers, "Maximum number of concurrent workers")
	flags.IntVar(&f.timeout, service.FlagTimeout, defaults.TimeoutSeconds, "Timeout in seconds for the whole run (0 disables)")

	if !withOutput {
		return
	}
	flags.StringVar(&f.format, service.FlagFormat, string(defaults.OutputFormat), "Output format: text, json, yaml, csv")
	flags.BoolVar(&f.json, service.FlagJSON, false, "Shorthand for --format json")
	flags.BoolVar(&f.yaml, service.FlagYAML, false, "Shorthand for --format yaml")
	flags.BoolVar(&f.csv, service.FlagCSV, false, "Shorthand for --format csv")
	flags.StringVarP(&f.outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	flags.StringVar(&f.notation, service.FlagNotation, string(defaults.Notation), "Notation to report: prefix, infix, both")
	flags.BoolVar(&f.stats, service.FlagStats, false, "Report tree size metrics")
}

// buildRequest turns flags and arguments into a request. Arguments naming
// an existing file or directory are read as input files; every other
// argument is an expression.
func (f *processingFlags) buildRequest(cmd *cobra.Command, args []string) (*domain.ExpressionRequest, error) {
	req := &domain.ExpressionRequest{
		Expressions:     append([]string(nil), f.expressions...),
		OutputWriter:    cmd.OutOrStdout(),
		OutputPath:      f.outputPath,
		Notation:        domain.Notation(f.notation),
		ShowStats:       f.stats,
		SimplifyMode:    domain.SimplifyMode(f.simplify),
		Strict:          f.strict,
		Bindings:        f.bindings,
		ConfigPath:      f.configFile,
		Recursive:       f.recursive,
		IncludePatterns: f.include,
		ExcludePatterns: f.exclude,
		MaxWorkers:      f.workers,
		TimeoutSeconds:  f.timeout,
	}

	for _, arg := range args {
		if _, err := os.Stat(arg); err == nil {
			req.Paths = append(req.Paths, arg)
		} else {
			req.Expressions = append(req.Expressions, arg)
		}
	}

	for name := range f.bindings {
		if err := config.ValidateVariableName(name); err != nil {
			return nil, domain.NewInvalidInputError("invalid --set binding", err)
		}
	}

	format, err := f.resolveFormat()
	if err != nil {
		return nil, err
	}
	req.OutputFormat = format

	return req, nil
}

func (f *processingFlags) resolveFormat() (domain.OutputFormat, error) {
	resolver := service.NewOutputFormatResolver()
	format, _, ok, err := resolver.Determine(f.json, f.yaml, f.csv)
	if err != nil {
		return "", domain.NewInvalidInputError(err.Error(), nil)
	}
	if ok {
		return format, nil
	}
	if f.format == "" {
		return domain.OutputFormatText, nil
	}
	return resolver.Parse(strings.ToLower(f.format))
}

// buildUseCase wires the services for one command run
func buildUseCase(cmd *cobra.Command, req *domain.ExpressionRequest) (*app.ExpressionUseCase, error) {
	progress := service.NewProgressManager()
	progress.SetWriter(cmd.ErrOrStderr())

	color := req.OutputPath == "" && service.IsTerminalWriter(req.OutputWriter)

	return app.NewExpressionUseCaseBuilder().
		WithService(service.NewExpressionService().WithProgress(progress)).
		WithFileReader(service.NewFileReader()).
		WithFormatter(service.NewOutputFormatter().WithColor(color)).
		WithConfigLoader(service.NewExpressionConfigLoader(GetExplicitFlags(cmd))).
		WithProgress(progress).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

func verbosef(cmd *cobra.Command, format string, args ...interface{}) {
	if isVerbose(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
	}
}

// errCheckFailed marks a check run that found invalid expressions
var errCheckFailed = errors.New("check failed")

// exitCode is 1 when a check found problems and 2 when the run itself failed
func exitCode(err error) int {
	if errors.Is(err, errCheckFailed) {
		return 1
	}
	return 2
}
