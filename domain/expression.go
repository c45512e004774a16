package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// SimplifyMode selects how much rewriting is applied to each expression
type SimplifyMode string

const (
	SimplifyNone  SimplifyMode = "none"
	SimplifyBasic SimplifyMode = "basic"
	SimplifyFancy SimplifyMode = "fancy"
)

// Notation selects which renderings of an expression are reported
type Notation string

const (
	NotationPrefix Notation = "prefix"
	NotationInfix  Notation = "infix"
	NotationBoth   Notation = "both"
)

// ValidOutputFormats lists every accepted output format
var ValidOutputFormats = []OutputFormat{OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatCSV}

// ValidSimplifyModes lists every accepted simplification mode
var ValidSimplifyModes = []SimplifyMode{SimplifyNone, SimplifyBasic, SimplifyFancy}

// ValidNotations lists every accepted notation
var ValidNotations = []Notation{NotationPrefix, NotationInfix, NotationBoth}

// IsValid reports whether f is a known output format
func (f OutputFormat) IsValid() bool {
	for _, v := range ValidOutputFormats {
		if f == v {
			return true
		}
	}
	return false
}

// IsValid reports whether m is a known simplification mode
func (m SimplifyMode) IsValid() bool {
	for _, v := range ValidSimplifyModes {
		if m == v {
			return true
		}
	}
	return false
}

// IsValid reports whether n is a known notation
func (n Notation) IsValid() bool {
	for _, v := range ValidNotations {
		if n == v {
			return true
		}
	}
	return false
}

// ShowsPrefix reports whether prefix renderings are part of the output
func (n Notation) ShowsPrefix() bool {
	return n == NotationPrefix || n == NotationBoth
}

// ShowsInfix reports whether infix renderings are part of the output
func (n Notation) ShowsInfix() bool {
	return n == NotationInfix || n == NotationBoth
}

// ExpressionSource is one expression together with where it came from
type ExpressionSource struct {
	// Label identifies the expression in reports, e.g. "exprs.prefix:3" or "arg:1"
	Label string

	// Text is the raw prefix expression
	Text string
}

// ExpressionRequest represents a request to process prefix expressions
type ExpressionRequest struct {
	// Inline expressions given on the command line
	Expressions []string

	// Input files or directories holding one expression per line
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	Notation     Notation
	ShowStats    bool

	// Processing options
	SimplifyMode SimplifyMode
	Strict       bool
	Bindings     map[string]int

	// Configuration
	ConfigPath string

	// File discovery options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Execution limits
	MaxWorkers     int
	TimeoutSeconds int
}

// ExpressionStats holds size metrics for a single expression tree
type ExpressionStats struct {
	Nodes     int `json:"nodes" yaml:"nodes"`
	Height    int `json:"height" yaml:"height"`
	Operators int `json:"operators" yaml:"operators"`
	Constants int `json:"constants" yaml:"constants"`
	Variables int `json:"variables" yaml:"variables"`
}

// ExpressionResult is the outcome of processing one expression
type ExpressionResult struct {
	Label  string `json:"label" yaml:"label"`
	Source string `json:"source" yaml:"source"`

	// Valid reports whether the source parsed into a well-formed tree
	Valid bool `json:"valid" yaml:"valid"`

	// Renderings of the expression as parsed
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Infix  string `json:"infix,omitempty" yaml:"infix,omitempty"`

	// Renderings after substitution and simplification
	SimplifiedPrefix string `json:"simplified_prefix,omitempty" yaml:"simplified_prefix,omitempty"`
	SimplifiedInfix  string `json:"simplified_infix,omitempty" yaml:"simplified_infix,omitempty"`
	Changed          bool   `json:"changed" yaml:"changed"`

	// Value is set when the processed expression holds no variables
	Value *int `json:"value,omitempty" yaml:"value,omitempty"`

	// Variables still free after substitution
	FreeVariables []string `json:"free_variables,omitempty" yaml:"free_variables,omitempty"`

	Stats *ExpressionStats `json:"stats,omitempty" yaml:"stats,omitempty"`

	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty" yaml:"error_code,omitempty"`
}

// ExpressionSummary represents aggregate counts over all results.
// Valid and Invalid split on parsing; Failed counts valid expressions
// whose later stages reported an error.
type ExpressionSummary struct {
	Total          int `json:"total" yaml:"total"`
	Valid          int `json:"valid" yaml:"valid"`
	Invalid        int `json:"invalid" yaml:"invalid"`
	Failed         int `json:"failed" yaml:"failed"`
	Changed        int `json:"changed" yaml:"changed"`
	Evaluated      int `json:"evaluated" yaml:"evaluated"`
	FilesProcessed int `json:"files_processed" yaml:"files_processed"`
}

// ExpressionResponse represents the complete processing result
type ExpressionResponse struct {
	Results []ExpressionResult `json:"results" yaml:"results"`
	Summary ExpressionSummary  `json:"summary" yaml:"summary"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string      `json:"generated_at" yaml:"generated_at"`
	Version     string      `json:"version" yaml:"version"`
	Config      interface{} `json:"config,omitempty" yaml:"config,omitempty"`
}

// ExpressionService defines the core processing pipeline
type ExpressionService interface {
	// Process runs every source through the pipeline configured by req
	Process(ctx context.Context, req ExpressionRequest, sources []ExpressionSource) (*ExpressionResponse, error)

	// ProcessOne runs a single source through the pipeline
	ProcessOne(req ExpressionRequest, source ExpressionSource) ExpressionResult
}

// ExpressionFileReader defines the interface for finding and reading expression files
type ExpressionFileReader interface {
	// CollectExpressionFiles finds all expression files in the given paths
	CollectExpressionFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadExpressions reads one expression per non-blank, non-comment line
	ReadExpressions(path string) ([]ExpressionSource, error)

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}

// ExpressionFormatter defines the interface for formatting results
type ExpressionFormatter interface {
	// Format formats the response according to the specified format
	Format(response *ExpressionResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *ExpressionResponse, format OutputFormat, writer io.Writer) error
}

// ExpressionConfigLoader defines the interface for loading configuration
type ExpressionConfigLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*ExpressionRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *ExpressionRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *ExpressionRequest, override *ExpressionRequest) *ExpressionRequest
}

// DefaultExpressionRequest returns a request with default settings
func DefaultExpressionRequest() *ExpressionRequest {
	return &ExpressionRequest{
		OutputFormat:    OutputFormatText,
		Notation:        NotationBoth,
		SimplifyMode:    SimplifyFancy,
		Strict:          true,
		Bindings:        map[string]int{},
		Recursive:       true,
		IncludePatterns: DefaultIncludePatterns(),
		ExcludePatterns: []string{},
		MaxWorkers:      DefaultMaxWorkers,
		TimeoutSeconds:  DefaultTimeoutSeconds,
	}
}
