package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/prexpr/domain"
)

// ExpressionUseCase orchestrates the expression processing workflow
type ExpressionUseCase struct {
	service      domain.ExpressionService
	fileReader   domain.ExpressionFileReader
	formatter    domain.ExpressionFormatter
	configLoader domain.ExpressionConfigLoader
	progress     domain.ProgressManager
	output       domain.ReportWriter
}

// NewExpressionUseCase creates a new expression use case
func NewExpressionUseCase(
	service domain.ExpressionService,
	fileReader domain.ExpressionFileReader,
	formatter domain.ExpressionFormatter,
	configLoader domain.ExpressionConfigLoader,
	progress domain.ProgressManager,
	output domain.ReportWriter,
) *ExpressionUseCase {
	return &ExpressionUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
		progress:     progress,
		output:       output,
	}
}

// Execute runs the whole workflow and writes the report. The response is
// returned so callers can act on the outcome.
func (uc *ExpressionUseCase) Execute(ctx context.Context, req domain.ExpressionRequest) (*domain.ExpressionResponse, error) {
	response, finalReq, err := uc.run(ctx, req)
	if err != nil {
		return nil, err
	}

	writeFunc := func(w io.Writer) error {
		return uc.formatter.Write(response, finalReq.OutputFormat, w)
	}
	if err := uc.output.Write(finalReq.OutputWriter, finalReq.OutputPath, finalReq.OutputFormat, writeFunc); err != nil {
		return response, err
	}

	return response, nil
}

// Process runs the workflow without writing a report
func (uc *ExpressionUseCase) Process(ctx context.Context, req domain.ExpressionRequest) (*domain.ExpressionResponse, error) {
	response, _, err := uc.run(ctx, req)
	return response, err
}

func (uc *ExpressionUseCase) run(ctx context.Context, req domain.ExpressionRequest) (*domain.ExpressionResponse, domain.ExpressionRequest, error) {
	if err := uc.validateInputs(req); err != nil {
		return nil, req, domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, req, err
	}

	if err := uc.validateSettings(finalReq); err != nil {
		return nil, finalReq, domain.NewInvalidInputError("invalid request", err)
	}

	resolved, err := ResolveSources(ctx, uc.fileReader, finalReq)
	if err != nil {
		return nil, finalReq, err
	}
	if len(resolved.Sources) == 0 {
		return nil, finalReq, domain.NewInvalidInputError("no expressions found in the specified inputs", nil)
	}

	uc.progress.Initialize(len(resolved.Sources))
	uc.progress.Start()

	response, err := uc.service.Process(ctx, finalReq, resolved.Sources)
	uc.progress.Complete(err == nil)
	if err != nil {
		return nil, finalReq, err
	}

	response.Summary.FilesProcessed = resolved.FilesProcessed
	response.Warnings = append(resolved.Warnings, response.Warnings...)

	return response, finalReq, nil
}

// validateInputs checks what only the command can supply
func (uc *ExpressionUseCase) validateInputs(req domain.ExpressionRequest) error {
	if len(req.Expressions) == 0 && len(req.Paths) == 0 {
		return fmt.Errorf("no expressions or input paths specified")
	}

	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer is required")
	}

	return nil
}

// validateSettings checks the merged settings
func (uc *ExpressionUseCase) validateSettings(req domain.ExpressionRequest) error {
	if !req.OutputFormat.IsValid() {
		return fmt.Errorf("unsupported output format: %s", req.OutputFormat)
	}

	if !req.Notation.IsValid() {
		return fmt.Errorf("unsupported notation: %s", req.Notation)
	}

	if !req.SimplifyMode.IsValid() {
		return fmt.Errorf("unsupported simplify mode: %s", req.SimplifyMode)
	}

	if req.MaxWorkers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}

	if req.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	return nil
}

// loadAndMergeConfig loads configuration from file and merges with request
func (uc *ExpressionUseCase) loadAndMergeConfig(req domain.ExpressionRequest) (domain.ExpressionRequest, error) {
	configReq, err := uc.configLoader.LoadConfig(req.ConfigPath)
	if err != nil {
		if req.ConfigPath != "" {
			return req, domain.NewConfigError(fmt.Sprintf("failed to load config from %s", req.ConfigPath), err)
		}
		return req, err
	}
	if configReq == nil {
		configReq = uc.configLoader.LoadDefaultConfig()
	}
	if configReq == nil {
		return req, nil
	}

	// request values win where their flags were set
	merged := uc.configLoader.MergeConfig(configReq, &req)
	return *merged, nil
}

// ExpressionUseCaseBuilder provides a builder pattern for creating ExpressionUseCase
type ExpressionUseCaseBuilder struct {
	service      domain.ExpressionService
	fileReader   domain.ExpressionFileReader
	formatter    domain.ExpressionFormatter
	configLoader domain.ExpressionConfigLoader
	progress     domain.ProgressManager
	output       domain.ReportWriter
}

// NewExpressionUseCaseBuilder creates a new builder
func NewExpressionUseCaseBuilder() *ExpressionUseCaseBuilder {
	return &ExpressionUseCaseBuilder{}
}

// WithService sets the expression service
func (b *ExpressionUseCaseBuilder) WithService(service domain.ExpressionService) *ExpressionUseCaseBuilder {
	b.service = service
	return b
}

// WithFileReader sets the file reader
func (b *ExpressionUseCaseBuilder) WithFileReader(fileReader domain.ExpressionFileReader) *ExpressionUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

// WithFormatter sets the output formatter
func (b *ExpressionUseCaseBuilder) WithFormatter(formatter domain.ExpressionFormatter) *ExpressionUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *ExpressionUseCaseBuilder) WithConfigLoader(configLoader domain.ExpressionConfigLoader) *ExpressionUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithProgress sets the progress manager
func (b *ExpressionUseCaseBuilder) WithProgress(progress domain.ProgressManager) *ExpressionUseCaseBuilder {
	b.progress = progress
	return b
}

// WithOutputWriter sets the report writer
func (b *ExpressionUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *ExpressionUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the ExpressionUseCase. Optional dependencies that were not
// provided are replaced by no-op implementations.
func (b *ExpressionUseCaseBuilder) Build() (*ExpressionUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("expression service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	configLoader := b.configLoader
	if configLoader == nil {
		configLoader = noOpConfigLoader{}
	}
	progress := b.progress
	if progress == nil {
		progress = noOpProgressManager{}
	}
	output := b.output
	if output == nil {
		output = directReportWriter{}
	}

	return NewExpressionUseCase(b.service, b.fileReader, b.formatter, configLoader, progress, output), nil
}

// noOpConfigLoader leaves requests untouched
type noOpConfigLoader struct{}

func (noOpConfigLoader) LoadConfig(path string) (*domain.ExpressionRequest, error) {
	return nil, nil
}

func (noOpConfigLoader) LoadDefaultConfig() *domain.ExpressionRequest {
	return nil
}

func (noOpConfigLoader) MergeConfig(base *domain.ExpressionRequest, override *domain.ExpressionRequest) *domain.ExpressionRequest {
	return override
}

type noOpProgressManager struct{}

func (noOpProgressManager) Initialize(int)      {}
func (noOpProgressManager) Start()              {}
func (noOpProgressManager) Complete(bool)       {}
func (noOpProgressManager) Update(int, int)     {}
func (noOpProgressManager) SetWriter(io.Writer) {}
func (noOpProgressManager) IsInteractive() bool { return false }
func (noOpProgressManager) Close()              {}

// directReportWriter writes to the request writer and ignores output paths
type directReportWriter struct{}

func (directReportWriter) Write(writer io.Writer, _ string, _ domain.OutputFormat, writeFunc func(io.Writer) error) error {
	if err := writeFunc(writer); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}
