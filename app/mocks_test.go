package app

import (
	"context"
	"io"

	"github.com/ludo-technologies/prexpr/domain"
	"github.com/stretchr/testify/mock"
)

type mockExpressionService struct {
	mock.Mock
}

func (m *mockExpressionService) Process(ctx context.Context, req domain.ExpressionRequest, sources []domain.ExpressionSource) (*domain.ExpressionResponse, error) {
	args := m.Called(ctx, req, sources)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpressionResponse), args.Error(1)
}

func (m *mockExpressionService) ProcessOne(req domain.ExpressionRequest, source domain.ExpressionSource) domain.ExpressionResult {
	args := m.Called(req, source)
	return args.Get(0).(domain.ExpressionResult)
}

type mockFileReader struct {
	mock.Mock
}

func (m *mockFileReader) CollectExpressionFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	args := m.Called(paths, recursive, includePatterns, excludePatterns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockFileReader) ReadExpressions(path string) ([]domain.ExpressionSource, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpressionSource), args.Error(1)
}

func (m *mockFileReader) FileExists(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

type mockFormatter struct {
	mock.Mock
}

func (m *mockFormatter) Format(response *domain.ExpressionResponse, format domain.OutputFormat) (string, error) {
	args := m.Called(response, format)
	return args.String(0), args.Error(1)
}

func (m *mockFormatter) Write(response *domain.ExpressionResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

type mockConfigLoader struct {
	mock.Mock
}

func (m *mockConfigLoader) LoadConfig(path string) (*domain.ExpressionRequest, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpressionRequest), args.Error(1)
}

func (m *mockConfigLoader) LoadDefaultConfig() *domain.ExpressionRequest {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.ExpressionRequest)
}

func (m *mockConfigLoader) MergeConfig(base *domain.ExpressionRequest, override *domain.ExpressionRequest) *domain.ExpressionRequest {
	args := m.Called(base, override)
	return args.Get(0).(*domain.ExpressionRequest)
}

type mockProgressManager struct {
	mock.Mock
}

func (m *mockProgressManager) Initialize(maxValue int)     { m.Called(maxValue) }
func (m *mockProgressManager) Start()                      { m.Called() }
func (m *mockProgressManager) Complete(success bool)       { m.Called(success) }
func (m *mockProgressManager) Update(processed, total int) { m.Called(processed, total) }
func (m *mockProgressManager) SetWriter(writer io.Writer)  { m.Called(writer) }
func (m *mockProgressManager) IsInteractive() bool         { return m.Called().Bool(0) }
func (m *mockProgressManager) Close()                      { m.Called() }

type mockReportWriter struct {
	called     bool
	lastPath   string
	lastFormat domain.OutputFormat
	err        error
}

func (m *mockReportWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, writeFunc func(io.Writer) error) error {
	m.called = true
	m.lastPath = outputPath
	m.lastFormat = format
	if m.err != nil {
		return m.err
	}
	return writeFunc(writer)
}
