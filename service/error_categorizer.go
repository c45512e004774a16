package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/prexpr/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	codes    map[string]domain.ErrorCategory
	patterns []categoryPatterns
}

type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() *ErrorCategorizerImpl {
	return &ErrorCategorizerImpl{
		codes:    initializeErrorCodes(),
		patterns: initializeErrorPatterns(),
	}
}

func initializeErrorCodes() map[string]domain.ErrorCategory {
	return map[string]domain.ErrorCategory{
		domain.ErrCodeInvalidInput:        domain.ErrorCategoryInput,
		domain.ErrCodeFileNotFound:        domain.ErrorCategoryInput,
		domain.ErrCodeMalformedExpression: domain.ErrorCategoryInput,
		domain.ErrCodeInvalidExpression:   domain.ErrorCategoryInput,
		domain.ErrCodeInvalidSubstitution: domain.ErrorCategoryInput,
		domain.ErrCodeUnboundVariable:     domain.ErrorCategoryInput,
		domain.ErrCodeProcessingError:     domain.ErrorCategoryProcessing,
		domain.ErrCodeConfigError:         domain.ErrorCategoryConfig,
		domain.ErrCodeOutputError:         domain.ErrorCategoryOutput,
		domain.ErrCodeUnsupportedFormat:   domain.ErrorCategoryOutput,
	}
}

// initializeErrorPatterns lists message fragments per category, checked in
// order for errors that carry no domain code
func initializeErrorPatterns() []categoryPatterns {
	return []categoryPatterns{
		{domain.ErrorCategoryTimeout, []string{
			"timeout",
			"deadline",
			"context canceled",
			"timed out",
		}},
		{domain.ErrorCategoryConfig, []string{
			"config",
			"configuration",
			"toml",
			"yaml",
		}},
		{domain.ErrorCategoryInput, []string{
			"invalid input",
			"no expressions",
			"file not found",
			"no such file",
			"permission denied",
			"malformed expression",
			"invalid expression",
			"invalid substitution",
		}},
		{domain.ErrorCategoryOutput, []string{
			"write",
			"output",
			"format",
		}},
		{domain.ErrorCategoryProcessing, []string{
			"parse",
			"simplif",
			"substitut",
			"process",
		}},
	}
}

// Categorize determines the category of an error. Domain error codes and
// context errors take precedence over message patterns.
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	category := ec.categoryOf(err)
	message := err.Error()
	if category != domain.ErrorCategoryUnknown {
		message = ec.getCategoryMessage(category)
	}
	return &domain.CategorizedError{
		Category: category,
		Message:  message,
		Original: err,
	}
}

func (ec *ErrorCategorizerImpl) categoryOf(err error) domain.ErrorCategory {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrorCategoryTimeout
	}

	var de domain.DomainError
	if errors.As(err, &de) {
		if category, ok := ec.codes[de.Code]; ok {
			return category
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, cp := range ec.patterns {
		if containsAnyPattern(errMsg, cp.patterns) {
			return cp.category
		}
	}
	return domain.ErrorCategoryUnknown
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that every operator has exactly two operands, e.g. \"+ 1 2\"",
			"Separate tokens with single spaces",
			"Try: prexpr check <file> to list the malformed lines",
			"Ensure the listed files exist and are readable",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: prexpr init to generate a valid config file",
			"Variable names must not be operators or numbers",
		},
		domain.ErrorCategoryTimeout: {
			"Raise performance.timeout_seconds in the configuration",
			"Process fewer files at once",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions for the output path",
			"Use one of the formats text, json, yaml, csv",
		},
		domain.ErrorCategoryProcessing: {
			"Run with --verbose for detailed information",
			"Try --simplify none to isolate the failing stage",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
			"Report the issue if it persists",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Invalid input expression or file",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Processing timed out or was cancelled",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Error while processing expressions",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}

var _ domain.ErrorCategorizer = (*ErrorCategorizerImpl)(nil)
