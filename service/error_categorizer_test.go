package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ludo-technologies/prexpr/domain"
	"github.com/ludo-technologies/prexpr/internal/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	categorizer := NewErrorCategorizer()

	_, malformed := expr.Parse("+ 1")
	require.Error(t, malformed)

	tests := []struct {
		name         string
		err          error
		wantCategory domain.ErrorCategory
	}{
		{"file not found code", domain.NewFileNotFoundError("x.prefix", nil), domain.ErrorCategoryInput},
		{"config code", domain.NewConfigError("bad", nil), domain.ErrorCategoryConfig},
		{"output code", domain.NewOutputError("bad", nil), domain.ErrorCategoryOutput},
		{"unsupported format code", domain.NewUnsupportedFormatError("html"), domain.ErrorCategoryOutput},
		{"processing code", domain.NewProcessingError("bad", nil), domain.ErrorCategoryProcessing},
		{"wrapped expression error", domain.FromExpressionError("+ 1", malformed), domain.ErrorCategoryInput},
		{"bare expression error", malformed, domain.ErrorCategoryInput},
		{"deadline", fmt.Errorf("run: %w", context.DeadlineExceeded), domain.ErrorCategoryTimeout},
		{"timeout inside domain error", domain.NewProcessingError("run", context.Canceled), domain.ErrorCategoryTimeout},
		{"config message", errors.New("failed to read config file"), domain.ErrorCategoryConfig},
		{"output message", errors.New("failed to write report"), domain.ErrorCategoryOutput},
		{"unknown", errors.New("something odd"), domain.ErrorCategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizer.Categorize(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.err, got.Original)
			assert.Equal(t, tt.err.Error(), got.Error())
		})
	}
}

func TestCategorize_Nil(t *testing.T) {
	assert.Nil(t, NewErrorCategorizer().Categorize(nil))
}

func TestCategorize_UnknownKeepsMessage(t *testing.T) {
	got := NewErrorCategorizer().Categorize(errors.New("something odd"))
	assert.Equal(t, "something odd", got.Message)
}

func TestGetRecoverySuggestions(t *testing.T) {
	categorizer := NewErrorCategorizer()

	for _, category := range []domain.ErrorCategory{
		domain.ErrorCategoryInput,
		domain.ErrorCategoryConfig,
		domain.ErrorCategoryTimeout,
		domain.ErrorCategoryOutput,
		domain.ErrorCategoryProcessing,
		domain.ErrorCategoryUnknown,
	} {
		assert.NotEmpty(t, categorizer.GetRecoverySuggestions(category), category)
	}

	assert.Equal(t, []string{"Check the error message for more details"},
		categorizer.GetRecoverySuggestions(domain.ErrorCategory("other")))
}
