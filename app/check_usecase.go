package app

import (
	"context"

	"github.com/ludo-technologies/prexpr/domain"
)

// CheckResult lists the expressions that would make a CI check fail
type CheckResult struct {
	Response *domain.ExpressionResponse
	Invalid  []domain.ExpressionResult
}

// Passed reports whether every expression was well formed
func (r *CheckResult) Passed() bool {
	return len(r.Invalid) == 0
}

// CheckUseCase reports which expressions fail to process
type CheckUseCase struct {
	expressions *ExpressionUseCase
}

// NewCheckUseCase creates a check use case on top of the processing workflow
func NewCheckUseCase(expressions *ExpressionUseCase) *CheckUseCase {
	return &CheckUseCase{expressions: expressions}
}

// Execute parses every expression and collects those that failed. Nothing
// is written; the caller reports the outcome.
func (uc *CheckUseCase) Execute(ctx context.Context, req domain.ExpressionRequest) (*CheckResult, error) {
	response, err := uc.expressions.Process(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{Response: response}
	for _, r := range response.Results {
		if r.Error != "" {
			result.Invalid = append(result.Invalid, r)
		}
	}
	return result, nil
}
