package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ludo-technologies/prexpr/domain"
	"github.com/ludo-technologies/prexpr/internal/expr"
	"github.com/ludo-technologies/prexpr/internal/tree"
	"github.com/ludo-technologies/prexpr/internal/version"
)

// ExpressionServiceImpl implements the ExpressionService interface
type ExpressionServiceImpl struct {
	progress domain.ProgressManager
}

// NewExpressionService creates a new expression service implementation
func NewExpressionService() *ExpressionServiceImpl {
	return &ExpressionServiceImpl{}
}

// WithProgress attaches a progress manager that is updated as sources finish
func (s *ExpressionServiceImpl) WithProgress(pm domain.ProgressManager) *ExpressionServiceImpl {
	s.progress = pm
	return s
}

// Process runs every source through the pipeline. Sources are split into
// chunks that run on the parallel executor; each expression gets its own
// tree so chunks never share state. Results keep the order of sources.
func (s *ExpressionServiceImpl) Process(ctx context.Context, req domain.ExpressionRequest, sources []domain.ExpressionSource) (*domain.ExpressionResponse, error) {
	results := make([]domain.ExpressionResult, len(sources))

	workers := req.MaxWorkers
	if workers <= 0 {
		workers = 1
	}
	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(workers)
	if req.TimeoutSeconds > 0 {
		executor.SetTimeout(time.Duration(req.TimeoutSeconds) * time.Second)
	}

	var done atomic.Int64
	tasks := make([]domain.ExecutableTask, 0, workers)
	for i, chunk := range chunkRanges(len(sources), workers) {
		lo, hi := chunk[0], chunk[1]
		tasks = append(tasks, NewSimpleTask(fmt.Sprintf("chunk-%d", i), true, func(ctx context.Context) (interface{}, error) {
			for j := lo; j < hi; j++ {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				results[j] = s.ProcessOne(req, sources[j])
				n := done.Add(1)
				if s.progress != nil {
					s.progress.Update(int(n), len(sources))
				}
			}
			return nil, nil
		}))
	}

	if err := executor.Execute(ctx, tasks); err != nil {
		return nil, domain.NewProcessingError("expression processing did not finish", err)
	}

	response := &domain.ExpressionResponse{
		Results:     results,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
		Config:      s.buildConfigForResponse(req),
	}
	for _, r := range results {
		if r.Error != "" {
			response.Errors = append(response.Errors, fmt.Sprintf("[%s] %s", r.Label, r.Error))
		}
	}
	response.Summary = summarize(results)
	return response, nil
}

// ProcessOne parses, substitutes, simplifies and renders a single source.
// Failures are reported in the result rather than returned.
func (s *ExpressionServiceImpl) ProcessOne(req domain.ExpressionRequest, source domain.ExpressionSource) domain.ExpressionResult {
	result := domain.ExpressionResult{
		Label:  source.Label,
		Source: source.Text,
	}

	t, err := s.parse(source.Text, req.Strict)
	if err != nil {
		return withError(result, err)
	}
	result.Valid = true

	if result.Prefix, result.Infix, err = render(t, req.Notation); err != nil {
		return withError(result, err)
	}

	original := t.Clone()

	if len(req.Bindings) > 0 {
		if _, err := expr.SubstituteAll(t, expr.Bindings(req.Bindings).Pointers()); err != nil {
			return withError(result, err)
		}
	}

	switch req.SimplifyMode {
	case domain.SimplifyBasic:
		_, err = expr.Simplify(t)
	case domain.SimplifyFancy:
		_, err = expr.SimplifyFancy(t)
	}
	if err != nil {
		return withError(result, err)
	}

	result.Changed = !expr.Equal(original, t)
	if result.Changed {
		if result.SimplifiedPrefix, result.SimplifiedInfix, err = render(t, req.Notation); err != nil {
			return withError(result, err)
		}
	}

	if expr.IsGround(t) {
		value, err := expr.Evaluate(t, nil)
		if err != nil {
			return withError(result, err)
		}
		result.Value = &value
	} else {
		result.FreeVariables = expr.Variables(t)
	}

	if req.ShowStats {
		st := expr.Collect(t)
		result.Stats = &domain.ExpressionStats{
			Nodes:     st.Nodes,
			Height:    st.Height,
			Operators: st.Operators,
			Constants: st.Constants,
			Variables: st.Variables,
		}
	}

	return result
}

func (s *ExpressionServiceImpl) parse(text string, strict bool) (*tree.Tree, error) {
	if strict {
		return expr.ParseStrict(text)
	}
	return expr.Parse(text)
}

func render(t *tree.Tree, notation domain.Notation) (prefix, infix string, err error) {
	if notation.ShowsPrefix() {
		if prefix, err = expr.ToPrefix(t); err != nil {
			return "", "", err
		}
	}
	if notation.ShowsInfix() {
		if infix, err = expr.ToInfix(t); err != nil {
			return "", "", err
		}
	}
	return prefix, infix, nil
}

func withError(result domain.ExpressionResult, err error) domain.ExpressionResult {
	result.Error = err.Error()
	result.ErrorCode = domain.ExpressionErrorCode(err)
	return result
}

func summarize(results []domain.ExpressionResult) domain.ExpressionSummary {
	summary := domain.ExpressionSummary{Total: len(results)}
	for _, r := range results {
		if !r.Valid {
			summary.Invalid++
			continue
		}
		summary.Valid++
		if r.Error != "" {
			summary.Failed++
			continue
		}
		if r.Changed {
			summary.Changed++
		}
		if r.Value != nil {
			summary.Evaluated++
		}
	}
	return summary
}

// chunkRanges splits n items into at most parts contiguous [lo, hi) ranges
func chunkRanges(n, parts int) [][2]int {
	if n == 0 {
		return nil
	}
	if parts > n {
		parts = n
	}
	size := (n + parts - 1) / parts
	ranges := make([][2]int, 0, parts)
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		ranges = append(ranges, [2]int{lo, hi})
	}
	return ranges
}

// buildConfigForResponse builds the configuration echoed in the response
func (s *ExpressionServiceImpl) buildConfigForResponse(req domain.ExpressionRequest) map[string]interface{} {
	return map[string]interface{}{
		"simplify_mode": req.SimplifyMode,
		"notation":      req.Notation,
		"strict":        req.Strict,
		"bindings":      req.Bindings,
		"show_stats":    req.ShowStats,
	}
}
