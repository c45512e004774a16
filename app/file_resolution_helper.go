package app

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/prexpr/domain"
	"github.com/ludo-technologies/prexpr/service"
)

// ResolvedSources is every expression gathered for one run
type ResolvedSources struct {
	Sources        []domain.ExpressionSource
	FilesProcessed int
	Warnings       []string
}

// InlineSources labels command line expressions "arg:1", "arg:2", ...
func InlineSources(expressions []string) []domain.ExpressionSource {
	sources := make([]domain.ExpressionSource, 0, len(expressions))
	for i, text := range expressions {
		sources = append(sources, domain.ExpressionSource{
			Label: fmt.Sprintf("arg:%d", i+1),
			Text:  text,
		})
	}
	return sources
}

// ResolveSources gathers inline expressions followed by the expressions of
// every file found under req.Paths, in file order.
//
// Files are read concurrently. A file that cannot be read, or that holds
// no expressions, produces a warning instead of failing the run.
func ResolveSources(ctx context.Context, fileReader domain.ExpressionFileReader, req domain.ExpressionRequest) (*ResolvedSources, error) {
	resolved := &ResolvedSources{
		Sources: InlineSources(req.Expressions),
	}
	if len(req.Paths) == 0 {
		return resolved, nil
	}

	files, err := fileReader.CollectExpressionFiles(
		req.Paths,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
	)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		resolved.Warnings = append(resolved.Warnings, "no expression files found in the specified paths")
		return resolved, nil
	}

	cache := service.PopulateSourceCache(ctx, fileReader, files, req.MaxWorkers)
	for _, file := range files {
		result, ok := cache.Get(file)
		if !ok {
			continue
		}
		if result.ReadErr != nil {
			resolved.Warnings = append(resolved.Warnings, fmt.Sprintf("skipping %s: %v", file, result.ReadErr))
			continue
		}
		resolved.FilesProcessed++
		if len(result.Sources) == 0 {
			resolved.Warnings = append(resolved.Warnings, fmt.Sprintf("no expressions found in %s", file))
			continue
		}
		resolved.Sources = append(resolved.Sources, result.Sources...)
	}

	return resolved, nil
}
