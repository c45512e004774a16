package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ludo-technologies/prexpr/domain"
)

// DefaultExecutorTimeout bounds a run when no timeout is configured
const DefaultExecutorTimeout = 10 * time.Minute

// ParallelExecutorImpl implements the ParallelExecutor interface
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
}

// NewParallelExecutor creates a new parallel executor
func NewParallelExecutor() *ParallelExecutorImpl {
	return &ParallelExecutorImpl{
		timeout: DefaultExecutorTimeout,
	}
}

// Execute runs the enabled tasks concurrently, at most maxConcurrency at a
// time when that is positive. It returns once every task has finished or
// the deadline passes; task errors are joined.
func (pe *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	if len(tasks) == 0 {
		return nil
	}

	if pe.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pe.timeout)
		defer cancel()
	}

	var semaphore chan struct{}
	if pe.maxConcurrency > 0 {
		semaphore = make(chan struct{}, pe.maxConcurrency)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for _, task := range tasks {
		if task == nil || !task.IsEnabled() {
			continue
		}

		wg.Add(1)
		go func(t domain.ExecutableTask) {
			defer wg.Done()

			if semaphore != nil {
				select {
				case semaphore <- struct{}{}:
					defer func() { <-semaphore }()
				case <-ctx.Done():
					record(fmt.Errorf("task %s cancelled: %w", t.Name(), ctx.Err()))
					return
				}
			}

			if err := ctx.Err(); err != nil {
				record(fmt.Errorf("task %s cancelled: %w", t.Name(), err))
				return
			}

			if _, err := t.Execute(ctx); err != nil {
				record(fmt.Errorf("task %s failed: %w", t.Name(), err))
			}
		}(task)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		mu.Lock()
		defer mu.Unlock()
		return errors.Join(errs...)
	case <-ctx.Done():
		return fmt.Errorf("parallel execution stopped: %w", ctx.Err())
	}
}

// SetMaxConcurrency sets the maximum number of concurrent tasks; zero means unbounded
func (pe *ParallelExecutorImpl) SetMaxConcurrency(max int) {
	pe.maxConcurrency = max
}

// SetTimeout sets the timeout for a whole Execute call
func (pe *ParallelExecutorImpl) SetTimeout(timeout time.Duration) {
	pe.timeout = timeout
}

// SimpleTask adapts a function to ExecutableTask
type SimpleTask struct {
	name    string
	enabled bool
	execute func(context.Context) (interface{}, error)
}

// NewSimpleTask creates a new simple task
func NewSimpleTask(name string, enabled bool, execute func(context.Context) (interface{}, error)) *SimpleTask {
	return &SimpleTask{
		name:    name,
		enabled: enabled,
		execute: execute,
	}
}

func (t *SimpleTask) Name() string { return t.name }

func (t *SimpleTask) IsEnabled() bool { return t.enabled }

func (t *SimpleTask) Execute(ctx context.Context) (interface{}, error) {
	if t.execute == nil {
		return nil, fmt.Errorf("task %s has no execute function", t.name)
	}
	return t.execute(ctx)
}
