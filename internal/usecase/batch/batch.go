// Package batch runs one action over many keyed items with a bounded pool
// of workers draining a shared queue.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bnema/stevedore/internal/boundaries/out"
	"github.com/bnema/stevedore/internal/logging"
)

// DefaultConcurrency is the worker count used when Options leaves it unset.
const DefaultConcurrency = 3

// ErrWorkerCapReached reports items left over once every worker hit
// MaxTasksPerWorker.
var ErrWorkerCapReached = errors.New("workers reached their task cap")

// Options tune one Run.
type Options struct {
	// Concurrency caps the number of workers. Values below 1 mean DefaultConcurrency.
	Concurrency int
	// IgnoreFailure keeps workers going after an item fails.
	IgnoreFailure bool
	// MaxTasksPerWorker stops a worker after that many items. 0 is unlimited.
	MaxTasksPerWorker int
}

func (o Options) workers(n int) int {
	c := o.Concurrency
	if c < 1 {
		c = DefaultConcurrency
	}
	return min(c, n)
}

// Task is one keyed item.
type Task[K comparable, V any] struct {
	Key   K
	Value V
}

// Report collects what a Run did.
type Report[K comparable, R any] struct {
	Results map[K]R
	Errors  map[K]error
	// Skipped lists keys that were never started, in queue order.
	Skipped []K
}

// Succeeded returns the number of items that finished without error.
func (r *Report[K, R]) Succeeded() int { return len(r.Results) }

// Failed returns the number of items that returned an error.
func (r *Report[K, R]) Failed() int { return len(r.Errors) }

// Error bundles the per-item failures of a halted batch.
type Error[K comparable] struct {
	Op     string
	Errors map[K]error
}

func (e *Error[K]) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for k, err := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%v: %v", k, err))
	}
	sort.Strings(msgs)
	return fmt.Sprintf("%s: %d item(s) failed: %s", e.Op, len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes the item errors to errors.Is and errors.As.
func (e *Error[K]) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, err := range e.Errors {
		errs = append(errs, err)
	}
	return errs
}

// Runner serializes batches behind a shared lock and records each run.
type Runner struct {
	lock     sync.Locker
	recorder out.BatchRecorder
}

// NewRunner creates a Runner. lock is held for the whole of every Run, so
// Runners sharing a lock never interleave. recorder may be nil.
func NewRunner(lock sync.Locker, recorder out.BatchRecorder) *Runner {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &Runner{lock: lock, recorder: recorder}
}

// Run applies fn to every task. Items run concurrently on at most
// opts.Concurrency workers. Unless opts.IgnoreFailure is set, the first
// error stops workers from taking new items and Run returns an *Error
// alongside the report. Items left unstarted for any other reason make Run
// return the context error or ErrWorkerCapReached.
func Run[K comparable, V, R any](
	ctx context.Context,
	r *Runner,
	op string,
	tasks []Task[K, V],
	opts Options,
	fn func(ctx context.Context, key K, value V) (R, error),
) (*Report[K, R], error) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:   "usecase",
		logging.FieldUseCase: "Batch",
		logging.FieldAction:  op,
	})
	log := logging.FromCtx(ctx)

	r.lock.Lock()
	defer r.lock.Unlock()

	start := time.Now()
	report := &Report[K, R]{
		Results: make(map[K]R, len(tasks)),
		Errors:  make(map[K]error),
	}

	pending := make([]Task[K, V], len(tasks))
	copy(pending, tasks)

	var mu sync.Mutex
	failed := false

	next := func() (Task[K, V], bool) {
		mu.Lock()
		defer mu.Unlock()
		if len(pending) == 0 || (failed && !opts.IgnoreFailure) || ctx.Err() != nil {
			return Task[K, V]{}, false
		}
		t := pending[0]
		pending = pending[1:]
		return t, true
	}

	record := func(key K, res R, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			report.Errors[key] = err
			failed = true
			return
		}
		report.Results[key] = res
	}

	workers := opts.workers(len(tasks))
	log.Debug().Int(logging.FieldCount, len(tasks)).Int("workers", workers).Msg("starting batch")

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			done := 0
			for opts.MaxTasksPerWorker == 0 || done < opts.MaxTasksPerWorker {
				t, ok := next()
				if !ok {
					return
				}
				res, err := safeCall(ctx, fn, t.Key, t.Value)
				if err != nil {
					log.Warn().Err(err).Str(logging.FieldEntityID, fmt.Sprint(t.Key)).Msg("batch item failed")
				}
				record(t.Key, res, err)
				done++
			}
		}()
	}
	wg.Wait()

	for _, t := range pending {
		report.Skipped = append(report.Skipped, t.Key)
	}

	elapsed := time.Since(start)
	if r.recorder != nil {
		r.recorder.RecordBatch(ctx, op, report.Succeeded(), report.Failed(), len(report.Skipped), elapsed)
	}

	log.Info().
		Int("succeeded", report.Succeeded()).
		Int("failed", report.Failed()).
		Int("skipped", len(report.Skipped)).
		Dur(logging.FieldDuration, elapsed).
		Msg("batch complete")

	if len(report.Errors) > 0 && !opts.IgnoreFailure {
		return report, &Error[K]{Op: op, Errors: report.Errors}
	}
	if len(report.Skipped) > 0 {
		cause := ErrWorkerCapReached
		if err := ctx.Err(); err != nil {
			cause = err
		}
		return report, fmt.Errorf("%s: %d item(s) skipped: %w", op, len(report.Skipped), cause)
	}
	return report, nil
}

func safeCall[K comparable, V, R any](
	ctx context.Context,
	fn func(context.Context, K, V) (R, error),
	key K,
	value V,
) (res R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v\n%s", p, debug.Stack())
		}
	}()
	return fn(ctx, key, value)
}
