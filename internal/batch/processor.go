// Package batch generates carbon packs for many submissions at once.
//
// Submissions are independent: each pack is built from its own inputs with
// no shared mutable state, so jobs run concurrently under a simple
// semaphore bound.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Concurrency limits.
const (
	// DefaultConcurrency is the default number of packs built in parallel.
	DefaultConcurrency = 4

	// MaxConcurrency caps the semaphore so a typo cannot spawn thousands
	// of goroutines.
	MaxConcurrency = 64
)

// Sentinel errors.
var (
	ErrNoJobs      = errors.New("no submission files to process")
	ErrNilCallback = errors.New("job callback cannot be nil")
)

// JobCallback builds one pack from one submission file path.
type JobCallback func(ctx context.Context, path string) error

// ProgressCallback is invoked after each job finishes, with counts of
// completed and total jobs.
type ProgressCallback func(done, total int)

// Processor runs pack-generation jobs with bounded concurrency.
type Processor struct {
	concurrency int
	onProgress  ProgressCallback

	mu   sync.Mutex
	done int
}

// NewProcessor creates a processor. Out-of-range concurrency values are
// clamped to [1, MaxConcurrency].
func NewProcessor(concurrency int) *Processor {
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > MaxConcurrency {
		concurrency = MaxConcurrency
	}
	return &Processor{concurrency: concurrency}
}

// WithProgressCallback sets a progress callback.
func (p *Processor) WithProgressCallback(callback ProgressCallback) *Processor {
	p.onProgress = callback
	return p
}

// Concurrency returns the configured parallelism bound.
func (p *Processor) Concurrency() int {
	return p.concurrency
}

// Run processes every path with the callback. Failures do not stop other
// jobs; all errors are collected and returned joined.
func (p *Processor) Run(ctx context.Context, paths []string, callback JobCallback) error {
	if len(paths) == 0 {
		return ErrNoJobs
	}
	if callback == nil {
		return ErrNilCallback
	}

	sem := make(chan struct{}, p.concurrency)
	errChan := make(chan error, len(paths))
	var wg sync.WaitGroup

	for _, path := range paths {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		default:
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if err := callback(ctx, path); err != nil {
				errChan <- fmt.Errorf("%s: %w", path, err)
				return
			}
			p.advance(len(paths))
		}(path)
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("batch processing failed for %d of %d submissions: %w",
			len(errs), len(paths), errors.Join(errs...))
	}
	return nil
}

// advance updates progress under the lock and notifies the callback.
func (p *Processor) advance(total int) {
	p.mu.Lock()
	p.done++
	done := p.done
	p.mu.Unlock()

	if p.onProgress != nil {
		p.onProgress(done, total)
	}
}
