// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package concurrent

import (
	"context"
	"runtime"

	"github.com/z5labs/sdk-go/try"
	"golang.org/x/sync/semaphore"
)

// Pool runs units of work on goroutines separate from the caller while
// bounding how many run at the same time.
//
// A Pool holds no per-task state, so a single Pool can be shared by
// every request handled by a process.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool returns a [Pool] allowing up to size concurrent tasks.
// A non-positive size defaults to 4 * GOMAXPROCS.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 4 * runtime.GOMAXPROCS(0)
	}
	return &Pool{
		sem: semaphore.NewWeighted(int64(size)),
	}
}

type result[T any] struct {
	value T
	err   error
}

// Submit runs f on the pool and waits for its result.
//
// If ctx is cancelled while waiting for a free slot or for f to finish,
// Submit returns ctx.Err() immediately. A task already running is left
// to finish on its own; its result is discarded and its slot released
// once it returns. A panic in f is recovered and returned as an error.
func Submit[T any](ctx context.Context, p *Pool, f func() (T, error)) (T, error) {
	var zero T

	err := p.sem.Acquire(ctx, 1)
	if err != nil {
		return zero, err
	}

	// buffered so the task never blocks on an abandoned caller
	done := make(chan result[T], 1)
	go func() {
		defer p.sem.Release(1)

		var r result[T]
		defer func() {
			done <- r
		}()
		defer try.Recover(&r.err)

		r.value, r.err = f()
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-done:
		return r.value, r.err
	}
}
