// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package app builds and runs long lived processes.
package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

// Builder creates a T, typically a [Runtime].
type Builder[T any] interface {
	Build(context.Context) (T, error)
}

// BuilderFunc is an adapter to allow the use of ordinary functions as
// [Builder]s.
type BuilderFunc[T any] func(context.Context) (T, error)

// Build implements the [Builder] interface.
func (f BuilderFunc[T]) Build(ctx context.Context) (T, error) {
	return f(ctx)
}

// Bind feeds the result of b into f to build a B.
func Bind[A, B any](b Builder[A], f func(A) Builder[B]) Builder[B] {
	return BuilderFunc[B](func(ctx context.Context) (B, error) {
		a, err := b.Build(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a).Build(ctx)
	})
}

// Runtime runs until ctx is cancelled or it fails.
type Runtime interface {
	Run(context.Context) error
}

// RuntimeFunc is an adapter to allow the use of ordinary functions as
// [Runtime]s.
type RuntimeFunc func(context.Context) error

// Run implements the [Runtime] interface.
func (f RuntimeFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Run builds a [Runtime] and runs it. SIGINT and SIGTERM cancel the
// context seen by both steps.
func Run[T Runtime](ctx context.Context, b Builder[T]) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := b.Build(ctx)
	if err != nil {
		return err
	}
	return rt.Run(ctx)
}

// HookFunc runs once the [Runtime] it was registered for has returned.
type HookFunc func(context.Context) error

// HookRegistry collects post-run hooks while a [Runtime] is built.
type HookRegistry struct {
	hooks []HookFunc
}

// OnPostRun registers f. Hooks run in registration order.
func (r *HookRegistry) OnPostRun(f HookFunc) {
	r.hooks = append(r.hooks, f)
}

type hooked[T Runtime] struct {
	inner T
	hooks []HookFunc
}

// Run implements the [Runtime] interface.
func (h hooked[T]) Run(ctx context.Context) error {
	err := h.inner.Run(ctx)

	// the run context is usually cancelled by now but hooks still have
	// cleanup to do
	hookCtx := context.WithoutCancel(ctx)
	for _, hook := range h.hooks {
		err = errors.Join(err, hook(hookCtx))
	}
	return err
}

// WithHooks builds a [Runtime] with f and arranges for every hook f
// registers to run after it. A failing runtime or hook never prevents the
// remaining hooks from running; all errors are joined.
//
// When f itself fails, the hooks it registered so far run immediately so
// partially acquired resources are released.
func WithHooks[T Runtime](f func(context.Context, *HookRegistry) (T, error)) Builder[Runtime] {
	return BuilderFunc[Runtime](func(ctx context.Context) (Runtime, error) {
		reg := &HookRegistry{}

		inner, err := f(ctx, reg)
		if err != nil {
			hookCtx := context.WithoutCancel(ctx)
			for _, hook := range reg.hooks {
				err = errors.Join(err, hook(hookCtx))
			}
			return nil, err
		}

		return hooked[T]{inner: inner, hooks: reg.hooks}, nil
	})
}
