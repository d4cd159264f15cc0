// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBind(t *testing.T) {
	t.Run("will pass the first result to the second builder", func(t *testing.T) {
		b := Bind(
			BuilderFunc[int](func(context.Context) (int, error) { return 2, nil }),
			func(n int) Builder[string] {
				return BuilderFunc[string](func(context.Context) (string, error) {
					return string(rune('a' + n)), nil
				})
			},
		)

		s, err := b.Build(context.Background())
		require.NoError(t, err)
		require.Equal(t, "c", s)
	})

	t.Run("will not call the binder", func(t *testing.T) {
		t.Run("if the first builder fails", func(t *testing.T) {
			buildErr := errors.New("boom")
			var called bool
			b := Bind(
				BuilderFunc[int](func(context.Context) (int, error) { return 0, buildErr }),
				func(int) Builder[int] {
					called = true
					return nil
				},
			)

			_, err := b.Build(context.Background())
			require.ErrorIs(t, err, buildErr)
			require.False(t, called)
		})
	})
}

func TestWithHooks(t *testing.T) {
	t.Run("will run hooks in order after the runtime", func(t *testing.T) {
		var order []string
		b := WithHooks(func(ctx context.Context, reg *HookRegistry) (RuntimeFunc, error) {
			reg.OnPostRun(func(context.Context) error {
				order = append(order, "first")
				return nil
			})
			reg.OnPostRun(func(context.Context) error {
				order = append(order, "second")
				return nil
			})
			return func(context.Context) error {
				order = append(order, "run")
				return nil
			}, nil
		})

		rt, err := b.Build(context.Background())
		require.NoError(t, err)
		require.NoError(t, rt.Run(context.Background()))
		require.Equal(t, []string{"run", "first", "second"}, order)
	})

	t.Run("will join every error", func(t *testing.T) {
		runErr := errors.New("run")
		hookErr := errors.New("hook")
		var ran int
		b := WithHooks(func(ctx context.Context, reg *HookRegistry) (RuntimeFunc, error) {
			reg.OnPostRun(func(context.Context) error {
				ran++
				return hookErr
			})
			reg.OnPostRun(func(context.Context) error {
				ran++
				return nil
			})
			return func(context.Context) error { return runErr }, nil
		})

		rt, err := b.Build(context.Background())
		require.NoError(t, err)

		err = rt.Run(context.Background())
		require.ErrorIs(t, err, runErr)
		require.ErrorIs(t, err, hookErr)
		require.Equal(t, 2, ran)
	})

	t.Run("will give hooks a live context", func(t *testing.T) {
		t.Run("if the run context was cancelled", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())

			var hookCtxErr error
			b := WithHooks(func(ctx context.Context, reg *HookRegistry) (RuntimeFunc, error) {
				reg.OnPostRun(func(ctx context.Context) error {
					hookCtxErr = ctx.Err()
					return nil
				})
				return func(context.Context) error {
					cancel()
					return nil
				}, nil
			})

			rt, err := b.Build(ctx)
			require.NoError(t, err)
			require.NoError(t, rt.Run(ctx))
			require.NoError(t, hookCtxErr)
		})
	})

	t.Run("will run registered hooks", func(t *testing.T) {
		t.Run("if building fails", func(t *testing.T) {
			buildErr := errors.New("build")
			var cleaned bool
			b := WithHooks(func(ctx context.Context, reg *HookRegistry) (RuntimeFunc, error) {
				reg.OnPostRun(func(context.Context) error {
					cleaned = true
					return nil
				})
				return nil, buildErr
			})

			rt, err := b.Build(context.Background())
			require.ErrorIs(t, err, buildErr)
			require.Nil(t, rt)
			require.True(t, cleaned)
		})
	})
}

func TestRun(t *testing.T) {
	t.Run("will return the runtime error", func(t *testing.T) {
		runErr := errors.New("run")
		err := Run(context.Background(), BuilderFunc[RuntimeFunc](func(context.Context) (RuntimeFunc, error) {
			return func(context.Context) error { return runErr }, nil
		}))
		require.ErrorIs(t, err, runErr)
	})
}
