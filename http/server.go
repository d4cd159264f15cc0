// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package http runs an [http.Handler] until its context is cancelled.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/z5labs/conduit/app"
	"github.com/z5labs/conduit/config"

	"github.com/sourcegraph/conc/pool"
)

const (
	DefaultPort              = 8080
	DefaultReadTimeout       = 5 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultMaxHeaderBytes    = 1 << 20
)

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// Listen opens a TCP listener on the configured port, or on
// [DefaultPort] when none is set.
func Listen(ctx context.Context, cfg config.HTTP) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", orDefault(cfg.Port, DefaultPort)))
}

// App serves HTTP on a listener.
type App struct {
	ls              net.Listener
	srv             *http.Server
	shutdownTimeout time.Duration
}

// NewApp configures an [App] from cfg, applying the Default* values for
// unset fields. Server errors are logged through errorLog.
func NewApp(ls net.Listener, h http.Handler, cfg config.HTTP, errorLog slog.Handler) App {
	return App{
		ls: ls,
		srv: &http.Server{
			Handler:           h,
			ReadTimeout:       orDefault(cfg.ReadTimeout, DefaultReadTimeout),
			ReadHeaderTimeout: orDefault(cfg.ReadHeaderTimeout, DefaultReadHeaderTimeout),
			WriteTimeout:      orDefault(cfg.WriteTimeout, DefaultWriteTimeout),
			IdleTimeout:       orDefault(cfg.IdleTimeout, DefaultIdleTimeout),
			MaxHeaderBytes:    orDefault(cfg.MaxHeaderBytes, DefaultMaxHeaderBytes),
			ErrorLog:          slog.NewLogLogger(errorLog, slog.LevelError),
		},
		shutdownTimeout: orDefault(cfg.ShutdownTimeout, DefaultShutdownTimeout),
	}
}

// Run serves until ctx is cancelled and then shuts the server down,
// letting in-flight requests finish within the shutdown timeout.
func (a App) Run(ctx context.Context) error {
	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		return a.srv.Serve(a.ls)
	})

	p.Go(func(ctx context.Context) error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.shutdownTimeout)
		defer cancel()
		return a.srv.Shutdown(shutdownCtx)
	})

	err := p.Wait()
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Build binds a handler builder to a listener on cfg.Port.
func Build(cfg config.HTTP, errorLog slog.Handler, b app.Builder[http.Handler]) app.Builder[App] {
	return app.Bind(b, func(h http.Handler) app.Builder[App] {
		return app.BuilderFunc[App](func(ctx context.Context) (App, error) {
			ls, err := Listen(ctx, cfg)
			if err != nil {
				return App{}, err
			}
			return NewApp(ls, h, cfg, errorLog), nil
		})
	})
}
