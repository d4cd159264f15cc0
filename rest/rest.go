// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"log/slog"
	"net/http"

	"github.com/z5labs/conduit"
	"github.com/z5labs/conduit/app"
	"github.com/z5labs/conduit/config"
	chttp "github.com/z5labs/conduit/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

//go:embed default_config.yaml
var DefaultConfig []byte

// Configer constrains the config type given to [Run].
type Configer interface {
	InitializeOTel(context.Context) (func(context.Context) error, error)
	HttpConfig() config.HTTP
}

// Config is the default config which can be embedded into a more
// specific application config.
type Config struct {
	conduit.Config `config:",squash"`

	OpenApi  config.OpenApi  `config:"openapi"`
	HTTP     config.HTTP     `config:"http"`
	Pipeline config.Pipeline `config:"pipeline"`
}

// HttpConfig implements the [Configer] interface.
func (c Config) HttpConfig() config.HTTP {
	return c.HTTP
}

// ApiOptions translates the pipeline settings into [ApiOption]s.
func (c Config) ApiOptions() []ApiOption {
	opts := []ApiOption{
		Workers(c.Pipeline.Workers),
		MaxBodyBytes(c.Pipeline.MaxBodyBytes),
	}

	rl := c.Pipeline.RateLimit
	if rl.RPS > 0 {
		opts = append(opts, RateLimit(rate.NewLimiter(rate.Limit(rl.RPS), max(rl.Burst, 1))))
	}
	return opts
}

// Run reads the configuration from r, layered over the defaults, and
// unmarshals it into a T. It then initializes OpenTelemetry, calls build to
// create the [Api] and serves it over HTTP until SIGINT or SIGTERM is
// received. The telemetry providers are flushed once the server has shut
// down.
//
// Any error is logged before it is returned.
func Run[T Configer](r io.Reader, build func(context.Context, T) (*Api, error)) error {
	err := run(r, build)
	if err == nil {
		return nil
	}

	log := slog.New(conduit.LogHandler("github.com/z5labs/conduit/rest"))
	log.Error("failed to run rest api", slog.Any("error", err))
	return err
}

func run[T Configer](r io.Reader, build func(context.Context, T) (*Api, error)) error {
	cfg, err := conduit.ReadConfig[T](
		conduit.DefaultConfig(),
		conduit.ConfigSource(bytes.NewReader(DefaultConfig)),
		conduit.ConfigSource(r),
	)
	if err != nil {
		return err
	}

	builder := app.WithHooks(func(ctx context.Context, hooks *app.HookRegistry) (chttp.App, error) {
		shutdown, err := cfg.InitializeOTel(ctx)
		if err != nil {
			return chttp.App{}, err
		}
		hooks.OnPostRun(shutdown)

		api, err := build(ctx, cfg)
		if err != nil {
			return chttp.App{}, err
		}

		handler := otelhttp.NewHandler(
			api,
			"conduit",
			otelhttp.WithMessageEvents(otelhttp.ReadEvents, otelhttp.WriteEvents),
		)

		return chttp.Build(
			cfg.HttpConfig(),
			conduit.LogHandler("github.com/z5labs/conduit/http"),
			app.BuilderFunc[http.Handler](func(context.Context) (http.Handler, error) {
				return handler, nil
			}),
		).Build(ctx)
	})

	return app.Run(context.Background(), builder)
}
