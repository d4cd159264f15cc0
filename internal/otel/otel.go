// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otel installs the global OpenTelemetry providers.
package otel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/z5labs/conduit/concurrent"
	"github.com/z5labs/conduit/config"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// UnknownProtocolError is returned for an OTLP protocol other than grpc or http.
type UnknownProtocolError struct {
	Protocol config.Protocol
}

func (e UnknownProtocolError) Error() string {
	return fmt.Sprintf("unknown otlp protocol: %q", e.Protocol)
}

// UnsupportedExporterError is returned when a signal is configured with an
// exporter type it cannot use.
type UnsupportedExporterError struct {
	Signal string
	Type   config.ExporterType
}

func (e UnsupportedExporterError) Error() string {
	return fmt.Sprintf("unsupported %s exporter: %q", e.Signal, e.Type)
}

// UnknownLogProcessorError is returned for a log processor other than
// simple or batch.
type UnknownLogProcessorError struct {
	Type config.LogProcessorType
}

func (e UnknownLogProcessorError) Error() string {
	return fmt.Sprintf("unknown log processor type: %q", e.Type)
}

// Initialize installs the global tracer, meter and logger providers
// described by cfg. The returned func flushes and stops all of them. When
// Initialize fails, everything it already started is stopped again.
func Initialize(ctx context.Context, cfg config.OTel) (func(context.Context) error, error) {
	r, err := newResource(ctx, cfg.Resource)
	if err != nil {
		return nil, err
	}

	s := &setup{
		res:   r,
		conns: concurrent.NewCache[string, *grpc.ClientConn](),
	}

	steps := []func(context.Context) error{
		func(ctx context.Context) error { return s.tracing(ctx, cfg.Trace) },
		func(ctx context.Context) error { return s.metrics(ctx, cfg.Metric) },
		func(ctx context.Context) error { return s.logging(ctx, cfg.Log) },
	}
	for _, step := range steps {
		err := step(ctx)
		if err != nil {
			return nil, errors.Join(err, s.shutdown(ctx))
		}
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return s.shutdown, nil
}

type setup struct {
	res       *resource.Resource
	conns     *concurrent.Cache[string, *grpc.ClientConn]
	shutdowns []func(context.Context) error
}

// shutdown stops providers in reverse order of creation and then closes
// any shared grpc connections.
func (s *setup) shutdown(ctx context.Context) error {
	var err error
	for i := len(s.shutdowns) - 1; i >= 0; i-- {
		err = errors.Join(err, s.shutdowns[i](ctx))
	}
	s.shutdowns = nil

	for _, cc := range s.conns.All() {
		err = errors.Join(err, cc.Close())
	}
	return err
}

func (s *setup) tracing(ctx context.Context, cfg config.Trace) error {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(s.res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRatio))),
	}

	if cfg.Exporter.Enabled() {
		exp, err := newExporter(s, "trace", cfg.Exporter,
			func(cc *grpc.ClientConn) (sdktrace.SpanExporter, error) {
				return otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(cc))
			},
			func(target string) (sdktrace.SpanExporter, error) {
				return otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(target))
			},
		)
		if err != nil {
			return err
		}

		var batchOpts []sdktrace.BatchSpanProcessorOption
		if cfg.Batch.ExportInterval > 0 {
			batchOpts = append(batchOpts, sdktrace.WithBatchTimeout(cfg.Batch.ExportInterval))
		}
		if cfg.Batch.MaxSize > 0 {
			batchOpts = append(batchOpts, sdktrace.WithMaxExportBatchSize(cfg.Batch.MaxSize))
		}
		opts = append(opts, sdktrace.WithBatcher(exp, batchOpts...))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	s.shutdowns = append(s.shutdowns, tp.Shutdown)
	otel.SetTracerProvider(tp)
	return nil
}

func (s *setup) metrics(ctx context.Context, cfg config.Metric) error {
	if !cfg.Exporter.Enabled() {
		return nil
	}

	exp, err := newExporter(s, "metric", cfg.Exporter,
		func(cc *grpc.ClientConn) (sdkmetric.Exporter, error) {
			return otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(cc))
		},
		func(target string) (sdkmetric.Exporter, error) {
			return otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(target))
		},
	)
	if err != nil {
		return err
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{
		sdkmetric.WithProducer(runtime.NewProducer()),
	}
	if cfg.ExportInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.ExportInterval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, readerOpts...)),
		sdkmetric.WithResource(s.res),
	)
	s.shutdowns = append(s.shutdowns, mp.Shutdown)
	otel.SetMeterProvider(mp)

	return runtime.Start(runtime.WithMinimumReadMemStatsInterval(time.Second))
}

func (s *setup) logging(ctx context.Context, cfg config.Log) error {
	if !cfg.Exporter.Enabled() {
		return nil
	}

	var exp sdklog.Exporter
	switch cfg.Exporter.Type {
	case config.ConsoleExporter:
		exp = newConsoleExporter(os.Stdout)
	default:
		var err error
		exp, err = newExporter(s, "log", cfg.Exporter,
			func(cc *grpc.ClientConn) (sdklog.Exporter, error) {
				return otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(cc))
			},
			func(target string) (sdklog.Exporter, error) {
				return otlploghttp.New(ctx, otlploghttp.WithEndpoint(target))
			},
		)
		if err != nil {
			return err
		}
	}

	var proc sdklog.Processor
	switch cfg.Processor {
	case config.SimpleLogProcessor:
		proc = sdklog.NewSimpleProcessor(exp)
	case config.BatchLogProcessor, "":
		var batchOpts []sdklog.BatchProcessorOption
		if cfg.Batch.ExportInterval > 0 {
			batchOpts = append(batchOpts, sdklog.WithExportInterval(cfg.Batch.ExportInterval))
		}
		if cfg.Batch.MaxSize > 0 {
			batchOpts = append(batchOpts, sdklog.WithExportMaxBatchSize(cfg.Batch.MaxSize))
		}
		proc = sdklog.NewBatchProcessor(exp, batchOpts...)
	default:
		return UnknownLogProcessorError{Type: cfg.Processor}
	}
	if len(cfg.Levels) > 0 {
		proc = newLevelFilter(proc, cfg.Levels)
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(proc),
		sdklog.WithResource(s.res),
	)
	s.shutdowns = append(s.shutdowns, lp.Shutdown)
	global.SetLoggerProvider(lp)
	return nil
}

// newExporter creates the OTLP exporter of one signal. grpc connections are
// shared between signals which target the same collector.
func newExporter[E any](
	s *setup,
	signal string,
	cfg config.Exporter,
	viaGRPC func(*grpc.ClientConn) (E, error),
	viaHTTP func(string) (E, error),
) (E, error) {
	var zero E
	if cfg.Type != config.OTLPExporter {
		return zero, UnsupportedExporterError{Signal: signal, Type: cfg.Type}
	}

	switch cfg.OTLP.Protocol {
	case config.ProtocolGRPC:
		cc, err := s.conns.GetOr(cfg.OTLP.Target, func() (*grpc.ClientConn, error) {
			// TODO: support TLS transport credentials for remote collectors
			return grpc.NewClient(cfg.OTLP.Target, grpc.WithTransportCredentials(insecure.NewCredentials()))
		})
		if err != nil {
			return zero, err
		}
		return viaGRPC(cc)
	case config.ProtocolHTTP:
		return viaHTTP(cfg.OTLP.Target)
	default:
		return zero, UnknownProtocolError{Protocol: cfg.OTLP.Protocol}
	}
}
