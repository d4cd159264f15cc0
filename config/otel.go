// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config defines the telemetry settings read from the YAML
// configuration of the conduit server.
package config

import (
	"time"
)

// Resource identifies the service in every exported signal.
type Resource struct {
	ServiceName    string `config:"service_name"`
	ServiceVersion string `config:"service_version"`
}

// Protocol is the transport used to reach an OTLP collector.
type Protocol string

const (
	ProtocolGRPC Protocol = "grpc"
	ProtocolHTTP Protocol = "http"
)

// OTLP locates a collector.
type OTLP struct {
	Protocol Protocol `config:"protocol"`
	Target   string   `config:"target"`
}

// ExporterType selects where a signal is sent.
type ExporterType string

const (
	// NoExporter drops the signal. It is also used when no type is set.
	NoExporter ExporterType = "none"

	OTLPExporter ExporterType = "otlp"

	// ConsoleExporter writes JSON lines to stdout. Only logs support it.
	ConsoleExporter ExporterType = "console"
)

// Exporter configures the destination of a single signal.
type Exporter struct {
	Type ExporterType `config:"type"`
	OTLP OTLP         `config:"otlp"`
}

// Enabled reports whether the signal leaves the process.
func (e Exporter) Enabled() bool {
	return e.Type != "" && e.Type != NoExporter
}

// Batch tunes batching of exported records.
type Batch struct {
	ExportInterval time.Duration `config:"export_interval"`
	MaxSize        int           `config:"max_size"`
}

// Trace
type Trace struct {
	SamplingRatio float64  `config:"sampling_ratio"`
	Batch         Batch    `config:"batch"`
	Exporter      Exporter `config:"exporter"`
}

// Metric
type Metric struct {
	ExportInterval time.Duration `config:"export_interval"`
	Exporter       Exporter      `config:"exporter"`
}

// LogProcessorType
type LogProcessorType string

const (
	SimpleLogProcessor LogProcessorType = "simple"
	BatchLogProcessor  LogProcessorType = "batch"
)

// Log configures log export.
//
// Levels maps a logger name, or a prefix of one, to the minimum level
// ("debug", "info", "warn" or "error") exported for it.
type Log struct {
	Processor LogProcessorType  `config:"processor"`
	Batch     Batch             `config:"batch"`
	Exporter  Exporter          `config:"exporter"`
	Levels    map[string]string `config:"levels"`
}

// OTel groups the settings of every signal.
type OTel struct {
	Resource Resource `config:"resource"`
	Trace    Trace    `config:"trace"`
	Metric   Metric   `config:"metric"`
	Log      Log      `config:"log"`
}
