// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import "time"

// HTTP configures the listening server. Zero values fall back to the
// defaults of the http package.
type HTTP struct {
	Port              uint          `config:"port"`
	ReadTimeout       time.Duration `config:"read_timeout"`
	ReadHeaderTimeout time.Duration `config:"read_header_timeout"`
	WriteTimeout      time.Duration `config:"write_timeout"`
	IdleTimeout       time.Duration `config:"idle_timeout"`
	ShutdownTimeout   time.Duration `config:"shutdown_timeout"`
	MaxHeaderBytes    int           `config:"max_header_bytes"`
}

// RateLimit admits RPS requests per second with bursts of up to Burst.
// A non-positive RPS disables limiting.
type RateLimit struct {
	RPS   float64 `config:"rps"`
	Burst int     `config:"burst"`
}

// Pipeline tunes request processing.
type Pipeline struct {
	// Workers bounds concurrent validation and serialization tasks.
	Workers      int       `config:"workers"`
	MaxBodyBytes int64     `config:"max_body_bytes"`
	RateLimit    RateLimit `config:"rate_limit"`
}

// OpenApi describes the generated document.
type OpenApi struct {
	Title   string `config:"title"`
	Version string `config:"version"`
}
