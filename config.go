// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package conduit

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"os"

	"github.com/z5labs/conduit/config"
	"github.com/z5labs/conduit/internal/otel"

	bedrockcfg "github.com/z5labs/bedrock/config"
)

// ConfigSource reads YAML from r after rendering it as a Go text template.
// Two template functions are available:
//   - env looks up an environment variable, yielding nil when unset
//   - default substitutes a value for nil, e.g. {{env "PORT" | default 8080}}
func ConfigSource(r io.Reader) bedrockcfg.Source {
	return bedrockcfg.FromYaml(
		bedrockcfg.RenderTextTemplate(
			r,
			bedrockcfg.TemplateFunc("env", lookupEnv),
			bedrockcfg.TemplateFunc("default", withDefault),
		),
	)
}

func lookupEnv(key string) any {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return nil
}

func withDefault(def, v any) any {
	if v == nil {
		return def
	}
	return v
}

//go:embed default_config.yaml
var defaultConfig []byte

// DefaultConfig is the source of the defaults for [Config].
func DefaultConfig() bedrockcfg.Source {
	return ConfigSource(bytes.NewReader(defaultConfig))
}

// ReadConfig merges srcs, later sources overriding earlier ones, and
// unmarshals the result into a T.
func ReadConfig[T any](srcs ...bedrockcfg.Source) (T, error) {
	var cfg T
	m, err := bedrockcfg.Read(bedrockcfg.MultiSource(srcs...))
	if err != nil {
		return cfg, err
	}

	err = m.Unmarshal(&cfg)
	return cfg, err
}

// Config is embedded by every application config.
type Config struct {
	OTel config.OTel `config:"otel"`
}

// InitializeOTel installs the global telemetry providers. The returned func
// flushes and stops them.
func (cfg Config) InitializeOTel(ctx context.Context) (func(context.Context) error, error) {
	return otel.Initialize(ctx, cfg.OTel)
}
