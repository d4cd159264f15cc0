// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package cli implements the conduit command.
package cli

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/z5labs/conduit"
	"github.com/z5labs/conduit/api"
	"github.com/z5labs/conduit/rest"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

//go:embed config.yaml
var configBytes []byte

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	config   string
	envFiles []string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "conduit",
		Short:        "Conduit REST API server",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadEnv(flags.envFiles)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "YAML config file, rendered with the env and default template funcs")
	cmd.PersistentFlags().StringSliceVar(&flags.envFiles, "env-file", nil, "dotenv files loaded before the config is read (default .env if present)")

	cmd.AddCommand(
		newServeCmd(flags),
		newRoutesCmd(flags),
		newOpenApiCmd(flags),
	)
	return cmd
}

// loadEnv never overrides variables which are already set. Without explicit
// files a missing .env is not an error.
func loadEnv(files []string) error {
	if len(files) > 0 {
		return godotenv.Load(files...)
	}

	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (f *rootFlags) openConfig() (io.ReadCloser, error) {
	if f.config == "" {
		return io.NopCloser(bytes.NewReader(configBytes)), nil
	}
	return os.Open(f.config)
}

func (f *rootFlags) readConfig() (rest.Config, error) {
	rc, err := f.openConfig()
	if err != nil {
		return rest.Config{}, err
	}
	defer rc.Close()

	return conduit.ReadConfig[rest.Config](
		conduit.DefaultConfig(),
		conduit.ConfigSource(bytes.NewReader(rest.DefaultConfig)),
		conduit.ConfigSource(rc),
	)
}

// server answers every operation as unimplemented. Any Token or Bearer
// credential is accepted and passed through as opaque claims.
type server struct {
	api.Unimplemented[string]
}

func (server) ExtractClaimsFromHeader(ctx context.Context, h http.Header, key string) (string, bool) {
	return rest.TokenFromHeader(h, key)
}

func buildApi(ctx context.Context, cfg rest.Config) (*rest.Api, error) {
	return api.NewApi[string](cfg.OpenApi.Title, cfg.OpenApi.Version, server{}, cfg.ApiOptions()...), nil
}
