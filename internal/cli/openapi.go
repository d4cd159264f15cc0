// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"github.com/spf13/cobra"
)

func newOpenApiCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.readConfig()
			if err != nil {
				return err
			}

			api, err := buildApi(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return api.WriteOpenApi(cmd.OutOrStdout())
		},
	}
}
