// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRoutesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
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

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "METHOD\tPATH\tOPERATION\tAUTH\tSTATUS")
			for _, route := range api.Routes() {
				codes := make([]string, len(route.StatusCodes))
				for i, code := range route.StatusCodes {
					codes[i] = fmt.Sprint(code)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", route.Method, route.Pattern, route.OperationID, route.Auth, strings.Join(codes, ","))
			}
			return tw.Flush()
		},
	}
}
