package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func routesCmd(env *string) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Long:  `Print every route in the order requests are matched against them.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "METHOD\tPATH\tVIEW")
			for _, route := range routeTable(*env).Routes() {
				method := route.Method
				if method == "" {
					method = "*"
				}

				view := route.View
				if view == "" {
					view = "-"
				}

				fmt.Fprintf(tw, "%s\t%s\t%s\n", method, route.Path, view)
			}

			return tw.Flush()
		},
	}
}
