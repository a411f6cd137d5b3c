package main

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/personachat/http/router"
)

var errUnresolved = errors.New("unresolved paths")

func resolveCmd(env *string) *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Print the view each path selects",
		Long: `Print the view each path selects and the parameters extracted from it,
without serving a request.
Paths resolve against the views even while the server is in maintenance mode.`,
		Example: `  personachat resolve / /ChatWindow/Alice /oauth/callback/google`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := routeTable(*env)

			var missed int
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, target := range args {
				m, err := rt.Resolve(method, target)
				switch {
				case errors.Is(err, router.ErrNotFound), errors.Is(err, router.ErrMethodNotAllowed):
					missed++
					fmt.Fprintf(tw, "%s\t-\t%s\n", target, err)
					continue
				case err != nil:
					return err
				}

				view := m.Route.View
				if view == "" {
					view = "-"
				}

				fmt.Fprintf(tw, "%s\t%s\t%s\n", target, view, formatParams(m.Params))
			}

			if err := tw.Flush(); err != nil {
				return err
			}

			if missed > 0 {
				return fmt.Errorf("%w: %d of %d", errUnresolved, missed, len(args))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", http.MethodGet, "HTTP method to resolve with")

	return cmd
}

// formatParams lists params as name=value pairs sorted by name.
func formatParams(params router.Params) string {
	if len(params) == 0 {
		return ""
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = fmt.Sprintf("%s=%q", name, params[name])
	}

	return strings.Join(pairs, " ")
}
