package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/personachat/ranger"
)

func serveCmd(env *string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long:  `Run the web server until interrupted, then wait up to 5 seconds for open requests.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				if err := os.Setenv("PORT", port); err != nil {
					return err
				}
			}

			rng, err := newRanger(*env, cmd.ErrOrStderr(), ranger.WithContext(cmd.Context()))
			if err != nil {
				return err
			}

			return rng.Guide()
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on, overriding PORT")

	return cmd
}
