// Command personachat serves the personachat web app
// and inspects the paths it routes to each view.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/personachat"
	"github.com/xy-planning-network/personachat/http/router"
	"github.com/xy-planning-network/personachat/ranger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "personachat",
		Short: "Chat with personas in the browser",
		Long: `personachat serves a web app mapping these paths to views:

  /                          Menu
  /ChatWindow/:personaName   Chat Window
  /auth                      Auth
  /oauth/callback/*          Auth

Configuration is read from the environment and a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "", "environment to run in, overriding ENVIRONMENT")

	cmd.AddCommand(
		serveCmd(&env),
		routesCmd(&env),
		resolveCmd(&env),
	)

	return cmd
}

// newRanger constructs a *ranger.Ranger for env, logging to out.
func newRanger(env string, out io.Writer, opts ...ranger.RangerOption) (*ranger.Ranger, error) {
	return ranger.New(append([]ranger.RangerOption{ranger.WithEnv(env), ranger.WithLogOutput(out)}, opts...)...)
}

// routeTable constructs the routes a server running in env matches requests against.
// An invalid env falls back to ENVIRONMENT, as ranger.WithEnv does.
func routeTable(env string) *router.Router {
	e := personachat.Environment(strings.ToUpper(env))
	if err := e.Valid(); err != nil {
		e = personachat.EnvVarOrEnv("ENVIRONMENT", personachat.Development)
	}

	return ranger.RouteTable(e)
}
