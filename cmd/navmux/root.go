package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vitalvas/navmux/internal/config"
	"github.com/vitalvas/navmux/mux"
	"github.com/vitalvas/navmux/routefile"
)

// app carries the state shared by all subcommands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	routes string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "navmux",
		Short: "Compile route templates and match navigation locations",
		Long: `navmux compiles an ordered list of route templates and matches
locations against them the same way the navigator dispatches them.

Templates are "/"-separated; a part may be a literal, a ":name" variable,
a "prefix*" or a "*suffix" wildcard. Shorter templates are tried first and
ties go to the earlier entry in the route file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := cfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = logger
			if a.routes == "" {
				a.routes = cfg.Routes
			}

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&a.routes, "routes", "r", "", "Route file (default: $NAVMUX_ROUTES or routes.yaml)")

	cmd.AddCommand(
		a.routesCmd(),
		a.matchCmd(),
		a.serveCmd(),
	)

	return cmd
}

// loadRoutes reads the route file and compiles it with handlers from
// resolve.
func (a *app) loadRoutes(resolve func(def routefile.Definition) mux.Handler) (*routefile.File, []mux.Route, error) {
	f, err := routefile.LoadFile(a.routes)
	if err != nil {
		return nil, nil, err
	}

	if len(f.Routes) == 0 {
		return nil, nil, fmt.Errorf("no routes in %s", a.routes)
	}

	return f, f.MuxRoutes(resolve), nil
}
