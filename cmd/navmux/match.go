package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vitalvas/navmux/mux"
)

// matchResult is one line of "navmux match" output.
type matchResult struct {
	Matched  bool              `json:"matched"`
	Route    string            `json:"route,omitempty"`
	Template string            `json:"template,omitempty"`
	Path     string            `json:"path"`
	Params   map[string]string `json:"params,omitempty"`
	Query    *mux.Query        `json:"query,omitempty"`
	State    any               `json:"state,omitempty"`
}

func (a *app) matchCmd() *cobra.Command {
	var stateJSON string

	cmd := &cobra.Command{
		Use:   "match LOCATION...",
		Short: "Match locations against the route table",
		Long: `Match each location against the compiled route table and print
one JSON object per location.

Examples:
  navmux match /active
  navmux match '/users/42?tab=info&debug'
  navmux match --state '{"from":"list"}' /users/42`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var state any
			if stateJSON != "" {
				if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
					return fmt.Errorf("invalid --state: %w", err)
				}
			}

			f, routes, err := a.loadRoutes(nil)
			if err != nil {
				return err
			}

			table := mux.Compile(routes...)
			enc := json.NewEncoder(cmd.OutOrStdout())

			for _, location := range args {
				var in mux.Input = mux.Raw(location)
				if state != nil {
					in = mux.Structured{Path: location, State: state}
				}

				loc := mux.ParseLocation(in)
				res := matchResult{Path: loc.Path}

				if m, ok := table.Match(loc); ok {
					res = matchResult{
						Matched:  true,
						Route:    f.Routes[m.Route.Index()].Name,
						Template: m.Template(),
						Path:     m.Path,
						Params:   m.Params,
						Query:    m.Query,
						State:    m.State,
					}
				} else {
					a.logger.Debug("no route matched", "path", loc.Path)
				}

				if err := enc.Encode(res); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&stateJSON, "state", "", "JSON state attached to every location")

	return cmd
}
