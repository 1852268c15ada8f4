package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vitalvas/navmux/mux"
)

func (a *app) routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the compiled route table in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, routes, err := a.loadRoutes(nil)
			if err != nil {
				return err
			}

			table := mux.Compile(routes...)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ORDER\tSEGMENTS\tTEMPLATE\tNAME\tDESCRIPTION")

			order := 0
			err = table.Walk(func(p *mux.Pattern) error {
				def := f.Routes[p.Index()]
				_, werr := fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", order, p.Len(), p.Template(), def.Name, def.Description)
				order++
				return werr
			})
			if err != nil {
				return err
			}

			return tw.Flush()
		},
	}
}
