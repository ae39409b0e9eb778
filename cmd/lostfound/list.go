package main

import (
	"github.com/spf13/cobra"

	"github.com/erazemk/lostfound/internal/query"
	"github.com/erazemk/lostfound/internal/render"
)

var (
	listQuery string
	listType  string
	listAll   bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show lost and found items",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "only items containing this text")
	listCmd.Flags().StringVarP(&listType, "type", "t", "all", "all, lost or found")
	listCmd.Flags().BoolVar(&listAll, "all", false, "include returned items")
}

func runList(cmd *cobra.Command, _ []string) error {
	f := query.Filter{
		Query:           listQuery,
		Type:            query.ParseTypeFilter(listType),
		IncludeReturned: listAll,
	}

	lost, found, err := app.Panes(cmd.Context(), f)
	if err != nil {
		return err
	}

	panes := []*render.Pane{lost, found}
	switch f.Type {
	case query.TypeLost:
		panes = panes[:1]
	case query.TypeFound:
		panes = panes[1:]
	}
	return render.WriteTerminal(cmd.OutOrStdout(), panes...)
}
