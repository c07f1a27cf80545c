package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"contentbrowser/internal/catalog"
	"contentbrowser/internal/domain"
	"contentbrowser/internal/router"
)

func newRoutesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the views in menu order",
		Long: `List every view with its route, menu id, shortcut key and the kind of
items it shows. The item count comes from the configured catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			items, err := catalogItems(cfg.Catalog)
			if err != nil {
				return err
			}
			c := catalog.New(nil)
			c.Load(items)

			p := newPrinter(cmd.OutOrStdout())
			p.Header("Views")
			return p.Table([]string{"KEY", "MENU", "ROUTE", "LABEL", "KIND", "ITEMS"}, routeRows(router.DefaultTable(), c.Counts()))
		},
	}
}

func routeRows(table *router.Table, counts map[domain.Kind]int) [][]string {
	var rows [][]string
	for _, e := range table.Entries() {
		kind, items := "-", "-"
		if e.Kind != "" {
			kind = string(e.Kind)
			items = strconv.Itoa(counts[e.Kind])
		}
		key := e.Key
		if key == "" {
			key = "-"
		}
		rows = append(rows, []string{key, e.MenuID, e.Route, e.Label, kind, items})
	}
	return rows
}
