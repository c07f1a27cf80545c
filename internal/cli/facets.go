package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"contentbrowser/internal/catalog"
	"contentbrowser/internal/facet"
	"contentbrowser/internal/router"
)

func newFacetsCommand(opts *options) *cobra.Command {
	var (
		search  string
		sort    string
		filters []string
	)

	cmd := &cobra.Command{
		Use:   "facets <route-or-view>",
		Short: "Show the filter groups and filtered items of a view",
		Long: `Derive the filter groups of a catalog view, apply a search and filters,
and print the groups with their counts followed by the matching items.

Examples:
  contentbrowser facets VIDEOS
  contentbrowser facets '?page=/VIDEOS' --filter Event=Devoxx --filter Type=Talk
  contentbrowser facets blogs --search fx --sort title`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := resolveView(args[0])
			if err != nil {
				return err
			}
			entry, ok := router.DefaultTable().Lookup(v)
			if !ok || entry.Kind == "" {
				return fmt.Errorf("view %s lists no catalog items", v)
			}

			active, err := parseFilters(filters)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			items, err := catalogItems(cfg.Catalog)
			if err != nil {
				return err
			}
			c := catalog.New(nil)
			engine := facet.NewEngine(c, entry.Kind, facet.SpecsFor(entry.Kind))
			engine.Watch(c)
			defer engine.Close()
			c.Load(items)

			p := newPrinter(cmd.OutOrStdout())
			for _, group := range active.order {
				labels := active.labels[group]
				snap := engine.SetActive(group, labels...)
				for _, l := range labels {
					if !snap.IsActive(group, l) {
						p.Warning("no filter %s=%s in %s", group, l, v)
					}
				}
			}
			engine.SetSort(facet.ParseSortMode(sort))
			snap := engine.SetQuery(search)

			if err := printGroups(p, snap); err != nil {
				return err
			}
			p.Header(fmt.Sprintf("%s: %d of %d items", entry.Label, len(snap.Items), snap.Total))
			rows := make([][]string, 0, len(snap.Items))
			for _, it := range snap.Items {
				date := "-"
				if !it.Date.IsZero() {
					date = it.Date.Format("2006-01-02")
				}
				rows = append(rows, []string{it.ID, it.Title, date})
			}
			return p.Table([]string{"ID", "TITLE", "DATE"}, rows)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "free-text search")
	cmd.Flags().StringVar(&sort, "sort", "catalog", "sort order: catalog, title or newest")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "activate a filter, Group=Label (repeatable)")
	return cmd
}

// filterSet keeps --filter values grouped, in first-seen group order
type filterSet struct {
	order  []string
	labels map[string][]string
}

func parseFilters(values []string) (filterSet, error) {
	set := filterSet{labels: make(map[string][]string)}
	for _, v := range values {
		group, label, ok := strings.Cut(v, "=")
		group, label = strings.TrimSpace(group), strings.TrimSpace(label)
		if !ok || group == "" || label == "" {
			return filterSet{}, fmt.Errorf("invalid filter %q, want Group=Label", v)
		}
		if _, seen := set.labels[group]; !seen {
			set.order = append(set.order, group)
		}
		set.labels[group] = append(set.labels[group], label)
	}
	return set, nil
}

func printGroups(p *printer, snap *facet.Snapshot) error {
	for _, g := range snap.Groups {
		p.Header(g.Name)
		rows := make([][]string, 0, len(g.Filters))
		for _, f := range g.Filters {
			mark := "[ ]"
			if snap.IsActive(g.Name, f.Label) {
				mark = "[x]"
			}
			rows = append(rows, []string{mark, f.Label, strconv.Itoa(snap.Counts[g.Name][f.Label])})
		}
		if len(rows) == 0 {
			p.Print("%s", p.Dim("  (no values)"))
			continue
		}
		if err := p.Table([]string{"", "FILTER", "COUNT"}, rows); err != nil {
			return fmt.Errorf("printing %s filters: %w", g.Name, err)
		}
	}
	return nil
}
