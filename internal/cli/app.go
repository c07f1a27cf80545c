package cli

import (
	"fmt"
	"log/slog"

	"contentbrowser/internal/catalog"
	"contentbrowser/internal/config"
	"contentbrowser/internal/domain"
	"contentbrowser/internal/eventbus"
	"contentbrowser/internal/related"
	"contentbrowser/internal/router"
	"contentbrowser/internal/ui/pages"
)

// app holds the collaborators shared by the TUI and the subcommands
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	related related.Source // nil when related content is disabled
	table   *router.Table
}

// newApp loads the catalog and binds the page factories. bus may be nil.
func newApp(cfg *config.Config, bus eventbus.EventBus) (*app, error) {
	items, err := catalogItems(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	c := catalog.New(bus)
	c.Load(items)
	slog.Info("catalog loaded", "path", cfg.Catalog, "items", len(items))

	a := &app{cfg: cfg, catalog: c, table: router.DefaultTable()}
	if cfg.Related.Enabled {
		feeds := related.NewFeedSource(related.FeedOptions{
			HostInterval: cfg.Related.HostInterval.Std(),
			CacheSize:    cfg.Related.CacheSize,
			CacheTTL:     cfg.Related.CacheTTL.Std(),
			MaxPosts:     cfg.Related.MaxPosts,
		})
		a.related = related.NewComposite(feeds, related.NewCatalogSource(c, feeds))
	}

	a.table.Bind(pages.Factory(pages.Deps{
		Catalog:  c,
		Related:  a.related,
		PageSize: cfg.UISettings.PageSize,
		Timeout:  cfg.Related.Timeout.Std(),
		Entries:  a.table.Entries(),
	}))
	return a, nil
}

// newRouter creates a router over the app's table
func (a *app) newRouter(bus eventbus.EventBus) *router.Router {
	return router.New(a.table, router.Options{
		ReusePages: a.cfg.UISettings.ReusePages,
		Display:    a.cfg.DisplayClass(),
		Bus:        bus,
	})
}

// reloadCatalog re-reads the configured catalog file
func (a *app) reloadCatalog() error {
	items, err := catalogItems(a.cfg.Catalog)
	if err != nil {
		return err
	}
	a.catalog.Load(items)
	slog.Info("catalog reloaded", "path", a.cfg.Catalog, "items", len(items))
	return nil
}

func catalogItems(path string) ([]domain.Item, error) {
	if path == "" {
		return catalog.Sample(), nil
	}
	items, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return items, nil
}

// resolveView accepts a route ("?page=/VIDEOS") or a bare view name ("videos")
func resolveView(s string) (domain.View, error) {
	if v, err := domain.ParseView(s); err == nil {
		return v, nil
	}
	r, err := router.ParseRoute(s)
	if err != nil {
		return domain.ViewHome, err
	}
	return r.View, nil
}
