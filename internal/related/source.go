// Package related loads secondary content for a selected catalog item:
// blog posts from feeds and catalog entries cross-referencing the item.
// Fetches may block and are only meant to run inside loader tasks.
package related

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"contentbrowser/internal/catalog"
	"contentbrowser/internal/domain"
)

// ErrNoSource is returned for items that have no related content source
var ErrNoSource = errors.New("no related content source")

// Source produces related records for an item
type Source interface {
	Supports(kind domain.Kind) bool
	FetchRelated(ctx context.Context, item domain.Item) ([]domain.Related, error)
}

// crossKinds are searched for references to a person or company
var crossKinds = []domain.Kind{
	domain.KindVideo, domain.KindBlog, domain.KindBook, domain.KindLibrary,
	domain.KindTool, domain.KindTutorial, domain.KindApp, domain.KindNews, domain.KindDownload,
}

// CatalogSource lists the catalog entries referencing a person or company.
// When feeds is set, the posts of referencing blogs are appended.
type CatalogSource struct {
	catalog  catalog.Source
	feeds    *FeedSource
	parallel int
}

// NewCatalogSource creates a source over c; feeds may be nil
func NewCatalogSource(c catalog.Source, feeds *FeedSource) *CatalogSource {
	return &CatalogSource{catalog: c, feeds: feeds, parallel: 4}
}

// Supports reports whether kind can be referenced by other items
func (s *CatalogSource) Supports(kind domain.Kind) bool {
	return kind == domain.KindPerson || kind == domain.KindCompany
}

// FetchRelated returns referencing items in catalog order followed by the
// newest posts of referencing blogs. A failing feed is logged and skipped.
func (s *CatalogSource) FetchRelated(ctx context.Context, item domain.Item) ([]domain.Related, error) {
	if !s.Supports(item.Kind) {
		return nil, fmt.Errorf("%s: %w", item.Ref(), ErrNoSource)
	}

	var out []domain.Related
	var blogs []domain.Item
	for _, kind := range crossKinds {
		for _, it := range s.catalog.Items(kind) {
			if !references(it, item) {
				continue
			}
			ref := it.Ref()
			out = append(out, domain.Related{
				Title:   it.Title,
				Link:    it.URL,
				Date:    it.Date,
				Summary: it.Summary,
				Source:  string(kind),
				Ref:     &ref,
			})
			if kind == domain.KindBlog && it.FeedURL != "" {
				blogs = append(blogs, it)
			}
		}
	}

	if s.feeds == nil || len(blogs) == 0 {
		return out, ctx.Err()
	}

	posts := make([][]domain.Related, len(blogs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i, blog := range blogs {
		g.Go(func() error {
			p, err := s.feeds.Posts(gctx, blog.FeedURL)
			if err != nil {
				slog.Warn("related: feed failed", "blog", blog.ID, "url", blog.FeedURL, "error", err)
				return nil
			}
			posts[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var merged []domain.Related
	for _, p := range posts {
		merged = append(merged, p...)
	}
	SortNewestFirst(merged)
	if s.feeds.maxPosts > 0 && len(merged) > s.feeds.maxPosts {
		merged = merged[:s.feeds.maxPosts]
	}
	return append(out, merged...), nil
}

func references(it, target domain.Item) bool {
	switch target.Kind {
	case domain.KindPerson:
		return slices.Contains(it.PersonIDs, target.ID)
	case domain.KindCompany:
		return it.CompanyID == target.ID
	}
	return false
}

// Composite dispatches to the first source supporting the item's kind
type Composite struct {
	sources []Source
}

// NewComposite combines sources in priority order
func NewComposite(sources ...Source) *Composite {
	return &Composite{sources: sources}
}

// Supports reports whether any source handles kind. Kinds without a source
// are never loaded.
func (c *Composite) Supports(kind domain.Kind) bool {
	return slices.ContainsFunc(c.sources, func(s Source) bool { return s.Supports(kind) })
}

// FetchRelated loads related content through the first supporting source
func (c *Composite) FetchRelated(ctx context.Context, item domain.Item) ([]domain.Related, error) {
	for _, s := range c.sources {
		if s.Supports(item.Kind) {
			return s.FetchRelated(ctx, item)
		}
	}
	return nil, fmt.Errorf("%s: %w", item.Ref(), ErrNoSource)
}
