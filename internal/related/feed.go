package related

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/mmcdole/gofeed"

	"contentbrowser/internal/domain"
)

// FeedOptions configures a FeedSource
type FeedOptions struct {
	Client       *http.Client
	HostInterval time.Duration
	CacheSize    int
	CacheTTL     time.Duration
	MaxPosts     int
}

// FeedSource loads the posts of a blog from its RSS/Atom feed
type FeedSource struct {
	client   *http.Client
	limiter  *HostLimiter
	cache    *expirable.LRU[string, []domain.Related]
	maxPosts int
}

// NewFeedSource creates a feed source. Zero options fall back to sane defaults.
func NewFeedSource(opts FeedOptions) *FeedSource {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 64
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 15 * time.Minute
	}
	return &FeedSource{
		client:   opts.Client,
		limiter:  NewHostLimiter(opts.HostInterval),
		cache:    expirable.NewLRU[string, []domain.Related](opts.CacheSize, nil, opts.CacheTTL),
		maxPosts: opts.MaxPosts,
	}
}

// Supports reports whether kind has a feed
func (f *FeedSource) Supports(kind domain.Kind) bool {
	return kind == domain.KindBlog
}

// FetchRelated returns the posts of a blog, newest first
func (f *FeedSource) FetchRelated(ctx context.Context, item domain.Item) ([]domain.Related, error) {
	if item.FeedURL == "" {
		return nil, fmt.Errorf("%s has no feed: %w", item.Ref(), ErrNoSource)
	}
	return f.Posts(ctx, item.FeedURL)
}

// Posts fetches and parses feedURL. Results are cached per URL.
func (f *FeedSource) Posts(ctx context.Context, feedURL string) ([]domain.Related, error) {
	if posts, ok := f.cache.Get(feedURL); ok {
		slog.Debug("related: feed cache hit", "url", feedURL)
		return slices.Clone(posts), nil
	}

	if err := f.limiter.Wait(ctx, feedURL); err != nil {
		return nil, fmt.Errorf("rate limiting %s: %w", feedURL, err)
	}

	fp := gofeed.NewParser()
	fp.Client = f.client
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, fmt.Errorf("fetching %s: %w", feedURL, httpErr)
		}
		return nil, fmt.Errorf("parsing %s: %w", feedURL, err)
	}
	slog.Info("related: feed loaded", "url", feedURL, "title", feed.Title, "items", len(feed.Items))

	posts := make([]domain.Related, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		posts = append(posts, domain.Related{
			Title:   strings.TrimSpace(it.Title),
			Link:    it.Link,
			Date:    published(it),
			Summary: strings.TrimSpace(it.Description),
			Source:  feed.Title,
		})
	}
	SortNewestFirst(posts)
	if f.maxPosts > 0 && len(posts) > f.maxPosts {
		posts = posts[:f.maxPosts]
	}

	f.cache.Add(feedURL, posts)
	return slices.Clone(posts), nil
}

func published(it *gofeed.Item) time.Time {
	switch {
	case it.PublishedParsed != nil:
		return *it.PublishedParsed
	case it.UpdatedParsed != nil:
		return *it.UpdatedParsed
	}
	return time.Time{}
}

// SortNewestFirst orders records by date, undated ones last
func SortNewestFirst(records []domain.Related) {
	slices.SortStableFunc(records, func(a, b domain.Related) int {
		switch {
		case a.Date.IsZero() && b.Date.IsZero():
			return 0
		case a.Date.IsZero():
			return 1
		case b.Date.IsZero():
			return -1
		}
		return b.Date.Compare(a.Date)
	})
}
