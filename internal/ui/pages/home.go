package pages

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"contentbrowser/internal/catalog"
	"contentbrowser/internal/domain"
	"contentbrowser/internal/router"
)

// latestNews is the number of news items on the home page
const latestNews = 5

// HomePage shows what the catalog holds and the latest news
type HomePage struct {
	catalog *catalog.Catalog
	entries []router.Entry
}

// NewHomePage creates the home page. Without entries the default menu is used.
func NewHomePage(c *catalog.Catalog, entries []router.Entry) *HomePage {
	if len(entries) == 0 {
		entries = router.DefaultEntries()
	}
	return &HomePage{catalog: c, entries: entries}
}

func (p *HomePage) View() domain.View {
	return domain.ViewHome
}

func (p *HomePage) Close() {}

// Markdown renders the page from the current catalog contents
func (p *HomePage) Markdown() string {
	var b strings.Builder
	b.WriteString("# JavaFX Content Browser\n\n")
	b.WriteString("Use `tab` or the number keys to switch sections, `/` to search and `f` to filter.\n\n")

	counts := p.catalog.Counts()
	b.WriteString("## Catalog\n\n| Key | Section | Items |\n|---|---|---:|\n")
	for _, e := range p.entries {
		if e.Kind == "" {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %d |\n", e.Key, e.Label, counts[e.Kind])
	}

	news := p.LatestNews(latestNews)
	if len(news) > 0 {
		b.WriteString("\n## Latest News\n\n")
		for _, it := range news {
			date := "undated"
			if !it.Date.IsZero() {
				date = it.Date.Format("2006-01-02")
			}
			fmt.Fprintf(&b, "- **%s** %s\n", date, it.Title)
		}
	}
	return b.String()
}

// LatestNews returns up to n news items, newest first
func (p *HomePage) LatestNews(n int) []domain.Item {
	news := p.catalog.Items(domain.KindNews)
	slices.SortStableFunc(news, func(a, b domain.Item) int {
		return cmp.Compare(b.Date.Unix(), a.Date.Unix())
	})
	if len(news) > n {
		news = news[:n]
	}
	return news
}
