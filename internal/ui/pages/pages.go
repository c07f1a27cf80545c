// Package pages holds the content attached by the router for each view.
package pages

import (
	"time"

	"contentbrowser/internal/catalog"
	"contentbrowser/internal/domain"
	"contentbrowser/internal/related"
	"contentbrowser/internal/router"
)

// Deps are the collaborators shared by all pages
type Deps struct {
	Catalog  *catalog.Catalog
	Related  related.Source // nil disables related content
	PageSize int
	Timeout  time.Duration
	Entries  []router.Entry // menu entries listed on the home page
}

// MarkdownPage is a page whose whole body is a markdown document
type MarkdownPage interface {
	router.Page
	Markdown() string
}

// Factory returns the router factory building the page of each entry:
// catalog pages for entries owning a kind, static pages otherwise.
func Factory(deps Deps) router.Factory {
	return func(e router.Entry) (router.Page, error) {
		switch {
		case e.View == domain.ViewHome:
			return NewHomePage(deps.Catalog, deps.Entries), nil
		case e.View == domain.ViewOpenJFX:
			return NewInfoPage(e.View), nil
		case e.Kind != "":
			return NewCatalogPage(e, deps), nil
		}
		return NewInfoPage(e.View), nil
	}
}
