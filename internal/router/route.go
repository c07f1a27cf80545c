package router

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"contentbrowser/internal/domain"
)

// ErrMalformedRoute is returned for routes without a page parameter
var ErrMalformedRoute = errors.New("malformed route")

// Route is the decoded form of a route string
type Route struct {
	View domain.View
	Item string // deep-linked item id, may be empty
}

// String formats the route
func (r Route) String() string {
	if r.Item != "" {
		return FormatItemRoute(r.View, r.Item)
	}
	return FormatRoute(r.View)
}

// FormatRoute returns the route of v, e.g. ?page=/VIDEOS
func FormatRoute(v domain.View) string {
	return "?page=/" + v.String()
}

// FormatItemRoute returns a deep link to one item of v
func FormatItemRoute(v domain.View, id string) string {
	return FormatRoute(v) + "&item=" + url.QueryEscape(id)
}

// ParseRoute decodes ?page=/X[&item=id]. The leading "/", "?" and the
// slash before the view name are optional; "" and "/" mean Home.
func ParseRoute(s string) (Route, error) {
	raw := strings.TrimSpace(s)
	if raw == "" || raw == "/" {
		return Route{View: domain.ViewHome}, nil
	}

	q := strings.TrimPrefix(raw, "/")
	q = strings.TrimPrefix(q, "?")
	values, err := url.ParseQuery(q)
	if err != nil {
		return Route{View: domain.ViewHome}, fmt.Errorf("%w %q: %v", ErrMalformedRoute, s, err)
	}

	page := strings.Trim(values.Get("page"), "/ ")
	if page == "" {
		return Route{View: domain.ViewHome}, fmt.Errorf("%w %q: missing page", ErrMalformedRoute, s)
	}
	v, err := domain.ParseView(page)
	if err != nil {
		return Route{View: domain.ViewHome}, err
	}
	return Route{View: v, Item: values.Get("item")}, nil
}
