package domain

import (
	"errors"
	"fmt"
	"strings"
)

// View is one of the fixed top-level sections of the browser
type View int

const (
	ViewHome View = iota
	ViewNews
	ViewOpenJFX
	ViewRealWorld
	ViewPeople
	ViewCompanies
	ViewBlogs
	ViewVideos
	ViewBooks
	ViewTools
	ViewLibraries
	ViewTutorials
	ViewDownloads
	viewCount
)

var viewNames = [...]string{
	ViewHome:      "HOME",
	ViewNews:      "NEWS",
	ViewOpenJFX:   "OPENJFX",
	ViewRealWorld: "REAL_WORLD",
	ViewPeople:    "PEOPLE",
	ViewCompanies: "COMPANIES",
	ViewBlogs:     "BLOGS",
	ViewVideos:    "VIDEOS",
	ViewBooks:     "BOOKS",
	ViewTools:     "TOOLS",
	ViewLibraries: "LIBRARIES",
	ViewTutorials: "TUTORIALS",
	ViewDownloads: "DOWNLOADS",
}

// ErrInvalidView is matched by errors.Is for any InvalidViewError
var ErrInvalidView = errors.New("invalid view")

// InvalidViewError reports a value outside the View enumeration
type InvalidViewError struct {
	Value string
}

func (e *InvalidViewError) Error() string {
	return fmt.Sprintf("invalid view %q", e.Value)
}

func (e *InvalidViewError) Is(target error) bool {
	return target == ErrInvalidView
}

// Views returns all views in menu order
func Views() []View {
	views := make([]View, 0, viewCount)
	for v := ViewHome; v < viewCount; v++ {
		views = append(views, v)
	}
	return views
}

// Valid reports whether v is a member of the enumeration
func (v View) Valid() bool {
	return v >= ViewHome && v < viewCount
}

func (v View) String() string {
	if !v.Valid() {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// Validate returns an InvalidViewError for values outside the enumeration
func (v View) Validate() error {
	if !v.Valid() {
		return &InvalidViewError{Value: v.String()}
	}
	return nil
}

// ParseView resolves a view name case-insensitively
func ParseView(s string) (View, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "-", "_")
	for v, n := range viewNames {
		if n == name {
			return View(v), nil
		}
	}
	return ViewHome, &InvalidViewError{Value: s}
}

// Display is the device/layout class propagated to pages
type Display int

const (
	DisplayDesktop Display = iota
	DisplayWeb
	DisplayTablet
	DisplayPhone
)

func (d Display) String() string {
	switch d {
	case DisplayDesktop:
		return "desktop"
	case DisplayWeb:
		return "web"
	case DisplayTablet:
		return "tablet"
	case DisplayPhone:
		return "phone"
	default:
		return fmt.Sprintf("Display(%d)", int(d))
	}
}

// Wide reports whether the display class supports the expanded menu
func (d Display) Wide() bool {
	return d == DisplayDesktop || d == DisplayWeb
}

// ParseDisplay resolves a display class name
func ParseDisplay(s string) (Display, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desktop":
		return DisplayDesktop, nil
	case "web":
		return DisplayWeb, nil
	case "tablet":
		return DisplayTablet, nil
	case "phone":
		return DisplayPhone, nil
	}
	return DisplayDesktop, fmt.Errorf("unknown display %q", s)
}
