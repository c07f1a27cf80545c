package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	MenuItem     lipgloss.Style
	MenuActive   lipgloss.Style
	MenuKey      lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	Route        lipgloss.Style
	Filter       lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
	Scroll       lipgloss.Style
	Highlight    lipgloss.Style
	Cursor       lipgloss.Style
	Selected     lipgloss.Style
	GroupHeader  lipgloss.Style
	FacetActive  lipgloss.Style
	FacetCount   lipgloss.Style
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	Section      lipgloss.Style
	StatusError  lipgloss.Style
	Loading      lipgloss.Style
	InfoBox      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		MenuItem:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1),
		MenuActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1),
		MenuKey:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:        lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Route:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Filter:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:      lipgloss.NewStyle().Faint(true),
		Main:      lipgloss.NewStyle().Padding(0, 1),
		Scroll:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Cursor:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
		GroupHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		FacetActive: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		FacetCount:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		PanelFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Loading:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("241")),
	}
}
