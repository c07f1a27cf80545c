package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"contentbrowser/internal/eventbus"
	"contentbrowser/internal/ui"
)

// e2eEnv makes the binary announce when the UI is about to start
const e2eEnv = "CONTENTBROWSER_E2E_TEST"

// forwardedEvents are the domain events the UI reacts to
var forwardedEvents = []eventbus.EventType{
	eventbus.EventCatalogChanged,
	eventbus.EventItemOpened,
	eventbus.EventDisplayChanged,
	eventbus.EventRelatedLoaded,
	eventbus.EventViewChanged,
	eventbus.EventError,
	eventbus.EventConfigSaved,
}

func runTUI(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	bus := eventbus.New()
	defer bus.Close()

	a, err := newApp(cfg, bus)
	if err != nil {
		return err
	}

	r := a.newRouter(bus)
	start := r.Navigate(cfg.StartRoute)
	slog.Info("starting UI", "route", r.Route(), "view", start, "display", cfg.DisplayClass())

	model := ui.NewModel(bus, cfg, r)
	if cfg.Catalog != "" {
		model.SetCatalogReloader(a.reloadCatalog)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	model.SetProgram(p)

	// handlers run on the bus goroutine; Send hands the event to the UI loop
	for _, t := range forwardedEvents {
		unsubscribe := bus.Subscribe(t, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
		defer unsubscribe()
	}

	bus.Publish(eventbus.AppReadyEvent{Route: r.Route()})
	if os.Getenv(e2eEnv) == "1" {
		fmt.Fprintln(cmd.OutOrStdout(), "__READY__")
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
			slog.Info("UI interrupted")
			return nil
		}
		slog.Error("error running program", "error", err)
		return fmt.Errorf("running UI: %w", err)
	}
	slog.Info("UI exited normally")
	return nil
}
