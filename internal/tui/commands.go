package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/salat/internal/app"
	"github.com/mmcdole/salat/internal/domain"
)

const fetchTimeout = 30 * time.Second

// Command factories for async operations

// StartCmd runs the orchestrator startup ladder
func StartCmd(orch *app.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		orch.Start(ctx)
		return StartedMsg{}
	}
}

// TickCmd schedules the next 1-second tick
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SelectLocationCmd activates a saved location and refreshes its schedule
func SelectLocationCmd(orch *app.Orchestrator, loc domain.Location) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if err := orch.SelectLocation(ctx, loc); err != nil {
			return ErrMsg{Err: err, Context: "refreshing " + loc.DisplayName()}
		}
		return LocationSelectedMsg{Location: loc}
	}
}

// AddLocationCmd resolves a city query and saves it
func AddLocationCmd(orch *app.Orchestrator, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		loc, err := orch.AddLocation(ctx, query)
		if err != nil {
			if errors.Is(err, domain.ErrLocationNotFound) {
				return ErrMsg{Err: err, Context: "no match for " + query}
			}
			return ErrMsg{Err: err, Context: "adding location"}
		}
		return LocationAddedMsg{Location: loc}
	}
}

// RemoveLocationCmd drops a saved city
func RemoveLocationCmd(orch *app.Orchestrator, city string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		orch.RemoveLocation(ctx, city)
		return LocationRemovedMsg{City: city}
	}
}

// RetryCmd re-fetches the schedule for the active location
func RetryCmd(orch *app.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if err := orch.Retry(ctx); err != nil {
			return ErrMsg{Err: err, Context: "refreshing schedule"}
		}
		return RefreshedMsg{}
	}
}
