package tui

import (
	"time"

	"github.com/mmcdole/salat/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// StartedMsg signals that the orchestrator finished its startup ladder
type StartedMsg struct{}

// TickMsg drives the clock and countdown refresh
type TickMsg time.Time

// LocationSelectedMsg signals that a saved location became active
type LocationSelectedMsg struct {
	Location domain.Location
}

// LocationAddedMsg signals that a searched city was saved and activated
type LocationAddedMsg struct {
	Location domain.Location
}

// LocationRemovedMsg signals that a saved city was removed
type LocationRemovedMsg struct {
	City string
}

// RefreshedMsg signals that a manual retry completed
type RefreshedMsg struct{}
