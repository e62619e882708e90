package tui

import (
	"time"

	"github.com/pmarket/pm/pkg/pmarket"
)

// Message types for async operations

// EventsLoadedMsg is sent when the event list is loaded.
type EventsLoadedMsg struct {
	Events []pmarket.Event
}

// EventsErrorMsg is sent when loading the event list fails.
type EventsErrorMsg struct {
	Err error
}

// EventLoadedMsg is sent when an event's details are loaded.
type EventLoadedMsg struct {
	Event *pmarket.EventDetail
}

// EventErrorMsg is sent when loading an event fails.
type EventErrorMsg struct {
	ID  uint32
	Err error
}

// StockLoadedMsg is sent when a stock and its parent event are loaded.
type StockLoadedMsg struct {
	Stock *pmarket.Stock
	Event *pmarket.EventDetail
}

// StockErrorMsg is sent when loading a stock fails.
type StockErrorMsg struct {
	ID  uint32
	Err error
}

// TickMsg is sent periodically for auto-refresh.
type TickMsg time.Time
