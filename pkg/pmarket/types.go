// Package pmarket provides the wire types and error taxonomy for the
// prediction market trading API.
//
// This package can be imported by external projects that want to talk to a
// prediction market server without going through the pm CLI.
package pmarket

import (
	"time"
)

// =============================================================================
// Event Types
// =============================================================================

// Event is the list-view form of a market topic.
type Event struct {
	ID    uint32 `json:"id"`
	Title string `json:"title"`
}

// EventDetail is the detail-view form of an event, including its stocks.
// Timestamps are always UTC.
type EventDetail struct {
	ID          uint32         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Created     time.Time      `json:"created"`
	Opens       time.Time      `json:"opens"`
	Closes      time.Time      `json:"closes"`
	Stocks      []StockSummary `json:"stocks"`
}

// StockSummary is a stock as nested inside an event detail.
type StockSummary struct {
	ID    uint32 `json:"id"`
	Title string `json:"title"`
	Price uint8  `json:"price"`
}

// Normalize converts all timestamps to UTC and checks that the event window
// is well formed (opens <= closes).
func (e *EventDetail) Normalize() error {
	e.Created = e.Created.UTC()
	e.Opens = e.Opens.UTC()
	e.Closes = e.Closes.UTC()
	if e.Closes.Before(e.Opens) {
		return &WindowError{Opens: e.Opens, Closes: e.Closes}
	}
	return nil
}

// =============================================================================
// Stock Types
// =============================================================================

// Stock is a tradable outcome within an event, with its aggregated order book.
type Stock struct {
	ID      uint32     `json:"id"`
	EventID uint32     `json:"event_id"`
	Title   string     `json:"title"`
	Price   uint8      `json:"price"`
	Asks    []PriceBin `json:"asks"`
	Bids    []PriceBin `json:"bids"`
}

// PriceBin is one aggregated order book level.
type PriceBin struct {
	Price uint8  `json:"price"`
	Count uint32 `json:"count"`
}

// =============================================================================
// Order Types
// =============================================================================

// BuyOrder is the request body for placing a buy order against a stock.
type BuyOrder struct {
	Price uint8  `json:"price"`
	Count uint32 `json:"count"`
}

// =============================================================================
// Account and Admin Types
// =============================================================================

// Credentials is the request body for signup and signin.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateEventRequest is the request body for creating an event.
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Opens       time.Time `json:"opens"`
	Closes      time.Time `json:"closes"`
}

// CreateStockRequest is the request body for creating a stock.
type CreateStockRequest struct {
	Title   string `json:"title"`
	EventID uint32 `json:"event_id"`
}
