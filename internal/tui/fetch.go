package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pmarket/pm/pkg/pmarket"
)

// Market is the read-only part of the API client the UI needs.
type Market interface {
	ListEvents(ctx context.Context) ([]pmarket.Event, error)
	GetEvent(ctx context.Context, id uint32) (*pmarket.EventDetail, error)
	GetStock(ctx context.Context, id uint32) (*pmarket.Stock, error)
}

// FetchEvents returns a command that loads the event list.
func FetchEvents(market Market) tea.Cmd {
	return func() tea.Msg {
		events, err := market.ListEvents(context.Background())
		if err != nil {
			return EventsErrorMsg{Err: err}
		}
		return EventsLoadedMsg{Events: events}
	}
}

// FetchEvent returns a command that loads one event.
func FetchEvent(market Market, id uint32) tea.Cmd {
	return func() tea.Msg {
		event, err := market.GetEvent(context.Background(), id)
		if err != nil {
			return EventErrorMsg{ID: id, Err: err}
		}
		return EventLoadedMsg{Event: event}
	}
}

// FetchStock returns a command that loads a stock and then its event.
func FetchStock(market Market, id uint32) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		stock, err := market.GetStock(ctx, id)
		if err != nil {
			return StockErrorMsg{ID: id, Err: err}
		}
		event, err := market.GetEvent(ctx, stock.EventID)
		if err != nil {
			return StockErrorMsg{ID: id, Err: err}
		}
		return StockLoadedMsg{Stock: stock, Event: event}
	}
}
