package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pmarket/pm/internal/render"
	"github.com/pmarket/pm/pkg/pmarket"
)

// EventModel holds the state for a single event and its stocks.
type EventModel struct {
	ID    uint32
	State LoadState
	Event *pmarket.EventDetail
	Err   error
	Table table.Model
}

// NewEventModel creates a new event detail model.
func NewEventModel() *EventModel {
	cols := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Price", Width: 7},
		{Title: "Name", Width: 50},
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(TableStyles())

	return &EventModel{Table: t}
}

// Load resets the model to show event id once it arrives.
func (m *EventModel) Load(id uint32) {
	m.ID = id
	m.State = StateLoading
	m.Event = nil
	m.Err = nil
	m.Table.SetRows(nil)
}

// SetHeight sets the table height.
func (m *EventModel) SetHeight(height int) {
	m.Table.SetHeight(height)
}

// Update handles messages for the event view. Responses for an event other
// than the current one are dropped.
func (m *EventModel) Update(msg tea.Msg) (*EventModel, tea.Cmd) {
	switch msg := msg.(type) {
	case EventLoadedMsg:
		if msg.Event == nil || msg.Event.ID != m.ID {
			return m, nil
		}
		fresh := m.Event == nil
		m.State = StateLoaded
		m.Event = msg.Event
		m.Err = nil
		m.updateTable(fresh)
		return m, nil

	case EventErrorMsg:
		if msg.ID != m.ID {
			return m, nil
		}
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

// updateTable replaces the stock rows. The cursor goes back to the first row
// for a newly opened event and is kept across refreshes while still in range.
func (m *EventModel) updateTable(fresh bool) {
	rows := make([]table.Row, 0, len(m.Event.Stocks))
	for _, s := range m.Event.Stocks {
		rows = append(rows, table.Row{
			strconv.FormatUint(uint64(s.ID), 10),
			pmarket.FormatCents(s.Price),
			s.Title,
		})
	}
	m.Table.SetRows(rows)
	if c := m.Table.Cursor(); fresh || c < 0 || c >= len(rows) {
		m.Table.SetCursor(0)
	}
}

// Selected returns the ID of the highlighted stock.
func (m *EventModel) Selected() (uint32, bool) {
	if m.State != StateLoaded {
		return 0, false
	}
	idx := m.Table.Cursor()
	if idx < 0 || idx >= len(m.Event.Stocks) {
		return 0, false
	}
	return m.Event.Stocks[idx].ID, true
}

// View renders the event header and its stocks.
func (m *EventModel) View() string {
	var b strings.Builder

	switch m.State {
	case StateLoading:
		b.WriteString(fmt.Sprintf("Loading event %d...", m.ID))

	case StateError:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		b.WriteString("\n\nPress 'r' to retry, esc to go back")

	case StateLoaded:
		e := m.Event
		b.WriteString(render.TitleStyle.Render(e.Title))
		b.WriteString("\n")
		b.WriteString(render.LabelStyle.Render("Opens: "))
		b.WriteString(e.Opens.Format(render.DateLayout))
		b.WriteString("  ")
		b.WriteString(render.LabelStyle.Render("Closes: "))
		b.WriteString(e.Closes.Format(render.DateLayout))
		b.WriteString("\n")
		if e.Description != "" {
			b.WriteString(e.Description)
			b.WriteString("\n")
		}
		b.WriteString("\n")

		if len(e.Stocks) == 0 {
			b.WriteString(render.LabelStyle.Render("No stocks"))
		} else {
			b.WriteString(m.Table.View())
		}
	}

	return b.String()
}
