package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pmarket/pm/internal/render"
	"github.com/pmarket/pm/pkg/pmarket"
)

// LoadState represents the loading state of a view's data.
type LoadState int

const (
	StateLoading LoadState = iota
	StateLoaded
	StateError
)

// EventsModel holds the state for the event list view.
type EventsModel struct {
	State       LoadState
	Events      []pmarket.Event
	Err         error
	LastUpdated time.Time
	Table       table.Model
}

// NewEventsModel creates a new event list model.
func NewEventsModel() *EventsModel {
	cols := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Title", Width: 60},
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(TableStyles())

	return &EventsModel{
		State: StateLoading,
		Table: t,
	}
}

// SetHeight sets the table height.
func (m *EventsModel) SetHeight(height int) {
	m.Table.SetHeight(height)
}

// Update handles messages for the event list view.
func (m *EventsModel) Update(msg tea.Msg) (*EventsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case EventsLoadedMsg:
		m.State = StateLoaded
		m.Events = msg.Events
		m.LastUpdated = time.Now()
		m.Err = nil
		m.updateTable()
		return m, nil

	case EventsErrorMsg:
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m *EventsModel) updateTable() {
	rows := make([]table.Row, 0, len(m.Events))
	for _, e := range m.Events {
		rows = append(rows, table.Row{strconv.FormatUint(uint64(e.ID), 10), e.Title})
	}
	m.Table.SetRows(rows)
	if c := m.Table.Cursor(); c < 0 || c >= len(rows) {
		m.Table.SetCursor(0)
	}
}

// Selected returns the ID of the highlighted event.
func (m *EventsModel) Selected() (uint32, bool) {
	if m.State != StateLoaded {
		return 0, false
	}
	idx := m.Table.Cursor()
	if idx < 0 || idx >= len(m.Events) {
		return 0, false
	}
	return m.Events[idx].ID, true
}

// View renders the event list.
func (m *EventsModel) View() string {
	var b strings.Builder

	switch m.State {
	case StateLoading:
		b.WriteString("Loading events...")

	case StateError:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		b.WriteString("\n\nPress 'r' to retry")

	case StateLoaded:
		if len(m.Events) == 0 {
			b.WriteString(render.LabelStyle.Render("No events"))
			break
		}
		b.WriteString(SummaryStyle.Render("Events"))
		b.WriteString(render.LabelStyle.Render(fmt.Sprintf(" (%d)", len(m.Events))))
		b.WriteString("\n")
		b.WriteString(m.Table.View())
		b.WriteString("\n")
		b.WriteString(render.LabelStyle.Render(fmt.Sprintf("Updated: %s", m.LastUpdated.Format("3:04:05 PM"))))
	}

	return b.String()
}
