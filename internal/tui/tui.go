// Package tui implements a read-only terminal browser for events and stocks.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pmarket/pm/internal/render"
)

// View represents the current active view in the TUI.
type View int

const (
	ViewEvents View = iota
	ViewEvent
	ViewStock
)

// DefaultRefreshInterval is how often the active view reloads.
const DefaultRefreshInterval = 30 * time.Second

// Model is the main bubbletea model for the TUI.
type Model struct {
	currentView View
	width       int
	height      int
	ready       bool

	market Market

	events *EventsModel
	event  *EventModel
	stock  *StockModel

	refreshInterval time.Duration
}

// New creates a new TUI model.
func New(market Market) Model {
	return Model{
		currentView:     ViewEvents,
		market:          market,
		events:          NewEventsModel(),
		event:           NewEventModel(),
		stock:           NewStockModel(),
		refreshInterval: DefaultRefreshInterval,
	}
}

// CurrentView returns the active view.
func (m Model) CurrentView() View {
	return m.currentView
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(FetchEvents(m.market), m.tickCmd())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			m.back()
			return m, nil
		case "enter":
			cmd = m.drillDown()
			return m, cmd
		case "r":
			cmd = m.refresh()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// header, footer, content padding and the view's own heading
		tableHeight := m.height - 1 - 1 - 2 - 6
		if tableHeight < 3 {
			tableHeight = 3
		}
		m.events.SetHeight(tableHeight)
		m.event.SetHeight(tableHeight)
		return m, nil

	case EventsLoadedMsg, EventsErrorMsg:
		m.events, cmd = m.events.Update(msg)
		return m, cmd

	case EventLoadedMsg, EventErrorMsg:
		m.event, cmd = m.event.Update(msg)
		return m, cmd

	case StockLoadedMsg, StockErrorMsg:
		m.stock = m.stock.Update(msg)
		return m, nil

	case TickMsg:
		return m, tea.Batch(m.autoRefresh(), m.tickCmd())
	}

	// Remaining keys drive the active table.
	switch m.currentView {
	case ViewEvents:
		m.events, cmd = m.events.Update(msg)
	case ViewEvent:
		m.event, cmd = m.event.Update(msg)
	}
	return m, cmd
}

func (m *Model) back() {
	switch m.currentView {
	case ViewStock:
		m.currentView = ViewEvent
	case ViewEvent:
		m.currentView = ViewEvents
	}
}

func (m *Model) drillDown() tea.Cmd {
	switch m.currentView {
	case ViewEvents:
		id, ok := m.events.Selected()
		if !ok {
			return nil
		}
		m.event.Load(id)
		m.currentView = ViewEvent
		return FetchEvent(m.market, id)

	case ViewEvent:
		id, ok := m.event.Selected()
		if !ok {
			return nil
		}
		m.stock.Load(id)
		m.currentView = ViewStock
		return FetchStock(m.market, id)
	}
	return nil
}

func (m *Model) refresh() tea.Cmd {
	switch m.currentView {
	case ViewEvents:
		m.events.State = StateLoading
		return FetchEvents(m.market)
	case ViewEvent:
		m.event.State = StateLoading
		return FetchEvent(m.market, m.event.ID)
	case ViewStock:
		m.stock.State = StateLoading
		return FetchStock(m.market, m.stock.ID)
	}
	return nil
}

// autoRefresh reloads the active view in the background, keeping the
// current contents on screen until the response arrives.
func (m Model) autoRefresh() tea.Cmd {
	switch m.currentView {
	case ViewEvents:
		if m.events.State != StateLoading {
			return FetchEvents(m.market)
		}
	case ViewEvent:
		if m.event.State == StateLoaded {
			return FetchEvent(m.market, m.event.ID)
		}
	case ViewStock:
		if m.stock.State == StateLoaded {
			return FetchStock(m.market, m.stock.ID)
		}
	}
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	content := m.renderContent()

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)

	contentLines := strings.Split(content, "\n")
	for len(contentLines) < contentHeight {
		contentLines = append(contentLines, "")
	}
	if contentHeight > 0 && len(contentLines) > contentHeight {
		contentLines = contentLines[:contentHeight]
	}
	content = strings.Join(contentLines, "\n")

	return header + "\n" + content + "\n" + footer
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("pm")

	crumbs := []struct {
		name   string
		active bool
	}{
		{"Events", m.currentView == ViewEvents},
	}
	if m.currentView >= ViewEvent {
		crumbs = append(crumbs, struct {
			name   string
			active bool
		}{fmt.Sprintf("Event %d", m.event.ID), m.currentView == ViewEvent})
	}
	if m.currentView == ViewStock {
		crumbs = append(crumbs, struct {
			name   string
			active bool
		}{fmt.Sprintf("Stock %d", m.stock.ID), true})
	}

	var parts []string
	for _, c := range crumbs {
		style := lipgloss.NewStyle().Padding(0, 1)
		if c.active {
			style = style.Bold(true).Foreground(render.ColorPrimary)
		} else {
			style = style.Foreground(render.ColorMuted)
		}
		parts = append(parts, style.Render(c.name))
	}

	headerContent := title + "  " + strings.Join(parts, ">")

	padding := m.width - lipgloss.Width(headerContent)
	if padding > 0 {
		headerContent += strings.Repeat(" ", padding)
	}

	return lipgloss.NewStyle().
		Background(ColorBackground).
		Width(m.width).
		Render(headerContent)
}

func (m Model) renderContent() string {
	var content string
	switch m.currentView {
	case ViewEvents:
		content = m.events.View()
	case ViewEvent:
		content = m.event.View()
	case ViewStock:
		content = m.stock.View()
	}
	return ContentStyle.Render(content)
}

func (m Model) renderFooter() string {
	type hint struct{ key, desc string }

	var keys []hint
	switch m.currentView {
	case ViewEvents:
		keys = append(keys, hint{"↑/↓", "navigate"}, hint{"enter", "open"})
	case ViewEvent:
		keys = append(keys, hint{"↑/↓", "navigate"}, hint{"enter", "open"}, hint{"esc", "back"})
	case ViewStock:
		keys = append(keys, hint{"esc", "back"})
	}
	keys = append(keys, hint{"r", "refresh"}, hint{"q", "quit"})

	var parts []string
	for _, k := range keys {
		parts = append(parts, KeyStyle.Render(k.key)+" "+DescStyle.Render(k.desc))
	}

	footerContent := strings.Join(parts, "  •  ")

	padding := m.width - lipgloss.Width(footerContent)
	if padding > 0 {
		footerContent += strings.Repeat(" ", padding)
	}

	return lipgloss.NewStyle().
		Background(ColorBackground).
		Width(m.width).
		Render(footerContent)
}
