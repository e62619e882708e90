package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pmarket/pm/internal/render"
	"github.com/pmarket/pm/pkg/pmarket"
)

// StockModel holds the state for a stock's order book.
type StockModel struct {
	ID    uint32
	State LoadState
	Stock *pmarket.Stock
	Event *pmarket.EventDetail
	Err   error
}

// NewStockModel creates a new stock model.
func NewStockModel() *StockModel {
	return &StockModel{}
}

// Load resets the model to show stock id once it arrives.
func (m *StockModel) Load(id uint32) {
	m.ID = id
	m.State = StateLoading
	m.Stock = nil
	m.Event = nil
	m.Err = nil
}

// Update handles load results for the current stock.
func (m *StockModel) Update(msg tea.Msg) *StockModel {
	switch msg := msg.(type) {
	case StockLoadedMsg:
		if msg.Stock == nil || msg.Stock.ID != m.ID {
			return m
		}
		m.State = StateLoaded
		m.Stock = msg.Stock
		m.Event = msg.Event
		m.Err = nil

	case StockErrorMsg:
		if msg.ID != m.ID {
			return m
		}
		m.State = StateError
		m.Err = msg.Err
	}
	return m
}

// View renders the stock with asks and bids side by side.
func (m *StockModel) View() string {
	switch m.State {
	case StateLoading:
		return fmt.Sprintf("Loading stock %d...", m.ID)
	case StateError:
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err)) + "\n\nPress 'r' to retry, esc to go back"
	}

	var b strings.Builder
	b.WriteString(render.LabelStyle.Render("Event: "))
	b.WriteString(render.TitleStyle.Render(m.Event.Title))
	b.WriteString("\n")
	b.WriteString(render.LabelStyle.Render("Stock: "))
	b.WriteString(render.TitleStyle.Render(m.Stock.Title))
	b.WriteString("  ")
	b.WriteString(render.LabelStyle.Render("Last: "))
	b.WriteString(render.MoneyStyle.Render(pmarket.FormatCents(m.Stock.Price)))
	b.WriteString("\n\n")

	asks := bookColumn("Offers to sell", m.Stock.Asks, render.NoAsksNotice)
	bids := bookColumn("Offers to buy", m.Stock.Bids, render.NoBidsNotice)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, asks, "    ", bids))

	return b.String()
}

func bookColumn(title string, bins []pmarket.PriceBin, notice string) string {
	lines := []string{SummaryStyle.Render(title)}
	if len(bins) == 0 {
		lines = append(lines, render.NoticeStyle.Render(notice))
	}
	for _, bin := range bins {
		lines = append(lines, pmarket.FormatBin(bin))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
