// Package render turns market data into terminal output.
//
// Every view writes through an output.Formatter, so the same call produces
// styled tables for people or plain JSON for scripts.
package render

import (
	"strconv"

	"github.com/pmarket/pm/internal/output"
	"github.com/pmarket/pm/pkg/pmarket"
)

// DateLayout is how event dates are shown.
const DateLayout = "2006-01-02"

// Empty-side notices for the stock view.
const (
	NoAsksNotice = "No offers to sell."
	NoBidsNotice = "No offers to buy."
)

// EventList renders one row per event, in the order given.
func EventList(f *output.Formatter, events []pmarket.Event) error {
	if f.JSONMode {
		if events == nil {
			events = []pmarket.Event{}
		}
		return f.Print(events)
	}

	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{strconv.FormatUint(uint64(e.ID), 10), e.Title})
	}
	return f.Table([]string{"ID", "Title"}, rows)
}

// EventDetail renders an event header followed by its stocks.
func EventDetail(f *output.Formatter, event *pmarket.EventDetail) error {
	if f.JSONMode {
		return f.Print(event)
	}

	lines := []string{
		field("Title", 8, TitleStyle.Render(event.Title)),
		LabelStyle.Render("Created:") + " " + event.Created.Format(DateLayout) + "  " +
			LabelStyle.Render("Opens:") + " " + event.Opens.Format(DateLayout) + "  " +
			LabelStyle.Render("Closes:") + " " + event.Closes.Format(DateLayout),
	}
	if event.Description != "" {
		lines = append(lines, event.Description)
	}
	lines = append(lines, "")
	if err := writeLines(f, lines...); err != nil {
		return err
	}

	rows := make([][]string, 0, len(event.Stocks))
	for _, s := range event.Stocks {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(s.ID), 10),
			pmarket.FormatCents(s.Price),
			s.Title,
		})
	}
	return f.Table([]string{"ID", "Price", "Name"}, rows)
}

// stockView is the JSON shape of the stock view.
type stockView struct {
	Event *pmarket.EventDetail `json:"event"`
	Stock *pmarket.Stock       `json:"stock"`
}

// StockDetail renders a stock with its parent event title and order book.
func StockDetail(f *output.Formatter, event *pmarket.EventDetail, stock *pmarket.Stock) error {
	if f.JSONMode {
		return f.Print(stockView{Event: event, Stock: stock})
	}

	if err := stockHeader(f, event, stock); err != nil {
		return err
	}
	if err := bookSide(f, "Offers to sell", stock.Asks, NoAsksNotice); err != nil {
		return err
	}
	return bookSide(f, "Offers to buy", stock.Bids, NoBidsNotice)
}

func stockHeader(f *output.Formatter, event *pmarket.EventDetail, stock *pmarket.Stock) error {
	return writeLines(f,
		field("Event Title", 12, TitleStyle.Render(event.Title)),
		field("Stock Title", 12, TitleStyle.Render(stock.Title)),
		"",
	)
}

// bookSide renders one side of an order book, or notice when it is empty.
func bookSide(f *output.Formatter, title string, bins []pmarket.PriceBin, notice string) error {
	if len(bins) == 0 {
		return writeLines(f, LabelStyle.Render(title+":")+" "+NoticeStyle.Render(notice))
	}

	rows := make([][]string, 0, len(bins))
	for _, bin := range bins {
		rows = append(rows, []string{pmarket.FormatBin(bin)})
	}
	return f.Table([]string{title}, rows)
}

type balanceView struct {
	Cents   uint32 `json:"balance_cents"`
	Display string `json:"balance"`
}

// Balance renders the caller's balance in dollars.
func Balance(f *output.Formatter, cents uint32) error {
	if f.JSONMode {
		return f.Print(balanceView{Cents: cents, Display: pmarket.FormatBalance(cents)})
	}
	return f.Line(field("Your Balance", 12, MoneyStyle.Render(pmarket.FormatBalance(cents))))
}

// Success renders a one-line confirmation, or {"status": status} in JSON mode.
func Success(f *output.Formatter, status, text string) error {
	if f.JSONMode {
		return f.Print(map[string]string{"status": status})
	}
	return f.Line(SuccessStyle.Render(text))
}

func writeLines(f *output.Formatter, lines ...string) error {
	for _, line := range lines {
		if err := f.Line(line); err != nil {
			return err
		}
	}
	return nil
}
