package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmarket/pm/internal/buy"
	"github.com/pmarket/pm/internal/output"
	"github.com/pmarket/pm/pkg/pmarket"
)

func sampleEvent() *pmarket.EventDetail {
	return &pmarket.EventDetail{
		ID:      1,
		Title:   "USA 2020 Presidential Election",
		Created: time.Date(2019, 11, 2, 9, 30, 0, 0, time.UTC),
		Opens:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Closes:  time.Date(2020, 11, 3, 23, 0, 0, 0, time.UTC),
		Stocks: []pmarket.StockSummary{
			{ID: 5, Title: "Joe Biden", Price: 42},
			{ID: 6, Title: "Donald Trump", Price: 58},
		},
	}
}

func sampleStock() *pmarket.Stock {
	return &pmarket.Stock{
		ID:      5,
		EventID: 1,
		Title:   "Joe Biden",
		Price:   54,
		Asks:    []pmarket.PriceBin{{Price: 54, Count: 120}},
		Bids:    []pmarket.PriceBin{},
	}
}

// linesContaining returns the lines of out that mention want.
func linesContaining(out, want string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, want) {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestEventList_OneRow(t *testing.T) {
	var buf bytes.Buffer

	err := EventList(output.New(&buf, false), []pmarket.Event{{ID: 1, Title: "USA 2020 Election"}})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Title")
	rows := linesContaining(out, "USA 2020 Election")
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "1")
}

func TestEventList_PreservesOrder(t *testing.T) {
	var buf bytes.Buffer

	err := EventList(output.New(&buf, false), []pmarket.Event{{ID: 2, Title: "Second"}, {ID: 1, Title: "First"}})

	require.NoError(t, err)
	out := buf.String()
	assert.Less(t, strings.Index(out, "Second"), strings.Index(out, "First"))
}

func TestEventList_JSON(t *testing.T) {
	var buf bytes.Buffer

	err := EventList(output.New(&buf, true), []pmarket.Event{{ID: 1, Title: "USA 2020 Election"}})

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": 1, "title": "USA 2020 Election"}]`, buf.String())
}

func TestEventList_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, EventList(output.New(&buf, true), nil))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestEventDetail_Text(t *testing.T) {
	var buf bytes.Buffer

	err := EventDetail(output.New(&buf, false), sampleEvent())

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "USA 2020 Presidential Election")
	assert.Contains(t, out, "2019-11-02")
	assert.Contains(t, out, "2020-01-01")
	assert.Contains(t, out, "2020-11-03")
	assert.Contains(t, out, "Price")
	assert.Contains(t, out, "Name")

	rows := linesContaining(out, "Joe Biden")
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "42¢")
	assert.Less(t, strings.Index(out, "Joe Biden"), strings.Index(out, "Donald Trump"))
}

func TestEventDetail_JSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, EventDetail(output.New(&buf, true), sampleEvent()))

	var got pmarket.EventDetail
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "USA 2020 Presidential Election", got.Title)
	assert.Len(t, got.Stocks, 2)
}

func TestStockDetail_Text(t *testing.T) {
	var buf bytes.Buffer

	err := StockDetail(output.New(&buf, false), sampleEvent(), sampleStock())

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Event Title:")
	assert.Contains(t, out, "Stock Title:")
	assert.Contains(t, out, "Offers to sell")
	assert.Len(t, linesContaining(out, "120x 54¢"), 1)
	assert.Contains(t, out, NoBidsNotice)
	assert.NotContains(t, out, NoAsksNotice)
}

func TestStockDetail_JSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, StockDetail(output.New(&buf, true), sampleEvent(), sampleStock()))

	var got struct {
		Event pmarket.EventDetail `json:"event"`
		Stock pmarket.Stock       `json:"stock"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, uint32(1), got.Event.ID)
	assert.Equal(t, []pmarket.PriceBin{{Price: 54, Count: 120}}, got.Stock.Asks)
}

func TestBalance(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Balance(output.New(&buf, false), 131700))

	assert.Contains(t, buf.String(), "Your Balance:")
	assert.Contains(t, buf.String(), "$1,317.00")
}

func TestBalance_JSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Balance(output.New(&buf, true), 131700))

	assert.JSONEq(t, `{"balance_cents": 131700, "balance": "$1,317.00"}`, buf.String())
}

func TestBuyView_OrderBookFirstBidder(t *testing.T) {
	var buf bytes.Buffer
	view := NewBuyView(output.New(&buf, false))

	err := view.OrderBook(buy.OrderBook{
		Asks:        []pmarket.PriceBin{{Price: 54, Count: 120}},
		FirstBidder: true,
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Len(t, linesContaining(out, "120x 54¢"), 1)
	notices := linesContaining(out, buy.FirstBidderNotice)
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "Offers to buy")
}

func TestBuyView_OrderBookEmptyAsks(t *testing.T) {
	var buf bytes.Buffer
	view := NewBuyView(output.New(&buf, false))

	err := view.OrderBook(buy.OrderBook{
		Bids:        []pmarket.PriceBin{{Price: 40, Count: 3}},
		FirstBidder: true,
	})

	require.NoError(t, err)
	notices := linesContaining(buf.String(), buy.FirstBidderNotice)
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "Offers to sell")
}

func TestBuyView_Cancelled(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewBuyView(output.New(&buf, false)).Cancelled())

	assert.Contains(t, buf.String(), "Purchase cancelled.")
}

func TestBuyView_JSONOnlyOutcome(t *testing.T) {
	var buf bytes.Buffer
	view := NewBuyView(output.New(&buf, true))

	require.NoError(t, view.Balance(131700))
	require.NoError(t, view.StockHeader(sampleEvent(), sampleStock()))
	require.NoError(t, view.OrderBook(buy.OrderBook{FirstBidder: true}))
	require.NoError(t, view.Submitted(sampleStock(), pmarket.BuyOrder{Price: 42, Count: 10}))

	assert.JSONEq(t, `{"status": "submitted", "stock_id": 5, "price": 42, "count": 10}`, buf.String())
}

func TestBuyView_Submitted(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewBuyView(output.New(&buf, false)).Submitted(sampleStock(), pmarket.BuyOrder{Price: 42, Count: 10}))

	assert.Contains(t, buf.String(), "Order placed: 10x 42¢ of Joe Biden")
}
