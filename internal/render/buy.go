package render

import (
	"fmt"

	"github.com/pmarket/pm/internal/buy"
	"github.com/pmarket/pm/internal/output"
	"github.com/pmarket/pm/pkg/pmarket"
)

// BuyView shows the steps of a purchase. In JSON mode only the outcome is
// written.
type BuyView struct {
	f *output.Formatter
}

var _ buy.Display = (*BuyView)(nil)

// NewBuyView creates a BuyView writing through f.
func NewBuyView(f *output.Formatter) *BuyView {
	return &BuyView{f: f}
}

// Balance shows the balance before anything else is fetched.
func (v *BuyView) Balance(cents uint32) error {
	if v.f.JSONMode {
		return nil
	}
	return Balance(v.f, cents)
}

// StockHeader shows which stock is about to be bought.
func (v *BuyView) StockHeader(event *pmarket.EventDetail, stock *pmarket.Stock) error {
	return stockHeader(v.f, event, stock)
}

// OrderBook shows both sides of the book. An empty side is replaced by the
// first bidder notice.
func (v *BuyView) OrderBook(book buy.OrderBook) error {
	if v.f.JSONMode {
		return nil
	}
	if err := bookSide(v.f, "Offers to sell", book.Asks, buy.FirstBidderNotice); err != nil {
		return err
	}
	if err := bookSide(v.f, "Offers to buy", book.Bids, buy.FirstBidderNotice); err != nil {
		return err
	}
	return v.f.Line("")
}

// Cancelled reports that the user declined.
func (v *BuyView) Cancelled() error {
	return Success(v.f, "cancelled", "Purchase cancelled.")
}

type orderView struct {
	Status  string `json:"status"`
	StockID uint32 `json:"stock_id"`
	Price   uint8  `json:"price"`
	Count   uint32 `json:"count"`
}

// Submitted reports the placed order.
func (v *BuyView) Submitted(stock *pmarket.Stock, order pmarket.BuyOrder) error {
	if v.f.JSONMode {
		return v.f.Print(orderView{Status: "submitted", StockID: stock.ID, Price: order.Price, Count: order.Count})
	}
	return v.f.Line(SuccessStyle.Render(fmt.Sprintf("Order placed: %s of %s",
		pmarket.FormatBin(pmarket.PriceBin{Price: order.Price, Count: order.Count}), stock.Title)))
}
