// Package buy runs the interactive purchase of shares in a stock.
//
// The workflow is a straight line of states:
//
//	Start -> BalanceShown -> StockLoaded -> Confirmed -> PriceEntered -> CountEntered -> Submitted
//	                                     \-> Cancelled                                 \-> Failed
//
// Any fetch failure aborts the run with the error. Declining the confirmation
// ends in Cancelled, which is not an error, and no order is placed.
package buy

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pmarket/pm/internal/clierror"
	"github.com/pmarket/pm/internal/prompt"
	"github.com/pmarket/pm/pkg/pmarket"
)

// FirstBidderNotice is shown when either side of the order book is empty.
const FirstBidderNotice = "You're the first person to bid."

// Market is the subset of the API client the workflow needs.
type Market interface {
	GetBalance(ctx context.Context) (uint32, error)
	GetStock(ctx context.Context, id uint32) (*pmarket.Stock, error)
	GetEvent(ctx context.Context, id uint32) (*pmarket.EventDetail, error)
	PlaceBuyOrder(ctx context.Context, stockID uint32, order pmarket.BuyOrder) error
}

// OrderBook is the book as displayed after confirmation.
type OrderBook struct {
	Asks        []pmarket.PriceBin
	Bids        []pmarket.PriceBin
	FirstBidder bool
}

// Display renders each step of the workflow.
type Display interface {
	Balance(cents uint32) error
	StockHeader(event *pmarket.EventDetail, stock *pmarket.Stock) error
	OrderBook(book OrderBook) error
	Cancelled() error
	Submitted(stock *pmarket.Stock, order pmarket.BuyOrder) error
}

// State is a step of the workflow.
type State int

const (
	StateStart State = iota
	StateBalanceShown
	StateStockLoaded
	StateConfirmed
	StateCancelled
	StatePriceEntered
	StateCountEntered
	StateSubmitted
	StateFailed
)

var stateNames = [...]string{
	StateStart:        "start",
	StateBalanceShown: "balance-shown",
	StateStockLoaded:  "stock-loaded",
	StateConfirmed:    "confirmed",
	StateCancelled:    "cancelled",
	StatePriceEntered: "price-entered",
	StateCountEntered: "count-entered",
	StateSubmitted:    "submitted",
	StateFailed:       "failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Options pre-answers prompts, e.g. from command-line flags. Preset values
// are validated like typed ones but an invalid preset is an error rather than
// a re-prompt.
type Options struct {
	AssumeYes bool
	Price     string
	Count     string
	Logger    *zap.Logger
}

// Validate checks the preset price and count without running the workflow.
func (o Options) Validate() error {
	if o.Price != "" {
		if _, err := ParsePrice(o.Price); err != nil {
			return invalidPreset("price", o.Price, err)
		}
	}
	if o.Count != "" {
		if _, err := ParseCount(o.Count); err != nil {
			return invalidPreset("count", o.Count, err)
		}
	}
	return nil
}

func invalidPreset(name, raw string, err error) error {
	return clierror.Userf("invalid %s %q: %w", name, raw, err)
}

// Result describes how a run ended.
type Result struct {
	State       State
	Order       pmarket.BuyOrder
	FirstBidder bool
}

// Workflow runs a single purchase.
type Workflow struct {
	market  Market
	prompt  prompt.Prompter
	display Display
	opts    Options
	logger  *zap.Logger
	state   State
}

// New creates a workflow.
func New(market Market, p prompt.Prompter, display Display, opts Options) *Workflow {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		market:  market,
		prompt:  p,
		display: display,
		opts:    opts,
		logger:  logger,
	}
}

// State returns the state the workflow last reached.
func (w *Workflow) State() State {
	return w.state
}

func (w *Workflow) advance(next State) {
	w.logger.Debug("buy workflow", zap.Stringer("from", w.state), zap.Stringer("to", next))
	w.state = next
}

// Run executes the workflow for stockID. On failure the returned Result
// carries the state reached before the error.
func (w *Workflow) Run(ctx context.Context, stockID uint32) (Result, error) {
	w.state = StateStart

	balance, err := w.market.GetBalance(ctx)
	if err != nil {
		return w.result(), err
	}
	if err := w.display.Balance(balance); err != nil {
		return w.result(), err
	}
	w.advance(StateBalanceShown)

	stock, err := w.market.GetStock(ctx, stockID)
	if err != nil {
		return w.result(), err
	}
	event, err := w.market.GetEvent(ctx, stock.EventID)
	if err != nil {
		return w.result(), err
	}
	if err := w.display.StockHeader(event, stock); err != nil {
		return w.result(), err
	}
	w.advance(StateStockLoaded)

	confirmed, err := w.confirm(ctx)
	if err != nil {
		return w.result(), err
	}
	if !confirmed {
		w.advance(StateCancelled)
		return w.result(), w.display.Cancelled()
	}
	w.advance(StateConfirmed)

	book := OrderBook{
		Asks:        stock.Asks,
		Bids:        stock.Bids,
		FirstBidder: len(stock.Asks) == 0 || len(stock.Bids) == 0,
	}
	if err := w.display.OrderBook(book); err != nil {
		return w.result(), err
	}

	price, err := w.price(ctx)
	if err != nil {
		return w.result(), err
	}
	w.advance(StatePriceEntered)

	count, err := w.count(ctx)
	if err != nil {
		return w.result(), err
	}
	w.advance(StateCountEntered)

	order := pmarket.BuyOrder{Price: price, Count: count}
	res := Result{Order: order, FirstBidder: book.FirstBidder}

	if err := w.market.PlaceBuyOrder(ctx, stock.ID, order); err != nil {
		w.advance(StateFailed)
		res.State = w.state
		return res, err
	}
	w.advance(StateSubmitted)
	res.State = w.state

	return res, w.display.Submitted(stock, order)
}

func (w *Workflow) result() Result {
	return Result{State: w.state}
}

func (w *Workflow) confirm(ctx context.Context) (bool, error) {
	if w.opts.AssumeYes {
		return true, nil
	}
	return w.prompt.Confirm(ctx, "Is this the correct stock?")
}

func (w *Workflow) price(ctx context.Context) (uint8, error) {
	raw := w.opts.Price
	if raw == "" {
		var err error
		raw, err = w.prompt.Input(ctx, "Max price you'll buy at?", ValidatePrice)
		if err != nil {
			return 0, err
		}
	}

	price, err := ParsePrice(raw)
	if err != nil {
		return 0, invalidPreset("price", raw, err)
	}
	return price, nil
}

func (w *Workflow) count(ctx context.Context) (uint32, error) {
	raw := w.opts.Count
	if raw == "" {
		var err error
		raw, err = w.prompt.Input(ctx, "How many?", ValidateCount)
		if err != nil {
			return 0, err
		}
	}

	count, err := ParseCount(raw)
	if err != nil {
		return 0, invalidPreset("count", raw, err)
	}
	return count, nil
}
