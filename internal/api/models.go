package api

import "github.com/pmarket/pm/pkg/pmarket"

// =============================================================================
// Market Types (aliased from pkg/pmarket)
// =============================================================================

type (
	Event        = pmarket.Event
	EventDetail  = pmarket.EventDetail
	StockSummary = pmarket.StockSummary
	Stock        = pmarket.Stock
	PriceBin     = pmarket.PriceBin
)

// =============================================================================
// Request Types (aliased from pkg/pmarket)
// =============================================================================

type (
	BuyOrder           = pmarket.BuyOrder
	Credentials        = pmarket.Credentials
	CreateEventRequest = pmarket.CreateEventRequest
	CreateStockRequest = pmarket.CreateStockRequest
)

// =============================================================================
// Error Types (aliased from pkg/pmarket)
// =============================================================================

type (
	APIError          = pmarket.APIError
	InvalidOrderError = pmarket.InvalidOrderError
)

// CheckResponse and DecodeJSON are re-exported for callers that issue raw
// requests through Get/Post.
var (
	CheckResponse = pmarket.CheckResponse
	DecodeJSON    = pmarket.DecodeJSON
)
