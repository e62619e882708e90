package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/pmarket/pm/pkg/pmarket"
)

// GetStock retrieves a stock and its aggregated order book.
func (c *Client) GetStock(ctx context.Context, id uint32) (*Stock, error) {
	var stock Stock
	if err := c.getJSON(ctx, fmt.Sprintf("/stock/%d", id), false, &stock); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch stock %d", id)
	}
	return &stock, nil
}

// PlaceBuyOrder submits a buy order for count shares at price cents each.
// A 400 or 422 from the server is returned as *pmarket.InvalidOrderError.
func (c *Client) PlaceBuyOrder(ctx context.Context, stockID uint32, order BuyOrder) error {
	resp, err := c.postJSON(ctx, fmt.Sprintf("/stock/%d/buy", stockID), order, true)
	if err != nil {
		return errors.Wrapf(err, "failed to place order on stock %d", stockID)
	}
	defer discard(resp)

	if err := pmarket.CheckResponse(resp); err != nil {
		if apiErr, ok := err.(*pmarket.APIError); ok {
			switch apiErr.StatusCode {
			case http.StatusBadRequest, http.StatusUnprocessableEntity:
				return &pmarket.InvalidOrderError{StockID: stockID, Order: order, Err: apiErr}
			}
		}
		return errors.Wrapf(err, "failed to place order on stock %d", stockID)
	}

	return nil
}
