package api

import (
	"context"

	"github.com/pkg/errors"

	"github.com/pmarket/pm/pkg/pmarket"
)

// CreateEvent creates a new event. Opens and Closes are sent in UTC.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) error {
	if req.Closes.Before(req.Opens) {
		return &pmarket.WindowError{Opens: req.Opens.UTC(), Closes: req.Closes.UTC()}
	}
	req.Opens = req.Opens.UTC()
	req.Closes = req.Closes.UTC()

	resp, err := c.postJSON(ctx, "/admin/event/create", req, true)
	if err != nil {
		return errors.Wrap(err, "failed to create event")
	}
	defer discard(resp)

	if err := pmarket.CheckResponse(resp); err != nil {
		return errors.Wrap(err, "failed to create event")
	}
	return nil
}

// CreateStock adds a stock to an existing event.
func (c *Client) CreateStock(ctx context.Context, req CreateStockRequest) error {
	resp, err := c.postJSON(ctx, "/admin/stock/create", req, true)
	if err != nil {
		return errors.Wrap(err, "failed to create stock")
	}
	defer discard(resp)

	if err := pmarket.CheckResponse(resp); err != nil {
		return errors.Wrapf(err, "failed to create stock on event %d", req.EventID)
	}
	return nil
}
