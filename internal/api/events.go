package api

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/pmarket/pm/pkg/pmarket"
)

// ListEvents retrieves every event, in the order the server returns them.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := c.getJSON(ctx, "/event", false, &events); err != nil {
		return nil, errors.Wrap(err, "failed to fetch events")
	}
	return events, nil
}

// GetEvent retrieves a single event with its stocks. Timestamps are returned
// in UTC; an event that closes before it opens is treated as a decode failure.
func (c *Client) GetEvent(ctx context.Context, id uint32) (*EventDetail, error) {
	var event EventDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/event/%d", id), false, &event); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch event %d", id)
	}

	if err := event.Normalize(); err != nil {
		return nil, errors.Wrapf(&pmarket.DecodeError{Err: err}, "failed to fetch event %d", id)
	}

	return &event, nil
}
