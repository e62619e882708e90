package pmarket

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventDetailJSON = `{
	"id": 1,
	"title": "USA 2020 Presidential Election",
	"description": "Who will win?",
	"created": "2019-01-01T00:00:00Z",
	"opens": "2019-10-01T08:00:00-04:00",
	"closes": "2020-11-23T00:00:00Z",
	"stocks": [
		{"id": 3, "title": "Joe Biden", "price": 57},
		{"id": 1, "title": "Donald Trump", "price": 43},
		{"id": 2, "title": "Other", "price": 1}
	]
}`

func TestEventDetail_RoundTrip(t *testing.T) {
	var event EventDetail
	require.NoError(t, json.Unmarshal([]byte(eventDetailJSON), &event))
	require.NoError(t, event.Normalize())

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var again EventDetail
	require.NoError(t, json.Unmarshal(data, &again))

	assert.False(t, again.Closes.Before(again.Opens), "opens <= closes must survive a round trip")
	require.Len(t, again.Stocks, 3)
	assert.Equal(t, []uint32{3, 1, 2}, []uint32{again.Stocks[0].ID, again.Stocks[1].ID, again.Stocks[2].ID})
	assert.True(t, event.Opens.Equal(again.Opens))
	assert.True(t, event.Closes.Equal(again.Closes))
}

func TestEventDetail_Normalize_ConvertsToUTC(t *testing.T) {
	var event EventDetail
	require.NoError(t, json.Unmarshal([]byte(eventDetailJSON), &event))

	require.NoError(t, event.Normalize())

	assert.Equal(t, time.UTC, event.Opens.Location())
	assert.Equal(t, time.UTC, event.Closes.Location())
	assert.Equal(t, time.UTC, event.Created.Location())
	assert.Equal(t, 12, event.Opens.Hour())
}

func TestEventDetail_Normalize_RejectsInvertedWindow(t *testing.T) {
	event := EventDetail{
		Opens:  time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC),
		Closes: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	err := event.Normalize()

	var windowErr *WindowError
	require.True(t, errors.As(err, &windowErr))
	assert.Contains(t, err.Error(), "before it opens")
}

func TestEventDetail_Normalize_EqualBoundsAllowed(t *testing.T) {
	at := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	event := EventDetail{Opens: at, Closes: at}

	assert.NoError(t, event.Normalize())
}

func TestBuyOrder_WireShape(t *testing.T) {
	data, err := json.Marshal(BuyOrder{Price: 42, Count: 10})
	require.NoError(t, err)

	assert.JSONEq(t, `{"price": 42, "count": 10}`, string(data))
}

func TestStock_Decode(t *testing.T) {
	body := `{"id": 5, "event_id": 1, "title": "Joe Biden", "price": 54,
		"asks": [{"price": 54, "count": 120}], "bids": []}`

	var stock Stock
	require.NoError(t, json.Unmarshal([]byte(body), &stock))

	assert.Equal(t, uint32(5), stock.ID)
	assert.Equal(t, uint32(1), stock.EventID)
	assert.Equal(t, []PriceBin{{Price: 54, Count: 120}}, stock.Asks)
	assert.Empty(t, stock.Bids)
}

func TestStock_DecodeRejectsOutOfRangePrice(t *testing.T) {
	var stock Stock
	err := json.Unmarshal([]byte(`{"id": 5, "price": 300}`), &stock)

	assert.Error(t, err)
}
