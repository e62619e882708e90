package pmarket

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name: "with message",
			err: &APIError{
				StatusCode: 401,
				Message:    "Invalid session",
			},
			expected: "API error (401): Invalid session",
		},
		{
			name: "without message",
			err: &APIError{
				StatusCode: 500,
				Message:    "",
			},
			expected: "API error (500): Internal Server Error",
		},
		{
			name: "with code and message",
			err: &APIError{
				StatusCode: 400,
				Code:       "PRICE_RANGE",
				Message:    "price out of range",
			},
			expected: "API error (400): price out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		status int
		target error
		want   bool
	}{
		{404, ErrNotFound, true},
		{500, ErrNotFound, false},
		{401, ErrUnauthorized, true},
		{403, ErrUnauthorized, true},
		{404, ErrUnauthorized, false},
		{400, ErrBadRequest, true},
		{422, ErrBadRequest, true},
		{503, ErrServerUnavailable, true},
		{502, ErrServerUnavailable, true},
		{500, ErrServerUnavailable, false},
		{400, ErrInvalidOrder, false},
	}

	for _, tt := range tests {
		err := error(&APIError{StatusCode: tt.status})
		assert.Equal(t, tt.want, errors.Is(err, tt.target), "status %d vs %v", tt.status, tt.target)
	}
}

func TestAPIError_NotFoundDistinctFromServerFailure(t *testing.T) {
	notFound := error(&APIError{StatusCode: 404})
	failure := error(&APIError{StatusCode: 500})

	assert.True(t, errors.Is(notFound, ErrNotFound))
	assert.False(t, errors.Is(failure, ErrNotFound))
	assert.False(t, errors.Is(notFound, ErrServerUnavailable))
}

func TestTransportError(t *testing.T) {
	err := error(&TransportError{Err: errors.New("connection refused")})

	assert.True(t, errors.Is(err, ErrServerUnavailable))
	assert.False(t, errors.Is(err, ErrDecode))
	assert.Equal(t, "request failed: connection refused", err.Error())
}

func TestDecodeError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := error(&DecodeError{Err: cause})

	assert.True(t, errors.Is(err, ErrDecode))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestInvalidOrderError(t *testing.T) {
	apiErr := &APIError{StatusCode: 400, Message: "price must be below 100"}
	err := error(&InvalidOrderError{StockID: 5, Order: BuyOrder{Price: 42, Count: 10}, Err: apiErr})

	assert.True(t, errors.Is(err, ErrInvalidOrder))
	assert.True(t, errors.Is(err, ErrBadRequest))

	var got *APIError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, 400, got.StatusCode)
	assert.Contains(t, err.Error(), "stock 5")
	assert.Contains(t, err.Error(), "price must be below 100")
}

func TestCheckResponse_Success(t *testing.T) {
	resp := &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewReader([]byte(`{"ok": true}`))),
	}

	err := CheckResponse(resp)
	assert.NoError(t, err)
}

func TestCheckResponse_SuccessStatuses(t *testing.T) {
	statuses := []int{200, 201, 204, 299}

	for _, status := range statuses {
		resp := &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewReader(nil)),
		}
		assert.NoError(t, CheckResponse(resp), "status %d should not error", status)
	}
}

func TestCheckResponse_ErrorWithJSONBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: 401,
		Body:       io.NopCloser(bytes.NewReader([]byte(`{"error": "Invalid token", "code": "AUTH_FAILED"}`))),
	}

	err := CheckResponse(resp)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Equal(t, "Invalid token", apiErr.Message)
	assert.Equal(t, "AUTH_FAILED", apiErr.Code)
}

func TestCheckResponse_ErrorWithMessageField(t *testing.T) {
	resp := &http.Response{
		StatusCode: 400,
		Body:       io.NopCloser(bytes.NewReader([]byte(`{"message": "Bad request"}`))),
	}

	err := CheckResponse(resp)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "Bad request", apiErr.Message)
}

func TestCheckResponse_ErrorWithEmptyBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: 500,
		Body:       io.NopCloser(bytes.NewReader(nil)),
	}

	err := CheckResponse(resp)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}

func TestCheckResponse_ErrorWithPlainTextBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: 404,
		Body:       io.NopCloser(bytes.NewReader([]byte("no such event"))),
	}

	err := CheckResponse(resp)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "no such event", apiErr.Message)
}

func TestDecodeJSON_Success(t *testing.T) {
	resp := &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewReader([]byte(`{"id": 7, "title": "Mars landing by 2030"}`))),
	}

	var event Event
	err := DecodeJSON(resp, &event)

	require.NoError(t, err)
	assert.Equal(t, uint32(7), event.ID)
	assert.Equal(t, "Mars landing by 2030", event.Title)
}

func TestDecodeJSON_InvalidJSON(t *testing.T) {
	resp := &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewReader([]byte(`not json`))),
	}

	var result map[string]any
	err := DecodeJSON(resp, &result)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestDecodeJSON_WrongShape(t *testing.T) {
	resp := &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewReader([]byte(`{"id": "seven"}`))),
	}

	var event Event
	err := DecodeJSON(resp, &event)

	assert.True(t, errors.Is(err, ErrDecode))
}

func TestDecodeJSON_EmptyBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewReader([]byte(``))),
	}

	var result map[string]any
	err := DecodeJSON(resp, &result)

	assert.Error(t, err)
}
