package pmarket

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Failure kinds. Use errors.Is against these to classify any error returned
// by the API client.
var (
	// ErrServerUnavailable means the request could not be completed: the
	// transport failed or a gateway reported the server as unavailable.
	ErrServerUnavailable = errors.New("server unavailable")

	// ErrDecode means the response body did not match the expected shape.
	ErrDecode = errors.New("invalid response")

	// ErrNotFound means the requested event or stock does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the session credential was missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadRequest means the server rejected the request body.
	ErrBadRequest = errors.New("bad request")

	// ErrInvalidOrder means the server rejected a buy order's price or count.
	ErrInvalidOrder = errors.New("invalid order")
)

// APIError represents a non-2xx response from the prediction market API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, msg)
}

// Is maps the status code onto the failure kinds.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.IsNotFound()
	case ErrUnauthorized:
		return e.IsUnauthorized() || e.IsForbidden()
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case ErrServerUnavailable:
		switch e.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
	}
	return false
}

// IsNotFound returns true if the error is a 404 Not Found.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized returns true if the error is a 401 Unauthorized.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden returns true if the error is a 403 Forbidden.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// TransportError wraps a failure to complete an HTTP round-trip.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "request failed: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrServerUnavailable }

// DecodeError wraps a failure to decode a response body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "failed to decode response: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// WindowError reports an event whose closing time precedes its opening time.
type WindowError struct {
	Opens  time.Time
	Closes time.Time
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("event closes (%s) before it opens (%s)",
		e.Closes.Format(time.RFC3339), e.Opens.Format(time.RFC3339))
}

// InvalidOrderError is returned when the server rejects a buy order.
type InvalidOrderError struct {
	StockID uint32
	Order   BuyOrder
	Err     *APIError
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("order for %d at %d¢ on stock %d rejected: %s",
		e.Order.Count, e.Order.Price, e.StockID, e.Err.Error())
}

func (e *InvalidOrderError) Unwrap() error { return e.Err }

func (e *InvalidOrderError) Is(target error) bool { return target == ErrInvalidOrder }

// errorResponse represents the JSON structure of API error responses.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// CheckResponse checks the API response for errors.
// If the response status code indicates an error (>= 400), it parses
// the error body and returns an APIError. Otherwise, returns nil.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		// Plain-text bodies are common on this server; keep them as the message.
		apiErr.Message = truncate(string(body), 200)
		return apiErr
	}

	if errResp.Error != "" {
		apiErr.Message = errResp.Error
	} else if errResp.Message != "" {
		apiErr.Message = errResp.Message
	}
	apiErr.Code = errResp.Code

	return apiErr
}

// DecodeJSON decodes a JSON response body into the given target.
func DecodeJSON(resp *http.Response, target any) error {
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
