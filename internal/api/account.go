package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/pmarket/pm/pkg/pmarket"
)

// ErrNoSessionCookie is returned by Signin when the server accepted the
// credentials but did not hand out a session cookie.
var ErrNoSessionCookie = errors.New("server did not return a session token")

// GetBalance retrieves the signed-in user's balance in cents.
func (c *Client) GetBalance(ctx context.Context) (uint32, error) {
	var cents uint32
	if err := c.getJSON(ctx, "/me/balance", true, &cents); err != nil {
		return 0, errors.Wrap(err, "failed to fetch balance")
	}
	return cents, nil
}

// Signup registers a new user.
func (c *Client) Signup(ctx context.Context, creds Credentials) error {
	resp, err := c.postJSON(ctx, "/auth/signup", creds, false)
	if err != nil {
		return errors.Wrap(err, "failed to sign up")
	}
	defer discard(resp)

	if err := pmarket.CheckResponse(resp); err != nil {
		return errors.Wrap(err, "failed to sign up")
	}
	return nil
}

// Signin exchanges credentials for a session token.
func (c *Client) Signin(ctx context.Context, creds Credentials) (string, error) {
	resp, err := c.postJSON(ctx, "/auth/signin", creds, false)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign in")
	}
	defer discard(resp)

	if err := pmarket.CheckResponse(resp); err != nil {
		return "", errors.Wrap(err, "failed to sign in")
	}

	token, ok := sessionToken(resp)
	if !ok {
		return "", ErrNoSessionCookie
	}
	return token, nil
}

func sessionToken(resp *http.Response) (string, bool) {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookie && cookie.Value != "" {
			return cookie.Value, true
		}
	}
	return "", false
}
