// Package clierror classifies command failures for display.
//
// User errors are problems the person at the keyboard can fix: a bad
// argument, a missing session, an unknown event. Internal errors are
// everything else and are printed behind a red "Internal error:" marker.
package clierror

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pmarket/pm/pkg/pmarket"
)

// Kind distinguishes user-facing errors from internal ones.
type Kind int

const (
	KindInternal Kind = iota
	KindUser
)

func (k Kind) String() string {
	if k == KindUser {
		return "user"
	}
	return "internal"
}

// Error carries a Kind alongside the underlying failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error { return e.Err }

// User returns a user error with the given message.
func User(msg string) error {
	return &Error{Kind: KindUser, Msg: msg}
}

// Userf returns a user error with a formatted message. %w is honoured.
func Userf(format string, args ...any) error {
	return &Error{Kind: KindUser, Err: fmt.Errorf(format, args...)}
}

// Internal marks err as an internal error.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindInternal, Err: err}
}

var markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

// Classify returns the Kind of err. Explicitly tagged errors keep their tag;
// otherwise unauthorized, not-found and rejected-order failures are user
// errors and everything else is internal.
func Classify(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}

	switch {
	case errors.Is(err, pmarket.ErrDecode):
		return KindInternal
	case errors.Is(err, pmarket.ErrUnauthorized),
		errors.Is(err, pmarket.ErrNotFound),
		errors.Is(err, pmarket.ErrInvalidOrder):
		return KindUser
	}

	var window *pmarket.WindowError
	if errors.As(err, &window) {
		return KindUser
	}

	return KindInternal
}

// Format renders err for stderr.
func Format(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	if errors.Is(err, pmarket.ErrUnauthorized) {
		msg += "\nSign in with: pm signin --username <name>"
	}

	if Classify(err) == KindUser {
		return "Error: " + msg
	}
	return markerStyle.Render("Internal error:") + " " + msg
}
