// Package prompt asks the user questions on the terminal.
package prompt

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/pmarket/pm/internal/clierror"
)

// ErrAborted is returned when the user cancels a prompt or input ends.
var ErrAborted error = &clierror.Error{Kind: clierror.KindUser, Msg: "input aborted"}

// Prompter asks yes/no questions and reads validated values. Input keeps
// asking until validate accepts the answer.
type Prompter interface {
	Confirm(ctx context.Context, title string) (bool, error)
	Input(ctx context.Context, title string, validate func(string) error) (string, error)
}

// New returns an interactive form prompter when in is a terminal and a
// line-oriented prompter otherwise, so piped input keeps working.
func New(in *os.File, out io.Writer) Prompter {
	if term.IsTerminal(int(in.Fd())) {
		return NewHuhPrompter(in, out)
	}
	return NewLinePrompter(in, out)
}
