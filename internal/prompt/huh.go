package prompt

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// HuhPrompter renders each question as a small interactive form.
type HuhPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewHuhPrompter creates a form-based prompter on the given terminal streams.
func NewHuhPrompter(in io.Reader, out io.Writer) *HuhPrompter {
	return &HuhPrompter{in: in, out: out}
}

func (p *HuhPrompter) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		WithProgramOptions(tea.WithInput(p.in), tea.WithOutput(p.out))

	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// Confirm shows a Yes/No selector.
func (p *HuhPrompter) Confirm(ctx context.Context, title string) (bool, error) {
	var confirmed bool
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := p.run(ctx, field); err != nil {
		return false, err
	}
	return confirmed, nil
}

// Input shows a text field; the form refuses to submit until validate passes.
func (p *HuhPrompter) Input(ctx context.Context, title string, validate func(string) error) (string, error) {
	var value string
	field := huh.NewInput().
		Title(title).
		Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}

	if err := p.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}
