package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// LinePrompter reads answers one line at a time. A single scanner is kept for
// the prompter's lifetime so that buffered input survives across questions.
type LinePrompter struct {
	scanner *bufio.Scanner
	writer  io.Writer
}

// NewLinePrompter creates a LinePrompter reading from r and writing prompts to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{scanner: bufio.NewScanner(r), writer: w}
}

func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrAborted
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Confirm asks a yes/no question. An empty answer means no.
func (p *LinePrompter) Confirm(ctx context.Context, title string) (bool, error) {
	_, _ = fmt.Fprintf(p.writer, "%s [y/N]: ", title)
	for {
		answer, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		_, _ = fmt.Fprint(p.writer, "Please answer y or n: ")
	}
}

// Input reads a value, re-asking with the validation message until it passes.
func (p *LinePrompter) Input(ctx context.Context, title string, validate func(string) error) (string, error) {
	_, _ = fmt.Fprintf(p.writer, "%s: ", title)
	for {
		answer, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}

		if validate == nil {
			return answer, nil
		}
		if err := validate(answer); err != nil {
			_, _ = fmt.Fprintf(p.writer, "%v\n%s: ", err, title)
			continue
		}
		return answer, nil
	}
}
