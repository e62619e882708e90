package prompt

import (
	"golang.org/x/term"
)

// PasswordReader abstracts hidden terminal input for testing.
type PasswordReader interface {
	ReadPassword() (string, error)
	IsTerminal() bool
}

// TerminalReader reads passwords from the terminal without echo.
type TerminalReader struct {
	fd int
}

// NewTerminalReader creates a reader for the given file descriptor.
func NewTerminalReader(fd int) *TerminalReader {
	return &TerminalReader{fd: fd}
}

func (r *TerminalReader) ReadPassword() (string, error) {
	password, err := term.ReadPassword(r.fd)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func (r *TerminalReader) IsTerminal() bool {
	return term.IsTerminal(r.fd)
}
