package cmd

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/pmarket/pm/internal/fakemarket"
)

// newTestMarket starts a fake market server for the duration of the test.
func newTestMarket(t *testing.T) (*fakemarket.Server, string) {
	t.Helper()

	market := fakemarket.New()
	server := httptest.NewServer(market.Handler())
	t.Cleanup(server.Close)

	return market, server.URL
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// linesContaining returns the lines of out that mention want.
func linesContaining(out, want string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, want) {
			lines = append(lines, line)
		}
	}
	return lines
}
