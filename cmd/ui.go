package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pmarket/pm/internal/tui"
)

func newUICmd(opts *marketOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Interactive terminal UI",
		Long: `Launch an interactive terminal UI for browsing the market.

The UI opens on the event list. Select an event to see its stocks and
select a stock to see its order book. Data refreshes every 30 seconds.

Keyboard shortcuts:
  ↑/↓        Navigate
  enter      Open the selected event or stock
  esc        Go back
  r          Refresh data
  q          Quit the application`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(tui.New(opts.client()), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func init() {
	opts := &marketOptions{}
	uiCmd := newUICmd(opts)
	uiCmd.PersistentPreRunE = withMarket(opts)

	rootCmd.AddCommand(uiCmd)
}
