package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pmarket/pm/internal/render"
)

// newBalanceCmd creates the balance command with the given options.
func newBalanceCmd(opts *marketOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show your balance",
		Long: `Show the signed-in user's balance.

Example:
  pm balance`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalance(cmd, opts)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runBalance(cmd *cobra.Command, opts *marketOptions) error {
	cents, err := opts.client().GetBalance(context.Background())
	if err != nil {
		return err
	}

	return render.Balance(opts.formatter(cmd), cents)
}

func init() {
	opts := &marketOptions{}
	balanceCmd := newBalanceCmd(opts)
	balanceCmd.PersistentPreRunE = withMarket(opts)

	rootCmd.AddCommand(balanceCmd)
}
