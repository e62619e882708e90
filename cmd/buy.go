package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pmarket/pm/internal/buy"
	"github.com/pmarket/pm/internal/prompt"
	"github.com/pmarket/pm/internal/render"
)

// buyOptions holds dependencies for the buy command.
type buyOptions struct {
	market *marketOptions
	prompt prompt.Prompter
}

// newBuyCmd creates the buy command with the given options.
func newBuyCmd(opts *buyOptions) *cobra.Command {
	var (
		price     string
		count     string
		assumeYes bool
	)

	cmd := &cobra.Command{
		Use:   "buy <stock-id>",
		Short: "Buy shares of a stock",
		Long: `Buy shares of a stock.

Shows your balance and the stock's order book, then asks for the most you
will pay per share (1-99 cents) and how many shares to buy. Flags answer the
questions up front.

Examples:
  pm buy 5
  pm buy 5 --price 42 --count 10 --yes`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("stock", args[0])
			if err != nil {
				return err
			}
			wopts := buy.Options{
				AssumeYes: assumeYes,
				Price:     price,
				Count:     count,
			}
			if err := wopts.Validate(); err != nil {
				return err
			}
			return runBuy(cmd, opts, id, wopts)
		},
	}

	cmd.Flags().StringVar(&price, "price", "", "Max price per share in cents (1-99)")
	cmd.Flags().StringVar(&count, "count", "", "Number of shares")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation")
	cmd.SilenceUsage = true

	return cmd
}

func runBuy(cmd *cobra.Command, opts *buyOptions, stockID uint32, wopts buy.Options) error {
	wopts.Logger = opts.market.logger
	view := render.NewBuyView(opts.market.formatter(cmd))
	workflow := buy.New(opts.market.client(), opts.prompt, view, wopts)

	_, err := workflow.Run(context.Background(), stockID)
	return err
}

func init() {
	opts := &buyOptions{market: &marketOptions{}}
	buyCmd := newBuyCmd(opts)
	buyCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := withMarket(opts.market)(cmd, args); err != nil {
			return err
		}
		opts.prompt = prompt.New(os.Stdin, os.Stderr)
		return nil
	}

	rootCmd.AddCommand(buyCmd)
}
