package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pmarket/pm/internal/render"
)

// newStockCmd creates the stock command with the given options.
func newStockCmd(opts *marketOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock <id>",
		Short: "View details about a stock",
		Long: `View a stock, the event it belongs to and its order book.

Example:
  pm stock 5`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("stock", args[0])
			if err != nil {
				return err
			}
			return runStock(cmd, opts, id)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runStock(cmd *cobra.Command, opts *marketOptions, id uint32) error {
	ctx := context.Background()
	client := opts.client()

	stock, err := client.GetStock(ctx, id)
	if err != nil {
		return err
	}
	event, err := client.GetEvent(ctx, stock.EventID)
	if err != nil {
		return err
	}

	return render.StockDetail(opts.formatter(cmd), event, stock)
}

func init() {
	opts := &marketOptions{}
	stockCmd := newStockCmd(opts)
	stockCmd.PersistentPreRunE = withMarket(opts)

	rootCmd.AddCommand(stockCmd)
}
