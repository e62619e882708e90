package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pmarket/pm/internal/render"
)

// newListCmd creates the list command with the given options.
func newListCmd(opts *marketOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List events",
		Long: `List the events on the market server.

Examples:
  pm list
  pm ls --json`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runList(cmd *cobra.Command, opts *marketOptions) error {
	events, err := opts.client().ListEvents(context.Background())
	if err != nil {
		return err
	}

	if len(events) == 0 && !opts.jsonMode {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No events found")
		return nil
	}

	return render.EventList(opts.formatter(cmd), events)
}

// newEventCmd creates the event command with the given options.
func newEventCmd(opts *marketOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event <id>",
		Short: "View details about an event",
		Long: `View an event's title, trading window and stocks.

Example:
  pm event 1`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("event", args[0])
			if err != nil {
				return err
			}
			return runEvent(cmd, opts, id)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runEvent(cmd *cobra.Command, opts *marketOptions, id uint32) error {
	event, err := opts.client().GetEvent(context.Background(), id)
	if err != nil {
		return err
	}

	return render.EventDetail(opts.formatter(cmd), event)
}

func init() {
	listOpts := &marketOptions{}
	listCmd := newListCmd(listOpts)
	listCmd.PersistentPreRunE = withMarket(listOpts)

	eventOpts := &marketOptions{}
	eventCmd := newEventCmd(eventOpts)
	eventCmd.PersistentPreRunE = withMarket(eventOpts)

	rootCmd.AddCommand(listCmd, eventCmd)
}
