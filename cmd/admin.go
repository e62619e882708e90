package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmarket/pm/internal/api"
	"github.com/pmarket/pm/internal/clierror"
	"github.com/pmarket/pm/internal/render"
)

// newAdminCmd creates the admin command group with the given options.
func newAdminCmd(opts *marketOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Tools for admins",
	}

	cmd.AddCommand(newCreateEventCmd(opts))
	cmd.AddCommand(newCreateStockCmd(opts))

	return cmd
}

// createEventFlags holds the create-event flag values.
type createEventFlags struct {
	title       string
	description string
	opens       int64
	closes      int64
}

func newCreateEventCmd(opts *marketOptions) *cobra.Command {
	var flags createEventFlags

	cmd := &cobra.Command{
		Use:   "create-event",
		Short: "Create an event",
		Long: `Create an event. Opens and closes are seconds since the Unix epoch.

Example:
  pm admin create-event --title "USA 2020 Election" --description "Who wins?" \
    --opens 1577836800 --closes 1604448000`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateEvent(cmd, opts, flags)
		},
	}

	cmd.Flags().StringVar(&flags.title, "title", "", "Event title")
	cmd.Flags().StringVar(&flags.description, "description", "", "Event description")
	cmd.Flags().Int64Var(&flags.opens, "opens", 0, "Seconds since Unix epoch when trading opens")
	cmd.Flags().Int64Var(&flags.closes, "closes", 0, "Seconds since Unix epoch when trading closes")
	cmd.SilenceUsage = true

	return cmd
}

func runCreateEvent(cmd *cobra.Command, opts *marketOptions, flags createEventFlags) error {
	if flags.title == "" {
		return clierror.User("--title is required")
	}
	if !cmd.Flags().Changed("opens") || !cmd.Flags().Changed("closes") {
		return clierror.User("--opens and --closes are required")
	}

	req := api.CreateEventRequest{
		Title:       flags.title,
		Description: flags.description,
		Opens:       time.Unix(flags.opens, 0).UTC(),
		Closes:      time.Unix(flags.closes, 0).UTC(),
	}
	if err := opts.client().CreateEvent(context.Background(), req); err != nil {
		return err
	}

	return render.Success(opts.formatter(cmd), "created", fmt.Sprintf("Created event %q", req.Title))
}

func newCreateStockCmd(opts *marketOptions) *cobra.Command {
	var (
		eventID uint32
		title   string
	)

	cmd := &cobra.Command{
		Use:   "create-stock",
		Short: "Create a stock",
		Long: `Add a stock to an existing event.

Example:
  pm admin create-stock --event-id 1 --title "Joe Biden"`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("event-id") {
				return clierror.User("--event-id is required")
			}
			if title == "" {
				return clierror.User("--title is required")
			}
			return runCreateStock(cmd, opts, api.CreateStockRequest{Title: title, EventID: eventID})
		},
	}

	cmd.Flags().Uint32Var(&eventID, "event-id", 0, "Event ID")
	cmd.Flags().StringVar(&title, "title", "", "Stock title")
	cmd.SilenceUsage = true

	return cmd
}

func runCreateStock(cmd *cobra.Command, opts *marketOptions, req api.CreateStockRequest) error {
	if err := opts.client().CreateStock(context.Background(), req); err != nil {
		return err
	}

	return render.Success(opts.formatter(cmd), "created",
		fmt.Sprintf("Created stock %q on event %d", req.Title, req.EventID))
}

func init() {
	opts := &marketOptions{}
	adminCmd := newAdminCmd(opts)
	adminCmd.PersistentPreRunE = withMarket(opts)

	rootCmd.AddCommand(adminCmd)
}
