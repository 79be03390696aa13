package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"travellog/internal/bootstrap"
	"travellog/internal/controller"
	navdomain "travellog/internal/modules/navigation/domain"
	"travellog/internal/platform/config"
)

type rootOptions struct {
	configPath string
	start      string
	seed       int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "travellog",
		Short:         "Keep a log of your trips",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath+")")
	root.PersistentFlags().StringVar(&opts.start, "start", "trips", "start screen: trips|add|detail|timeline")
	root.PersistentFlags().IntVar(&opts.seed, "seed", -1, "number of demo trips (default from config)")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newTripsCmd(opts))
	root.AddCommand(newTimelineCmd(opts))
	return root
}

func loadApp(ctx context.Context, opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.New(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.seed >= 0 {
		cfg.SeedCount = opts.seed
	}
	return bootstrap.New(ctx, cfg)
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("the terminal UI needs a terminal; try %q", cmd.Root().Name()+" trips")
	}
	start, err := navdomain.ParseScreen(opts.start)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	app, err := loadApp(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return bootstrap.RunTUI(ctx, app, start)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the travellog terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func newTripsCmd(opts *rootOptions) *cobra.Command {
	trips := &cobra.Command{
		Use:   "trips",
		Short: "List trips, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			list, err := app.TripCLI.ListTrips(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no trips")
				return nil
			}
			bold := color.New(color.Bold).SprintFunc()
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 48
			tbl.AddRow(bold("ID"), bold("DATE"), bold("TITLE"), bold("WHERE"))
			for _, t := range list {
				where := "-"
				if t.Coordinate != nil {
					where = t.Coordinate.String()
				}
				tbl.AddRow(t.ID, t.Date, t.Title, where)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		},
	}

	trips.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.TripCLI.Select(ctx, args[0]); err != nil {
				return err
			}
			cur, err := app.TripCLI.Current(ctx)
			if err != nil {
				return err
			}
			t := cur.Trip
			weather := "-"
			if w, ok := app.TripCLI.Weather(ctx, t); ok {
				weather = controller.FormatWeather(w)
			}
			where := "-"
			if t.Coordinate != nil {
				where = t.Coordinate.String()
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\ntitle: %s\ndate: %s\nwhere: %s\nweather: %s\nnotes: %s\n",
				t.ID, t.Title, t.Date, where, weather, t.Notes)
			return nil
		},
	})
	return trips
}

func newTimelineCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Print trips as a timeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			list, err := app.TripCLI.ListTrips(ctx)
			if err != nil {
				return err
			}
			for _, t := range list {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  │ %s\n", t.Date, t.Title)
			}
			return nil
		},
	}
}
