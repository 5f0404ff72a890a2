package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/emitter/pkg/emitter/failstore"
)

func buildFailuresCmd(cfg *cliConfig) *cobra.Command {
	failures := &cobra.Command{
		Use:   "failures",
		Short: "List, count, show and purge recorded listener failures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("failures requires a subcommand: list|count|show|purge")
		},
	}

	var (
		event  string
		limit  int
		asJSON bool
	)

	list := &cobra.Command{
		Use:     "list",
		Short:   "List failures, newest first",
		Example: "  emitterctl failures list --event scroll --limit 20",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cfg.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := store.List(event, limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), recs)
			}
			return writeTable(cmd.OutOrStdout(), recs)
		},
	}
	list.Flags().StringVar(&event, "event", "", "Only failures of this event")
	list.Flags().IntVar(&limit, "limit", 50, "Maximum number of failures (0 for all)")
	list.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	count := &cobra.Command{
		Use:   "count",
		Short: "Count failures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cfg.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Count(event)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	count.Flags().StringVar(&event, "event", "", "Only failures of this event")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show one failure with its stack trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cfg.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Get(args[0])
			if err != nil {
				return fmt.Errorf("failure %s: %w", args[0], err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "id:        %s\n", rec.ID)
			fmt.Fprintf(w, "event:     %s\n", rec.Event)
			fmt.Fprintf(w, "phase:     %s\n", rec.Phase)
			fmt.Fprintf(w, "time:      %s\n", rec.Timestamp.Format(time.RFC3339Nano))
			fmt.Fprintf(w, "message:   %s\n", rec.Message)
			if rec.Stack != "" {
				fmt.Fprintf(w, "\n%s\n", strings.TrimRight(rec.Stack, "\n"))
			}
			return nil
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	purge := &cobra.Command{
		Use:     "purge",
		Short:   "Delete failures",
		Example: "  emitterctl failures purge --event exposure",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cfg.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Purge(event)
			if err != nil {
				return err
			}
			cfg.logger.Info("purged failures", slog.String("event", event), slog.Int("count", n))
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d\n", n)
			return nil
		},
	}
	purge.Flags().StringVar(&event, "event", "", "Only failures of this event")

	failures.AddCommand(list, count, show, purge)
	return failures
}

func writeTable(w io.Writer, recs []failstore.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEVENT\tPHASE\tTIME\tMESSAGE")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Event, r.Phase, r.Timestamp.Format(time.RFC3339), firstLine(r.Message))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
