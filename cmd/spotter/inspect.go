package main

import (
	"fmt"
	"maps"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/spf13/cobra"
)

var inspectAuditLimit int

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print row counts and the most recent audit events",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		counts, err := db.TableCounts(ctx)
		if err != nil {
			return fmt.Errorf("counting rows: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TABLE\tROWS")
		for _, table := range slices.Sorted(maps.Keys(counts)) {
			fmt.Fprintf(w, "%s\t%d\n", table, counts[table])
		}
		if err := w.Flush(); err != nil {
			return err
		}

		events, err := db.AuditEvents().ListAuditEvents(ctx, domain.AuditFilter{Limit: inspectAuditLimit})
		if err != nil {
			return fmt.Errorf("listing audit events: %w", err)
		}
		if len(events) == 0 {
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout())
		w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tACTION\tACTOR\tSUBJECT")
		for _, e := range events {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.CreatedAt.Format(time.RFC3339), e.Action, e.ActorID, e.SubjectID)
		}
		return w.Flush()
	},
}

func init() {
	inspectCmd.Flags().IntVar(&inspectAuditLimit, "audit", 10, "number of recent audit events to show")
}
