package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/history"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		eventType string
		clusterID string
		since     time.Duration
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List events recorded by `tail --record`",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(expandPath(a.cfg.HistoryPath))
			if err != nil {
				return err
			}
			defer store.Close()

			f := history.ListFilter{
				Type:      models.EventType(eventType),
				ClusterID: clusterID,
				Limit:     limit,
			}
			if since > 0 {
				f.Since = nowFunc().Add(-since)
			}
			entries, err := store.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					formatTime(e.Timestamp), string(e.Type), string(e.Action),
					e.ClusterID, orDash(string(e.Severity)), e.ID,
				})
			}
			return table(a.stdout, []string{"TIMESTAMP", "TYPE", "ACTION", "CLUSTER", "SEVERITY", "EVENT ID"}, rows)
		},
	}
	cmd.Flags().StringVar(&eventType, "type", "", "filter by event type")
	cmd.Flags().StringVar(&clusterID, "cluster", "", "filter by cluster id")
	cmd.Flags().DurationVar(&since, "since", 0, "only events newer than this (e.g. 2h)")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum entries")

	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Delete recorded events past the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(expandPath(a.cfg.HistoryPath))
			if err != nil {
				return err
			}
			defer store.Close()

			days := a.cfg.HistoryRetentionDays
			if days <= 0 {
				days = 7
			}
			cutoff := nowFunc().AddDate(0, 0, -days)
			removed, err := store.Prune(cmd.Context(), cutoff)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "pruned %d events older than %s\n", removed, cutoff.Format("2006-01-02"))
			return nil
		},
	})
	return cmd
}
