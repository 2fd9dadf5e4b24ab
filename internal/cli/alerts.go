package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/api"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
)

func newAlertsCmd(a *app) *cobra.Command {
	var (
		severity  string
		state     string
		clusterID string
	)
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			alerts, err := c.ListAlerts(cmd.Context(), api.AlertFilter{
				Severity:  models.Severity(severity),
				State:     models.AlertState(state),
				ClusterID: clusterID,
			})
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(alerts)
			}
			rows := make([][]string, 0, len(alerts))
			for _, al := range alerts {
				rows = append(rows, []string{
					al.ID, al.Title, string(al.Severity), string(al.State),
					orDash(al.ClusterID), orDash(al.Source), formatTime(al.FiredAt),
				})
			}
			return table(a.stdout, []string{"ID", "TITLE", "SEVERITY", "STATE", "CLUSTER", "SOURCE", "FIRED"}, rows)
		},
	}
	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity (info|warning|error|critical)")
	cmd.Flags().StringVar(&state, "state", "", "filter by state (firing|acknowledged|resolved)")
	cmd.Flags().StringVar(&clusterID, "cluster", "", "filter by cluster id")

	cmd.AddCommand(&cobra.Command{
		Use:   "ack <alert-id>",
		Short: "Acknowledge an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			al, err := c.AcknowledgeAlert(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "alert %s acknowledged\n", al.ID)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "resolve <alert-id>",
		Short: "Resolve an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			al, err := c.ResolveAlert(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "alert %s resolved\n", al.ID)
			return nil
		},
	})
	return cmd
}
