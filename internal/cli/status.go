package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the dashboard summary and current identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			warnExpiredToken(a)
			c, err := a.apiClient()
			if err != nil {
				return err
			}

			m, err := c.GetDashboardMetrics(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(m)
			}

			fmt.Fprintf(a.stdout, "pipelines: %d (%d failing)\n", m.PipelinesTotal, m.PipelinesFailing)
			fmt.Fprintf(a.stdout, "clusters:  %d (%d healthy)\n", m.ClustersTotal, m.ClustersHealthy)
			fmt.Fprintf(a.stdout, "alerts:    %d firing (%d critical)\n", m.AlertsFiring, m.AlertsCritical)
			fmt.Fprintf(a.stdout, "spend:     $%.2f month to date\n", m.MonthToDateUSD)

			// Identity is best-effort; status stays useful without RBAC access.
			if perms, err := c.GetMyPermissions(cmd.Context()); err == nil {
				fmt.Fprintf(a.stdout, "user:      %s (%s)\n", perms.Username, strings.Join(perms.Roles, ","))
			}
			return nil
		},
	}
}
