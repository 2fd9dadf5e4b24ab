package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/terraform"
)

func newTerraformCmd(a *app) *cobra.Command {
	var workspace string
	cmd := &cobra.Command{
		Use:   "terraform",
		Short: "List analysed Terraform change sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			changes, err := c.ListTerraformChanges(cmd.Context(), workspace)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(changes)
			}
			rows := make([][]string, 0, len(changes))
			for _, ch := range changes {
				rows = append(rows, []string{
					ch.ID, ch.Workspace, string(ch.Risk),
					fmt.Sprintf("+%d ~%d -%d ±%d", ch.Creates, ch.Updates, ch.Deletes, ch.Replaces),
					formatTime(ch.PlannedAt), orDash(ch.PlannedBy),
				})
			}
			return table(a.stdout, []string{"ID", "WORKSPACE", "RISK", "CHANGES", "PLANNED", "BY"}, rows)
		},
	}
	cmd.Flags().StringVar(&workspace, "workspace", "", "only changes in this workspace")

	var (
		minLevel string
		address  string
		action   string
		summary  bool
	)
	logs := &cobra.Command{
		Use:   "logs <change-id>",
		Short: "Show a change's plan log, filtered and aggregated client-side",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			entries, err := c.GetTerraformChangeLogs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			filtered := terraform.Filter{
				MinLevel: minLevel,
				Address:  address,
				Action:   models.ChangeAction(action),
			}.Apply(entries)

			if summary {
				s := terraform.Aggregate(filtered)
				if a.jsonOut {
					return a.printJSON(s)
				}
				fmt.Fprintf(a.stdout, "entries:   %d (%d errors, %d warnings)\n", s.Entries, s.Errors, s.Warnings)
				fmt.Fprintf(a.stdout, "actions:   +%d ~%d -%d ±%d\n",
					s.ByAction[models.ChangeCreate], s.ByAction[models.ChangeUpdate],
					s.ByAction[models.ChangeDelete], s.ByAction[models.ChangeReplace])
				if s.HighestRisk != "" {
					fmt.Fprintf(a.stdout, "risk:      %s", s.HighestRisk)
					fmt.Fprintf(a.stdout, " (low=%d medium=%d high=%d critical=%d)\n",
						s.ByRisk[models.RiskLow], s.ByRisk[models.RiskMedium],
						s.ByRisk[models.RiskHigh], s.ByRisk[models.RiskCritical])
				}
				for rt, n := range s.ByResourceType {
					fmt.Fprintf(a.stdout, "  %s: %s\n", rt, strconv.Itoa(n))
				}
				return nil
			}

			if a.jsonOut {
				return a.printJSON(filtered)
			}
			for _, e := range filtered {
				line := fmt.Sprintf("%s %-5s %s", formatTime(e.Timestamp), e.Level, e.Message)
				if e.Address != "" {
					line += " (" + e.Address + ")"
				}
				fmt.Fprintln(a.stdout, line)
			}
			return nil
		},
	}
	logs.Flags().StringVar(&minLevel, "min-level", "", "drop entries below this level (trace|debug|info|warn|error)")
	logs.Flags().StringVar(&address, "address", "", "only entries whose resource address contains this")
	logs.Flags().StringVar(&action, "action", "", "only entries with this planned action")
	logs.Flags().BoolVar(&summary, "summary", false, "print the aggregate rollup instead of log lines")
	cmd.AddCommand(logs)
	return cmd
}
