package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newPipelinesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipelines",
		Short: "List CI/CD pipelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			pipelines, err := c.ListPipelines(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(pipelines)
			}
			rows := make([][]string, 0, len(pipelines))
			for _, p := range pipelines {
				rows = append(rows, []string{
					p.ID, p.Name, p.Repository, p.Branch, string(p.Status),
					fmt.Sprintf("%.0f%%", p.SuccessRate*100), formatTimePtr(p.LastRunAt),
				})
			}
			return table(a.stdout, []string{"ID", "NAME", "REPO", "BRANCH", "STATUS", "SUCCESS", "LAST RUN"}, rows)
		},
	}

	var limit int
	runs := &cobra.Command{
		Use:   "runs <pipeline-id>",
		Short: "List recent runs of a pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			list, err := c.ListPipelineRuns(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(list)
			}
			rows := make([][]string, 0, len(list))
			for _, r := range list {
				rows = append(rows, []string{
					strconv.Itoa(r.Number), string(r.Status), r.Commit,
					orDash(r.TriggeredBy), formatTime(r.StartedAt),
					fmt.Sprintf("%.0fs", r.DurationSec),
				})
			}
			return table(a.stdout, []string{"#", "STATUS", "COMMIT", "BY", "STARTED", "DURATION"}, rows)
		},
	}
	runs.Flags().IntVar(&limit, "limit", 20, "maximum runs to fetch")
	cmd.AddCommand(runs)
	return cmd
}
