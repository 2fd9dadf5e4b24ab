package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCostsCmd(a *app) *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Show the AWS cost summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			s, err := c.GetCostSummary(cmd.Context(), period)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(s)
			}
			fmt.Fprintf(a.stdout, "period:    %s\n", s.Period)
			fmt.Fprintf(a.stdout, "total:     $%.2f (%+.1f%% vs previous)\n", s.TotalUSD, s.DeltaPercent)
			if s.ForecastUSD > 0 {
				fmt.Fprintf(a.stdout, "forecast:  $%.2f\n", s.ForecastUSD)
			}
			if s.TopService != "" {
				fmt.Fprintf(a.stdout, "top:       %s ($%.2f)\n", s.TopService, s.TopServiceUSD)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", "", "billing period YYYY-MM (default current month)")

	services := &cobra.Command{
		Use:   "services",
		Short: "Per-service cost breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			list, err := c.ListServiceCosts(cmd.Context(), period)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(list)
			}
			rows := make([][]string, 0, len(list))
			for _, sc := range list {
				rows = append(rows, []string{
					sc.Service,
					fmt.Sprintf("$%.2f", sc.AmountUSD),
					fmt.Sprintf("%+.1f%%", sc.DeltaPercent),
				})
			}
			return table(a.stdout, []string{"SERVICE", "AMOUNT", "DELTA"}, rows)
		},
	}
	services.Flags().StringVar(&period, "period", "", "billing period YYYY-MM (default current month)")
	cmd.AddCommand(services)
	return cmd
}
