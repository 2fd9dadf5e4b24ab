package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newClustersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "List registered Kubernetes clusters",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			clusters, err := c.ListClusters(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(clusters)
			}
			rows := make([][]string, 0, len(clusters))
			for _, cl := range clusters {
				rows = append(rows, []string{
					cl.ID, cl.Name, cl.Provider, orDash(cl.Region),
					orDash(cl.Version), cl.Status, strconv.Itoa(cl.NodeCount),
				})
			}
			return table(a.stdout, []string{"ID", "NAME", "PROVIDER", "REGION", "VERSION", "STATUS", "NODES"}, rows)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "metrics <cluster-id>",
		Short: "Show a cluster's utilisation summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			m, err := c.GetClusterMetrics(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(m)
			}
			fmt.Fprintf(a.stdout, "cluster:  %s\n", m.ClusterID)
			fmt.Fprintf(a.stdout, "cpu:      %.1f%%\n", m.CPUPercent)
			fmt.Fprintf(a.stdout, "memory:   %.1f%%\n", m.MemoryPercent)
			fmt.Fprintf(a.stdout, "pods:     %d/%d\n", m.PodCount, m.PodCapacity)
			fmt.Fprintf(a.stdout, "nodes:    %d/%d ready\n", m.NodesReady, m.NodesTotal)
			fmt.Fprintf(a.stdout, "collected: %s\n", formatTime(m.CollectedAt))
			return nil
		},
	})
	return cmd
}
