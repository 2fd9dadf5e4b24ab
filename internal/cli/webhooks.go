package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/api"
)

func newWebhooksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "List configured webhooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			hooks, err := c.ListWebhooks(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(hooks)
			}
			rows := make([][]string, 0, len(hooks))
			for _, h := range hooks {
				enabled := "yes"
				if !h.Enabled {
					enabled = "no"
				}
				rows = append(rows, []string{
					h.ID, h.Name, h.URL, strings.Join(h.Events, ","), enabled,
				})
			}
			return table(a.stdout, []string{"ID", "NAME", "URL", "EVENTS", "ENABLED"}, rows)
		},
	}

	var (
		name   string
		url    string
		events []string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a new webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || url == "" {
				return fmt.Errorf("--name and --url are required")
			}
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			h, err := c.CreateWebhook(cmd.Context(), api.CreateWebhookRequest{
				Name:    name,
				URL:     url,
				Events:  events,
				Enabled: true,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "webhook %s created\n", h.ID)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "webhook name")
	create.Flags().StringVar(&url, "url", "", "delivery URL")
	create.Flags().StringSliceVar(&events, "events", nil, "event names to fire on")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <webhook-id>",
		Short: "Remove a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			if err := c.DeleteWebhook(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "webhook %s deleted\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "test <webhook-id>",
		Short: "Fire a test delivery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			res, err := c.TestWebhook(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(res)
			}
			if res.Delivered {
				fmt.Fprintf(a.stdout, "delivered (status %d, %.0fms)\n", res.StatusCode, res.LatencyMs)
			} else {
				fmt.Fprintf(a.stdout, "delivery failed: %s\n", orDash(res.Error))
			}
			return nil
		},
	})
	return cmd
}
