package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newRolesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List RBAC roles defined by the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient()
			if err != nil {
				return err
			}
			roles, err := c.ListRoles(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(roles)
			}
			rows := make([][]string, 0, len(roles))
			for _, r := range roles {
				rows = append(rows, []string{
					r.ID, r.Name, orDash(r.Description), strings.Join(r.Permissions, ","),
				})
			}
			return table(a.stdout, []string{"ID", "NAME", "DESCRIPTION", "PERMISSIONS"}, rows)
		},
	}
}
