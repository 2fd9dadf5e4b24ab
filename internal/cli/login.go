package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the backend bearer token",
		Long:  "login saves the token used for REST calls and the event-stream upgrade. Pass it with --token or paste it when prompted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				fmt.Fprint(a.stderr, "token: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read token: %w", err)
				}
				token = strings.TrimSpace(line)
			}
			if token == "" {
				return fmt.Errorf("empty token")
			}
			if err := a.tokens.Save(token); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "token saved to %s\n", a.tokens.Path())
			if claims, err := a.tokens.Claims(); err == nil && claims.Username != "" {
				fmt.Fprintf(a.stdout, "logged in as %s\n", claims.Username)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "bearer token issued by the backend")
	return cmd
}
