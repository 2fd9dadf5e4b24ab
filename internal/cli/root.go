// Package cli implements the opssight command tree. The root command owns
// the composition: config, logger, token store, REST client, and stream
// client are constructed here and handed to subcommands; there is no
// global client instance.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/api"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/auth"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/config"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/pkg/logger"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/stream"
)

type app struct {
	cfg    *config.Config
	cfgErr error
	log    *slog.Logger
	tokens *auth.Store

	// Flag overrides; empty means use config.
	apiURL   string
	jsonOut  bool

	apiOnce sync.Once
	apiC    *api.Client
	apiErr  error

	stdout io.Writer
	stderr io.Writer
}

// NewRootCommand builds the opssight command tree against the process's
// standard streams.
func NewRootCommand() *cobra.Command {
	return newRootCommand(os.Stdout, os.Stderr)
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	cfg, cfgErr := config.Load()
	if cfg == nil {
		cfg = &config.Config{}
	}
	a := &app{
		cfg:    cfg,
		cfgErr: cfgErr,
		log:    logger.New(cfg.LogLevel),
		tokens: auth.NewStore(cfg.TokenPath),
		stdout: out,
		stderr: errOut,
	}

	cmd := &cobra.Command{
		Use:           "opssight",
		Short:         "Terminal client for the OpsSight operations dashboard",
		Long:          "opssight tails the real-time Kubernetes event stream and queries pipelines, clusters, alerts, webhooks, terraform changes, AWS costs, and RBAC from the OpsSight backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "backend base URL (overrides config and OPSSIGHT_API_URL)")
	cmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print raw JSON instead of tables")

	cmd.AddCommand(
		newLoginCmd(a),
		newTailCmd(a),
		newClustersCmd(a),
		newPipelinesCmd(a),
		newAlertsCmd(a),
		newWebhooksCmd(a),
		newTerraformCmd(a),
		newCostsCmd(a),
		newHistoryCmd(a),
		newRolesCmd(a),
		newStatusCmd(a),
	)
	return cmd
}

func (a *app) baseURL() string {
	if a.apiURL != "" {
		return a.apiURL
	}
	return a.cfg.APIURL
}

// apiClient lazily builds the REST client so commands that never touch the
// network (history, login) do not pay for it.
func (a *app) apiClient() (*api.Client, error) {
	a.apiOnce.Do(func() {
		a.apiC, a.apiErr = api.NewClient(api.Options{
			BaseURL:        a.baseURL(),
			Token:          a.tokens.Token,
			Timeout:        a.cfg.RequestTimeout(),
			RateLimit:      a.cfg.RateLimitPerSec,
			RateLimitBurst: a.cfg.RateLimitBurst,
			CacheTTL:       a.cfg.CacheTTL(),
			Logger:         a.log,
		})
	})
	return a.apiC, a.apiErr
}

// streamClient builds a fresh stream client; the caller owns its lifecycle.
func (a *app) streamClient() (*stream.Client, error) {
	return stream.NewClient(stream.Options{
		APIURL:               a.baseURL(),
		Token:                a.tokens.Token,
		ConnectTimeout:       a.cfg.ConnectTimeout(),
		HeartbeatInterval:    a.cfg.HeartbeatInterval(),
		LivenessMultiplier:   a.cfg.LivenessMultiplier,
		ReconnectBase:        a.cfg.ReconnectBase(),
		MaxReconnectAttempts: a.cfg.MaxReconnectAttempts,
		Logger:               a.log,
	})
}

func (a *app) printJSON(v any) error {
	return writeJSON(a.stdout, v)
}

func warnExpiredToken(a *app) {
	if err := a.tokens.CheckExpiry(nowFunc()); err != nil {
		fmt.Fprintf(a.stderr, "warning: %v\n", err)
	}
}
