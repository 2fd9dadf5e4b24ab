package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/history"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/stream"
)

func newTailCmd(a *app) *cobra.Command {
	var (
		types     []string
		clusterID string
		record    bool
	)
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Stream live Kubernetes events",
		Long:  "tail connects to the backend event stream and prints events as they arrive. Filter with --types (pod,node,cluster,resource,alert or all) and --cluster. With --record, events are also written to the local history database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			warnExpiredToken(a)

			var store *history.Store
			if record {
				var err error
				store, err = history.Open(expandPath(a.cfg.HistoryPath))
				if err != nil {
					return err
				}
				defer store.Close()
			}

			client, err := a.streamClient()
			if err != nil {
				return err
			}
			defer client.Disconnect()

			filter := make([]models.EventType, 0, len(types))
			for _, t := range types {
				filter = append(filter, models.EventType(strings.TrimSpace(t)))
			}

			_, err = client.Subscribe(stream.Subscription{
				Types:     filter,
				ClusterID: clusterID,
				Callback: func(ev *models.StreamEvent) {
					a.printEvent(ev)
					if store != nil {
						if err := store.Record(cmd.Context(), ev); err != nil {
							a.log.Warn("failed to record event", "event_id", ev.ID, "error", err)
						}
					}
				},
			})
			if err != nil {
				return err
			}

			if err := client.Connect(cmd.Context()); err != nil {
				return fmt.Errorf("connect to event stream: %w", err)
			}
			fmt.Fprintf(a.stderr, "connected; streaming events (Ctrl-C to stop)\n")

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-sig:
			case <-cmd.Context().Done():
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&types, "types", []string{"all"}, "event types to stream")
	cmd.Flags().StringVar(&clusterID, "cluster", "", "only events from this cluster id")
	cmd.Flags().BoolVar(&record, "record", false, "record streamed events to the history database")
	return cmd
}

func (a *app) printEvent(ev *models.StreamEvent) {
	if a.jsonOut {
		_ = writeJSON(a.stdout, ev)
		return
	}
	sev := ""
	if ev.Severity != "" {
		sev = " [" + string(ev.Severity) + "]"
	}
	fmt.Fprintf(a.stdout, "%s %-8s %-8s cluster=%s%s %s\n",
		ev.Timestamp.Local().Format(time.TimeOnly),
		ev.Type, ev.Action, ev.ClusterID, sev, describePayload(ev.Payload))
}

func describePayload(p models.EventPayload) string {
	switch v := p.(type) {
	case *models.PodPayload:
		s := v.Namespace + "/" + v.Name
		if v.Phase != "" {
			s += " phase=" + v.Phase
		}
		if v.Reason != "" {
			s += " reason=" + v.Reason
		}
		return s
	case *models.NodePayload:
		s := v.Name
		if !v.Ready {
			s += " NotReady"
		}
		if v.Condition != "" {
			s += " condition=" + v.Condition
		}
		return s
	case *models.ClusterPayload:
		s := v.Name
		if v.Status != "" {
			s += " status=" + v.Status
		}
		return s
	case *models.ResourcePayload:
		s := v.Kind + " " + v.Name
		if v.Namespace != "" {
			s = v.Kind + " " + v.Namespace + "/" + v.Name
		}
		if v.Message != "" {
			s += ": " + v.Message
		}
		return s
	case *models.AlertPayload:
		s := v.Title
		if v.Message != "" {
			s += ": " + v.Message
		}
		return s
	default:
		return ""
	}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "$HOME") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + strings.TrimPrefix(path, "$HOME")
		}
	}
	return path
}
