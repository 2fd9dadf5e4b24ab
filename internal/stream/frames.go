package stream

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
)

// streamPath is the backend's event-stream endpoint under the API base.
const streamPath = "/api/v1/kubernetes/events/stream"

// clientFrame is an outbound client-to-server message.
type clientFrame struct {
	Type           string             `json:"type"`
	SubscriptionID string             `json:"subscriptionId,omitempty"`
	Types          []models.EventType `json:"types,omitempty"`
	ClusterID      string             `json:"clusterId,omitempty"`
}

func heartbeatFrame() clientFrame {
	return clientFrame{Type: "heartbeat"}
}

func subscribeFrame(id string, sub Subscription) clientFrame {
	return clientFrame{
		Type:           "subscribe",
		SubscriptionID: id,
		Types:          sub.Types,
		ClusterID:      sub.ClusterID,
	}
}

func unsubscribeFrame(id string) clientFrame {
	return clientFrame{Type: "unsubscribe", SubscriptionID: id}
}

// streamURL derives the WebSocket endpoint from the API base URL: http
// becomes ws, https becomes wss, with the bearer token as a query
// parameter (the backend authenticates the upgrade from it).
func streamURL(apiURL, token string) (string, error) {
	u, err := url.Parse(strings.TrimRight(apiURL, "/"))
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported api url scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + streamPath
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
