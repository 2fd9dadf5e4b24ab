package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// EnvelopeType discriminates every frame received from the event stream.
type EnvelopeType string

const (
	EnvelopeEvent           EnvelopeType = "event"
	EnvelopeHeartbeat       EnvelopeType = "heartbeat"
	EnvelopeError           EnvelopeType = "error"
	EnvelopeSubscriptionAck EnvelopeType = "subscription_ack"
)

// Envelope is the outer JSON object wrapping every stream message.
type Envelope struct {
	Type           EnvelopeType    `json:"type"`
	Data           json.RawMessage `json:"data,omitempty"`
	Error          json.RawMessage `json:"error,omitempty"`
	SubscriptionID string          `json:"subscriptionId,omitempty"`
}

// EventType classifies a stream event.
type EventType string

const (
	EventTypePod      EventType = "pod"
	EventTypeNode     EventType = "node"
	EventTypeCluster  EventType = "cluster"
	EventTypeResource EventType = "resource"
	EventTypeAlert    EventType = "alert"

	// EventTypeAll is the wildcard accepted in subscription filters,
	// never in events themselves.
	EventTypeAll EventType = "all"
)

// EventAction is what happened to the subject of an event.
type EventAction string

const (
	ActionCreated EventAction = "created"
	ActionUpdated EventAction = "updated"
	ActionDeleted EventAction = "deleted"
	ActionError   EventAction = "error"
)

// Severity grades an event. Optional on the wire.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// StreamEvent is one decoded Kubernetes event from the stream.
// Payload holds the typed body for Type; exactly one shape per event type.
type StreamEvent struct {
	ID        string       `json:"id"`
	Type      EventType    `json:"type"`
	Action    EventAction  `json:"action"`
	Timestamp time.Time    `json:"timestamp"`
	ClusterID string       `json:"clusterId"`
	Severity  Severity     `json:"severity,omitempty"`
	Payload   EventPayload `json:"data,omitempty"`
}

// EventPayload is implemented by every per-type event body.
type EventPayload interface {
	eventPayload()
}

// PodPayload is the body of a pod event.
type PodPayload struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Phase     string `json:"phase,omitempty"`
	Node      string `json:"node,omitempty"`
	Restarts  int    `json:"restarts,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// NodePayload is the body of a node event.
type NodePayload struct {
	Name          string  `json:"name"`
	Ready         bool    `json:"ready"`
	CPUPercent    float64 `json:"cpu_percent,omitempty"`
	MemoryPercent float64 `json:"memory_percent,omitempty"`
	Condition     string  `json:"condition,omitempty"`
}

// ClusterPayload is the body of a cluster-level event.
type ClusterPayload struct {
	Name      string `json:"name"`
	Status    string `json:"status,omitempty"`
	NodeCount int    `json:"node_count,omitempty"`
	Version   string `json:"version,omitempty"`
}

// ResourcePayload is the body of a generic resource event.
type ResourcePayload struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
	Message   string `json:"message,omitempty"`
}

// AlertPayload is the body of an alert event.
type AlertPayload struct {
	AlertID string `json:"alert_id"`
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
	Source  string `json:"source,omitempty"`
}

func (*PodPayload) eventPayload()      {}
func (*NodePayload) eventPayload()     {}
func (*ClusterPayload) eventPayload()  {}
func (*ResourcePayload) eventPayload() {}
func (*AlertPayload) eventPayload()    {}

// wireEvent is the raw shape of an event body before payload typing.
type wireEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Action    EventAction     `json:"action"`
	Timestamp string          `json:"timestamp"`
	ClusterID string          `json:"clusterId"`
	Severity  Severity        `json:"severity,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// DecodeStreamEvent validates and types one event body from an envelope's
// data field. The payload is decoded by the event type; unknown types and
// malformed bodies are rejected so the caller can drop the frame.
func DecodeStreamEvent(raw json.RawMessage) (*StreamEvent, error) {
	var w wireEvent
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if w.ID == "" {
		return nil, fmt.Errorf("decode event: missing id")
	}
	switch w.Action {
	case ActionCreated, ActionUpdated, ActionDeleted, ActionError:
	default:
		return nil, fmt.Errorf("decode event %s: unknown action %q", w.ID, w.Action)
	}
	if w.Severity != "" {
		switch w.Severity {
		case SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		default:
			return nil, fmt.Errorf("decode event %s: unknown severity %q", w.ID, w.Severity)
		}
	}
	ts, err := time.Parse(time.RFC3339, w.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("decode event %s: bad timestamp: %w", w.ID, err)
	}

	ev := &StreamEvent{
		ID:        w.ID,
		Type:      w.Type,
		Action:    w.Action,
		Timestamp: ts,
		ClusterID: w.ClusterID,
		Severity:  w.Severity,
	}
	ev.Payload, err = decodePayload(w.Type, w.Data)
	if err != nil {
		return nil, fmt.Errorf("decode event %s: %w", w.ID, err)
	}
	return ev, nil
}

func decodePayload(t EventType, data json.RawMessage) (EventPayload, error) {
	var dst EventPayload
	switch t {
	case EventTypePod:
		dst = &PodPayload{}
	case EventTypeNode:
		dst = &NodePayload{}
	case EventTypeCluster:
		dst = &ClusterPayload{}
	case EventTypeResource:
		dst = &ResourcePayload{}
	case EventTypeAlert:
		dst = &AlertPayload{}
	default:
		return nil, fmt.Errorf("unknown event type %q", t)
	}
	if len(data) == 0 {
		return dst, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, fmt.Errorf("payload for %s: %w", t, err)
	}
	return dst, nil
}
