package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStreamEventTypesPayload(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "ev-1",
		"type": "pod",
		"action": "updated",
		"timestamp": "2026-08-24T10:30:00Z",
		"clusterId": "prod-us-east-1",
		"severity": "warning",
		"data": {"name": "api-7d9f", "namespace": "default", "phase": "CrashLoopBackOff", "restarts": 4}
	}`)

	ev, err := DecodeStreamEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, "ev-1", ev.ID)
	assert.Equal(t, EventTypePod, ev.Type)
	assert.Equal(t, ActionUpdated, ev.Action)
	assert.Equal(t, "prod-us-east-1", ev.ClusterID)
	assert.Equal(t, SeverityWarning, ev.Severity)
	assert.Equal(t, time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC), ev.Timestamp)

	pod, ok := ev.Payload.(*PodPayload)
	require.True(t, ok, "pod event should carry *PodPayload, got %T", ev.Payload)
	assert.Equal(t, "api-7d9f", pod.Name)
	assert.Equal(t, 4, pod.Restarts)
}

func TestDecodeStreamEventPayloadShapes(t *testing.T) {
	cases := []struct {
		eventType EventType
		want      EventPayload
	}{
		{EventTypePod, &PodPayload{}},
		{EventTypeNode, &NodePayload{}},
		{EventTypeCluster, &ClusterPayload{}},
		{EventTypeResource, &ResourcePayload{}},
		{EventTypeAlert, &AlertPayload{}},
	}
	for _, tc := range cases {
		raw := json.RawMessage(`{"id":"x","type":"` + string(tc.eventType) + `","action":"created","timestamp":"2026-08-24T00:00:00Z","clusterId":"c1"}`)
		ev, err := DecodeStreamEvent(raw)
		require.NoError(t, err, "type %s", tc.eventType)
		assert.IsType(t, tc.want, ev.Payload, "type %s", tc.eventType)
	}
}

func TestDecodeStreamEventRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{{`},
		{"missing id", `{"type":"pod","action":"created","timestamp":"2026-08-24T00:00:00Z"}`},
		{"unknown action", `{"id":"x","type":"pod","action":"exploded","timestamp":"2026-08-24T00:00:00Z"}`},
		{"unknown severity", `{"id":"x","type":"pod","action":"created","severity":"mild","timestamp":"2026-08-24T00:00:00Z"}`},
		{"bad timestamp", `{"id":"x","type":"pod","action":"created","timestamp":"yesterday"}`},
		{"unknown type", `{"id":"x","type":"volcano","action":"created","timestamp":"2026-08-24T00:00:00Z"}`},
		{"wildcard type", `{"id":"x","type":"all","action":"created","timestamp":"2026-08-24T00:00:00Z"}`},
		{"payload shape mismatch", `{"id":"x","type":"pod","action":"created","timestamp":"2026-08-24T00:00:00Z","data":[1,2]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeStreamEvent(json.RawMessage(tc.raw))
			assert.Error(t, err)
		})
	}
}

func TestDecodeStreamEventEmptyDataKeepsZeroPayload(t *testing.T) {
	raw := json.RawMessage(`{"id":"x","type":"node","action":"deleted","timestamp":"2026-08-24T00:00:00Z","clusterId":"c1"}`)
	ev, err := DecodeStreamEvent(raw)
	require.NoError(t, err)
	node, ok := ev.Payload.(*NodePayload)
	require.True(t, ok)
	assert.Empty(t, node.Name)
}
