package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceID(t *testing.T) {
	assert.True(t, ResourceID("prod-us-east-1"))
	assert.True(t, ResourceID("cluster_42"))
	assert.False(t, ResourceID(""))
	assert.False(t, ResourceID("a/b"))
	assert.False(t, ResourceID("a b"))
	assert.False(t, ResourceID("../etc"))
	assert.False(t, ResourceID(strings.Repeat("x", ResourceIDMaxLen+1)))
	assert.True(t, ResourceID(strings.Repeat("x", ResourceIDMaxLen)))
}

func TestPeriod(t *testing.T) {
	assert.True(t, Period("2026-08"))
	assert.True(t, Period("2026-12"))
	assert.False(t, Period("2026-13"))
	assert.False(t, Period("2026-00"))
	assert.False(t, Period("2026-8"))
	assert.False(t, Period("aug-2026"))
	assert.False(t, Period(""))
}

func TestWebhookURL(t *testing.T) {
	assert.True(t, WebhookURL("https://hooks.example.com/x"))
	assert.True(t, WebhookURL("http://10.0.0.5:8080/notify"))
	assert.False(t, WebhookURL("ftp://example.com/x"))
	assert.False(t, WebhookURL("hooks.example.com/x"))
	assert.False(t, WebhookURL("https://"))
	assert.False(t, WebhookURL(""))
}
