package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLMasksTokenParam(t *testing.T) {
	out := URL("wss://ops.example.com/api/v1/kubernetes/events/stream?token=eyJhbGciOi")
	assert.NotContains(t, out, "eyJhbGciOi")
	assert.Contains(t, out, "token=")
	assert.Contains(t, out, "ops.example.com")
}

func TestURLLeavesHarmlessParams(t *testing.T) {
	out := URL("https://ops.example.com/costs?period=2026-08")
	assert.Equal(t, "https://ops.example.com/costs?period=2026-08", out)
}

func TestURLUnparseableDropsQuery(t *testing.T) {
	out := URL("http://bad host/x?token=secret")
	assert.NotContains(t, out, "secret")
}

func TestToken(t *testing.T) {
	assert.Equal(t, "***REDACTED***", Token("short"))
	masked := Token("eyJhbGciOiJIUzI1NiJ9.payload.sig")
	assert.NotContains(t, masked, "payload")
	assert.Contains(t, masked, "eyJhbG")
}
