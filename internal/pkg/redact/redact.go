// Package redact keeps bearer tokens out of log output.
package redact

import (
	"net/url"
	"strings"
)

const redactedValue = "***REDACTED***"

// sensitive query parameters, lowercase.
var sensitiveParams = map[string]bool{
	"token":        true,
	"access_token": true,
	"api_key":      true,
}

// URL replaces sensitive query parameter values in raw with a placeholder.
// Unparseable input is returned as-is minus its query string, which is the
// safe direction for a log line.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		if i := strings.IndexByte(raw, '?'); i >= 0 {
			return raw[:i]
		}
		return raw
	}
	q := u.Query()
	changed := false
	for k := range q {
		if sensitiveParams[strings.ToLower(k)] {
			q.Set(k, redactedValue)
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Token masks all but a short prefix of a bearer token so log lines stay
// correlatable without being replayable.
func Token(tok string) string {
	if len(tok) <= 8 {
		return redactedValue
	}
	return tok[:6] + "..." + redactedValue
}
