// Package validate checks user-supplied identifiers and parameters before
// they reach the wire, so typos fail locally instead of as server 4xx noise.
package validate

import (
	"net/url"
	"regexp"
)

// ResourceIDMaxLen bounds ids interpolated into request paths.
const ResourceIDMaxLen = 128

var periodRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ResourceID reports whether id is safe to use as a path segment:
// alphanumeric, hyphen, underscore; 1 to ResourceIDMaxLen characters.
func ResourceID(id string) bool {
	if id == "" || len(id) > ResourceIDMaxLen {
		return false
	}
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			continue
		}
		return false
	}
	return true
}

// Period reports whether p is a billing period in YYYY-MM form.
func Period(p string) bool {
	return periodRe.MatchString(p)
}

// WebhookURL reports whether raw is an absolute http or https URL with a
// host, the only targets the backend will deliver to.
func WebhookURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
