// Package auth loads the bearer token the OpsSight backend issued at login.
// The token lives in a fixed file under the user's config directory; it is
// read once per connection and never refreshed mid-connection.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoToken = errors.New("no token: run `opssight login` or write the token file")
var ErrExpiredToken = errors.New("token expired")

// Claims mirrors the backend's access-token claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Store reads bearer tokens from a file on disk.
type Store struct {
	path string
}

// NewStore returns a token store for the given file path. A leading $HOME
// or ~ is expanded.
func NewStore(path string) *Store {
	return &Store{path: expandHome(path)}
}

// Path returns the resolved token file path.
func (s *Store) Path() string {
	return s.path
}

// Token returns the raw bearer token. The file content is trimmed so a
// trailing newline from `echo` does not corrupt the Authorization header.
func (s *Store) Token() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("read token %s: %w", s.path, err)
	}
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// Save writes the token with owner-only permissions.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(strings.TrimSpace(token)+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token %s: %w", s.path, err)
	}
	return nil
}

// Claims decodes the token's claims without verifying the signature.
// Verification happens server-side; the client only needs expiry and
// identity for diagnostics.
func (s *Store) Claims() (*Claims, error) {
	tok, err := s.Token()
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, claims); err != nil {
		return nil, fmt.Errorf("parse token claims: %w", err)
	}
	return claims, nil
}

// CheckExpiry returns ErrExpiredToken if the token carries an exp claim in
// the past. Tokens without claims (opaque tokens) pass.
func (s *Store) CheckExpiry(now time.Time) error {
	claims, err := s.Claims()
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return err
		}
		// Opaque (non-JWT) token; let the server decide.
		return nil
	}
	if claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Time) {
		return ErrExpiredToken
	}
	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "$HOME") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "$HOME"))
		}
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
