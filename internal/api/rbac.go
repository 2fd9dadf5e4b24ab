package api

import (
	"context"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
)

// ListRoles returns the roles defined by the backend.
func (c *Client) ListRoles(ctx context.Context) ([]models.Role, error) {
	var out []models.Role
	if err := c.get(ctx, "/rbac/roles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMyPermissions returns the current user's effective permissions.
func (c *Client) GetMyPermissions(ctx context.Context) (*models.UserPermissions, error) {
	var out models.UserPermissions
	if err := c.get(ctx, "/rbac/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
