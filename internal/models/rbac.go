package models

// Role is a named permission set defined by the backend.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"` // e.g. "pipelines:read", "alerts:ack"
}

// UserPermissions is the effective permission set of the current user.
type UserPermissions struct {
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}
