// Package models holds client-side records mirrored from API responses.
// None of them are owned by this code beyond local cache copies.
package models

// User is the account snapshot returned by the server after login,
// registration, or verification. Timestamps are RFC3339 strings as sent
// by the API; the client never interprets them.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	PublicKey string `json:"public_key,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
