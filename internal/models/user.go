// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application. Relations are
// carried as slug/username foreign keys, never as embedded object graphs.
package models

// User represents a registered account. The password column stores a bcrypt
// hash; it is never serialized.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
}
