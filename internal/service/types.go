package service

import "time"

// Credential is a bearer token issued at login.
type Credential struct {
	AccessToken string
	TokenType   string // "bearer"
}

// User is the authenticated user's identity. Read-only client-side.
type User struct {
	ID        int
	Email     string
	Username  string
	CreatedAt time.Time
}

// Todo represents a single todo item as the server knows it.
// ID is server-assigned and never mutated client-side.
type Todo struct {
	ID          int
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      int
}

// TodoUpdate is a partial update document. Nil fields are omitted
// from the request so the server leaves them untouched.
type TodoUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}
