// Package service defines the backend-agnostic interface for todo API operations.
package service

import "context"

// Service defines the interface for remote todo API operations.
// All HTTP calls go through this interface; the session store and
// commands never import the HTTP backend directly.
//
// Authenticated operations take the bearer token explicitly. The
// session store owns the token; callers obtain it from there.
type Service interface {
	// Register creates a new user account. Duplicate email or username
	// fails with *ConflictError.
	Register(ctx context.Context, email, username, password string) (User, error)

	// Login exchanges email+password for a bearer credential.
	// Invalid credentials fail with *AuthError.
	Login(ctx context.Context, email, password string) (Credential, error)

	// CurrentUser returns the identity the token belongs to.
	// A rejected token fails with *AuthError.
	CurrentUser(ctx context.Context, token string) (User, error)

	// ListTodos returns the user's todos in server order.
	ListTodos(ctx context.Context, token string) ([]Todo, error)

	// CreateTodo creates a todo. The server assigns the id and
	// timestamps; description may be empty.
	CreateTodo(ctx context.Context, token, title, description string) (Todo, error)

	// UpdateTodo applies a partial update and returns the server's
	// representation of the updated todo.
	UpdateTodo(ctx context.Context, token string, id int, upd TodoUpdate) (Todo, error)

	// DeleteTodo deletes a todo by id.
	DeleteTodo(ctx context.Context, token string, id int) error
}
