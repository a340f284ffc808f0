package service

import "fmt"

// ValidationError reports input the server (or a client-side guard)
// rejected as malformed, e.g. an empty title.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// AuthError reports rejected credentials: a bad email/password pair
// or an expired/invalid bearer token.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

// ConflictError reports a registration that collides with an existing
// account (duplicate email or username).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// RequestError is any other non-success HTTP outcome, carrying the
// status code and the best-effort server-provided message.
type RequestError struct {
	Status int
	Msg    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Msg, e.Status)
}
