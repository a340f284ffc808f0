package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"todoctl/internal/service"
)

// apiTime decodes the server's timestamps. The API emits timezone-naive
// ISO 8601 (no offset suffix), so plain RFC 3339 parsing is not enough.
type apiTime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func (t *apiTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

type userPayload struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	CreatedAt apiTime `json:"created_at"`
}

func (u userPayload) toUser() service.User {
	return service.User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.Time,
	}
}

type tokenPayload struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type todoPayload struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedAt   apiTime `json:"created_at"`
	UpdatedAt   apiTime `json:"updated_at"`
	UserID      int     `json:"user_id"`
}

func (t todoPayload) toTodo() service.Todo {
	todo := service.Todo{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.Time,
		UpdatedAt: t.UpdatedAt.Time,
		UserID:    t.UserID,
	}
	if t.Description != nil {
		todo.Description = *t.Description
	}
	return todo
}

type updatePayload struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// errorDetail extracts the server's error message. The body is
// typically {"detail": "..."}; validation failures carry a structured
// detail array instead, in which case we fall back to a generic message.
func errorDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		var msg string
		if err := json.Unmarshal(envelope.Detail, &msg); err == nil && msg != "" {
			return msg
		}
	}
	return "request failed"
}

// translateError maps a non-success status to the typed error taxonomy.
func translateError(status int, body []byte) error {
	msg := errorDetail(body)
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &service.AuthError{Msg: msg}
	case http.StatusConflict:
		return &service.ConflictError{Msg: msg}
	case http.StatusUnprocessableEntity:
		if msg == "request failed" {
			msg = "invalid input"
		}
		return &service.ValidationError{Msg: msg}
	default:
		return &service.RequestError{Status: status, Msg: msg}
	}
}
