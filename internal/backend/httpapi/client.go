// Package httpapi implements the service.Service interface against the
// remote todo REST API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"todoctl/internal/config"
	"todoctl/internal/service"
)

// Client implements service.Service over HTTP.
type Client struct {
	baseURL string
	base    *http.Client
	logger  *slog.Logger
}

// New creates a client for the API at cfg.APIBaseURL.
func New(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		base:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// httpClient returns the client to use for a request. Authenticated
// requests go through an oauth2 transport with a static token source,
// which attaches the bearer header; the base client (and its timeout)
// stays underneath.
func (c *Client) httpClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		return c.base
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, src)
}

// do issues a single request and checks the status code. No retries:
// every outcome, success or not, is translated and passed through.
func (c *Client) do(ctx context.Context, token, method, path string, body io.Reader, contentType string, wantStatus int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	c.logger.DebugContext(ctx, "api request",
		"method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	c.logger.DebugContext(ctx, "api response",
		"method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)

	if resp.StatusCode != wantStatus {
		return nil, translateError(resp.StatusCode, data)
	}
	return data, nil
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, email, username, password string) (service.User, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	})
	if err != nil {
		return service.User{}, err
	}

	data, err := c.do(ctx, "", http.MethodPost, "/api/auth/register",
		bytes.NewReader(payload), "application/json", http.StatusCreated)
	if err != nil {
		// This server answers duplicate registrations with 400, not 409.
		var reqErr *service.RequestError
		if errors.As(err, &reqErr) && reqErr.Status == http.StatusBadRequest {
			return service.User{}, &service.ConflictError{Msg: reqErr.Msg}
		}
		return service.User{}, err
	}

	var u userPayload
	if err := json.Unmarshal(data, &u); err != nil {
		return service.User{}, fmt.Errorf("decode user: %w", err)
	}
	return u.toUser(), nil
}

// Login implements service.Service. The authentication endpoint takes a
// form-encoded body, not JSON, with the email in the username field.
func (c *Client) Login(ctx context.Context, email, password string) (service.Credential, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	data, err := c.do(ctx, "", http.MethodPost, "/api/auth/login",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", http.StatusOK)
	if err != nil {
		return service.Credential{}, err
	}

	var t tokenPayload
	if err := json.Unmarshal(data, &t); err != nil {
		return service.Credential{}, fmt.Errorf("decode token: %w", err)
	}
	return service.Credential{AccessToken: t.AccessToken, TokenType: t.TokenType}, nil
}

// CurrentUser implements service.Service.
func (c *Client) CurrentUser(ctx context.Context, token string) (service.User, error) {
	data, err := c.do(ctx, token, http.MethodGet, "/api/auth/me", nil, "", http.StatusOK)
	if err != nil {
		return service.User{}, err
	}

	var u userPayload
	if err := json.Unmarshal(data, &u); err != nil {
		return service.User{}, fmt.Errorf("decode user: %w", err)
	}
	return u.toUser(), nil
}

// ListTodos implements service.Service.
func (c *Client) ListTodos(ctx context.Context, token string) ([]service.Todo, error) {
	data, err := c.do(ctx, token, http.MethodGet, "/api/todos", nil, "", http.StatusOK)
	if err != nil {
		return nil, err
	}

	var payload []todoPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	todos := make([]service.Todo, 0, len(payload))
	for _, t := range payload {
		todos = append(todos, t.toTodo())
	}
	return todos, nil
}

// CreateTodo implements service.Service.
func (c *Client) CreateTodo(ctx context.Context, token, title, description string) (service.Todo, error) {
	body := map[string]any{"title": title}
	if description != "" {
		body["description"] = description
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return service.Todo{}, err
	}

	data, err := c.do(ctx, token, http.MethodPost, "/api/todos",
		bytes.NewReader(payload), "application/json", http.StatusCreated)
	if err != nil {
		return service.Todo{}, err
	}

	var t todoPayload
	if err := json.Unmarshal(data, &t); err != nil {
		return service.Todo{}, fmt.Errorf("decode todo: %w", err)
	}
	return t.toTodo(), nil
}

// UpdateTodo implements service.Service.
func (c *Client) UpdateTodo(ctx context.Context, token string, id int, upd service.TodoUpdate) (service.Todo, error) {
	payload, err := json.Marshal(updatePayload{
		Title:       upd.Title,
		Description: upd.Description,
		Completed:   upd.Completed,
	})
	if err != nil {
		return service.Todo{}, err
	}

	data, err := c.do(ctx, token, http.MethodPut, fmt.Sprintf("/api/todos/%d", id),
		bytes.NewReader(payload), "application/json", http.StatusOK)
	if err != nil {
		return service.Todo{}, err
	}

	var t todoPayload
	if err := json.Unmarshal(data, &t); err != nil {
		return service.Todo{}, fmt.Errorf("decode todo: %w", err)
	}
	return t.toTodo(), nil
}

// DeleteTodo implements service.Service.
func (c *Client) DeleteTodo(ctx context.Context, token string, id int) error {
	_, err := c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/api/todos/%d", id),
		nil, "", http.StatusNoContent)
	return err
}
