// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"todoctl/internal/service"
)

// FakeService is an in-memory implementation of service.Service for
// testing. It mimics the remote API's semantics: duplicate
// registrations conflict, bad credentials are auth errors, and unknown
// todo ids are 404s.
type FakeService struct {
	mu         sync.Mutex
	users      map[string]fakeUser // email -> user
	tokens     map[string]string   // token -> email
	todos      []service.Todo      // newest first
	nextUserID int
	nextTodoID int
	nextToken  int

	// Error injection for testing
	RegisterErr    error
	LoginErr       error
	CurrentUserErr error
	ListTodosErr   error
	CreateTodoErr  error
	UpdateTodoErr  error
	DeleteTodoErr  error
}

type fakeUser struct {
	user     service.User
	password string
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		users:      make(map[string]fakeUser),
		tokens:     make(map[string]string),
		nextUserID: 1,
		nextTodoID: 1,
		nextToken:  1,
	}
}

// SeedUser registers a user directly, bypassing the API surface.
func (f *FakeService) SeedUser(email, username, password string) service.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addUser(email, username, password)
}

// SeedToken issues a token for an already-seeded user.
func (f *FakeService) SeedToken(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issueToken(email)
}

// SeedTodo adds a todo for the given user, newest first.
func (f *FakeService) SeedTodo(userID int, title, description string, completed bool) service.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	todo := f.addTodo(userID, title, description)
	todo.Completed = completed
	f.todos[0] = todo
	return todo
}

// RevokeToken invalidates a previously issued token.
func (f *FakeService) RevokeToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
}

func (f *FakeService) addUser(email, username, password string) service.User {
	user := service.User{
		ID:        f.nextUserID,
		Email:     email,
		Username:  username,
		CreatedAt: time.Now(),
	}
	f.nextUserID++
	f.users[email] = fakeUser{user: user, password: password}
	return user
}

func (f *FakeService) issueToken(email string) string {
	token := fmt.Sprintf("tok-%d", f.nextToken)
	f.nextToken++
	f.tokens[token] = email
	return token
}

func (f *FakeService) addTodo(userID int, title, description string) service.Todo {
	now := time.Now()
	todo := service.Todo{
		ID:          f.nextTodoID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      userID,
	}
	f.nextTodoID++
	f.todos = append([]service.Todo{todo}, f.todos...)
	return todo
}

func (f *FakeService) userFor(token string) (service.User, error) {
	email, ok := f.tokens[token]
	if !ok {
		return service.User{}, &service.AuthError{Msg: "could not validate credentials"}
	}
	return f.users[email].user, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, email, username, password string) (service.User, error) {
	if f.RegisterErr != nil {
		return service.User{}, f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.users[email]; exists {
		return service.User{}, &service.ConflictError{Msg: "Email already registered"}
	}
	for _, u := range f.users {
		if u.user.Username == username {
			return service.User{}, &service.ConflictError{Msg: "Username already taken"}
		}
	}
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return service.User{}, &service.ValidationError{Msg: "invalid input"}
	}
	return f.addUser(email, username, password), nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (service.Credential, error) {
	if f.LoginErr != nil {
		return service.Credential{}, f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[email]
	if !ok || u.password != password {
		return service.Credential{}, &service.AuthError{Msg: "Incorrect email or password"}
	}
	return service.Credential{AccessToken: f.issueToken(email), TokenType: "bearer"}, nil
}

// CurrentUser implements service.Service.
func (f *FakeService) CurrentUser(ctx context.Context, token string) (service.User, error) {
	if f.CurrentUserErr != nil {
		return service.User{}, f.CurrentUserErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userFor(token)
}

// ListTodos implements service.Service.
func (f *FakeService) ListTodos(ctx context.Context, token string) ([]service.Todo, error) {
	if f.ListTodosErr != nil {
		return nil, f.ListTodosErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	user, err := f.userFor(token)
	if err != nil {
		return nil, err
	}
	var result []service.Todo
	for _, t := range f.todos {
		if t.UserID == user.ID {
			result = append(result, t)
		}
	}
	return result, nil
}

// CreateTodo implements service.Service.
func (f *FakeService) CreateTodo(ctx context.Context, token, title, description string) (service.Todo, error) {
	if f.CreateTodoErr != nil {
		return service.Todo{}, f.CreateTodoErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	user, err := f.userFor(token)
	if err != nil {
		return service.Todo{}, err
	}
	if strings.TrimSpace(title) == "" {
		return service.Todo{}, &service.ValidationError{Msg: "invalid input"}
	}
	return f.addTodo(user.ID, title, description), nil
}

// UpdateTodo implements service.Service.
func (f *FakeService) UpdateTodo(ctx context.Context, token string, id int, upd service.TodoUpdate) (service.Todo, error) {
	if f.UpdateTodoErr != nil {
		return service.Todo{}, f.UpdateTodoErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	user, err := f.userFor(token)
	if err != nil {
		return service.Todo{}, err
	}
	for i := range f.todos {
		if f.todos[i].ID == id && f.todos[i].UserID == user.ID {
			if upd.Title != nil {
				f.todos[i].Title = *upd.Title
			}
			if upd.Description != nil {
				f.todos[i].Description = *upd.Description
			}
			if upd.Completed != nil {
				f.todos[i].Completed = *upd.Completed
			}
			f.todos[i].UpdatedAt = time.Now()
			return f.todos[i], nil
		}
	}
	return service.Todo{}, &service.RequestError{Status: 404, Msg: "Todo not found"}
}

// DeleteTodo implements service.Service.
func (f *FakeService) DeleteTodo(ctx context.Context, token string, id int) error {
	if f.DeleteTodoErr != nil {
		return f.DeleteTodoErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	user, err := f.userFor(token)
	if err != nil {
		return err
	}
	for i := range f.todos {
		if f.todos[i].ID == id && f.todos[i].UserID == user.ID {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return &service.RequestError{Status: 404, Msg: "Todo not found"}
}
