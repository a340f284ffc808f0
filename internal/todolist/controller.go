// Package todolist owns the in-memory todo collection for the current
// session and keeps it consistent with user intent and server state.
package todolist

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"todoctl/internal/service"
	"todoctl/internal/session"
)

// ErrNotTracked is returned by Toggle when the id is not in the local
// collection. No request is sent in that case.
var ErrNotTracked = errors.New("todo not tracked locally")

// Controller mediates between the session store, the API, and
// presentation. Mutations are guarded at this boundary: without an
// authenticated session they return session.ErrNotAuthenticated
// without a server round trip.
type Controller struct {
	svc    service.Service
	sess   *session.Store
	logger *slog.Logger

	mu    sync.Mutex
	todos []service.Todo

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New creates a Controller with an empty collection.
func New(svc service.Service, sess *session.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		svc:    svc,
		sess:   sess,
		logger: logger,
		subs:   make(map[int]func()),
	}
}

// Load fetches the full list and replaces local state wholesale.
// Without an authenticated session it is a no-op. On failure the prior
// local state is left untouched and the error is returned.
func (c *Controller) Load(ctx context.Context) error {
	if !c.sess.Authenticated() {
		return nil
	}

	todos, err := c.svc.ListTodos(ctx, c.sess.Token())
	if err != nil {
		c.logger.DebugContext(ctx, "load todos failed", "err", err)
		return err
	}

	c.mu.Lock()
	c.todos = todos
	c.mu.Unlock()
	c.notify()
	return nil
}

// Create sends the new todo to the server and prepends the confirmed
// item. No speculative local item is shown before confirmation; the
// server assigns the id. Empty or whitespace-only titles are rejected
// before any request.
func (c *Controller) Create(ctx context.Context, title, description string) (service.Todo, error) {
	if strings.TrimSpace(title) == "" {
		return service.Todo{}, &service.ValidationError{Msg: "title required"}
	}
	if !c.sess.Authenticated() {
		return service.Todo{}, session.ErrNotAuthenticated
	}

	todo, err := c.svc.CreateTodo(ctx, c.sess.Token(), title, description)
	if err != nil {
		return service.Todo{}, err
	}

	c.mu.Lock()
	c.todos = append([]service.Todo{todo}, c.todos...)
	c.mu.Unlock()
	c.notify()
	return todo, nil
}

// Toggle sends the negation of the item's completed flag as a partial
// update. On success the matching item is replaced in place with the
// server's representation; on failure the collection is unchanged and
// the error is returned.
func (c *Controller) Toggle(ctx context.Context, id int) (service.Todo, error) {
	if !c.sess.Authenticated() {
		return service.Todo{}, session.ErrNotAuthenticated
	}

	current, ok := c.find(id)
	if !ok {
		return service.Todo{}, ErrNotTracked
	}

	completed := !current.Completed
	updated, err := c.svc.UpdateTodo(ctx, c.sess.Token(), id, service.TodoUpdate{Completed: &completed})
	if err != nil {
		return service.Todo{}, err
	}

	c.mu.Lock()
	for i := range c.todos {
		if c.todos[i].ID == id {
			c.todos[i] = updated
			break
		}
	}
	c.mu.Unlock()
	c.notify()
	return updated, nil
}

// Remove deletes the todo on the server, then drops it from local
// state. Removing an id that is not tracked locally leaves local state
// untouched without error once the server confirms.
func (c *Controller) Remove(ctx context.Context, id int) error {
	if !c.sess.Authenticated() {
		return session.ErrNotAuthenticated
	}

	if err := c.svc.DeleteTodo(ctx, c.sess.Token(), id); err != nil {
		return err
	}

	c.mu.Lock()
	changed := false
	for i := range c.todos {
		if c.todos[i].ID == id {
			c.todos = append(c.todos[:i], c.todos[i+1:]...)
			changed = true
			break
		}
	}
	c.mu.Unlock()
	if changed {
		c.notify()
	}
	return nil
}

// Todos returns a copy of the current collection.
func (c *Controller) Todos() []service.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]service.Todo, len(c.todos))
	copy(out, c.todos)
	return out
}

// Subscribe registers fn to be called after every collection change.
// The returned function removes the subscription.
func (c *Controller) Subscribe(fn func()) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) find(id int) (service.Todo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.todos {
		if t.ID == id {
			return t, true
		}
	}
	return service.Todo{}, false
}

func (c *Controller) notify() {
	c.subMu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
