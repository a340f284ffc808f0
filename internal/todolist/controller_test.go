package todolist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoctl/internal/service"
	"todoctl/internal/session"
	"todoctl/internal/testutil"
	"todoctl/internal/todolist"
)

// authedController returns a controller with a logged-in session and
// the fake behind both, so tests can seed and inspect server state.
func authedController(t *testing.T) (*testutil.FakeService, *session.Store, *todolist.Controller) {
	t.Helper()
	svc := testutil.NewFakeService()
	svc.SeedUser("a@x.com", "alice", "pw123456")

	sess := session.New(svc, testutil.NewMemStore(), nil)
	require.NoError(t, sess.Login(context.Background(), "a@x.com", "pw123456"))

	return svc, sess, todolist.New(svc, sess, nil)
}

func TestLoad_NotAuthenticated(t *testing.T) {
	svc := testutil.NewFakeService()
	sess := session.New(svc, testutil.NewMemStore(), nil)
	sess.Restore(context.Background())

	ctl := todolist.New(svc, sess, nil)

	require.NoError(t, ctl.Load(context.Background()))
	assert.Empty(t, ctl.Todos())
}

func TestLoad_ReplacesCollection(t *testing.T) {
	svc, sess, ctl := authedController(t)
	userID := sess.CurrentUser().ID
	svc.SeedTodo(userID, "Old task", "", true)
	svc.SeedTodo(userID, "New task", "", false)

	require.NoError(t, ctl.Load(context.Background()))

	todos := ctl.Todos()
	require.Len(t, todos, 2)
	assert.Equal(t, "New task", todos[0].Title)
	assert.Equal(t, "Old task", todos[1].Title)
}

func TestLoad_FailureKeepsPriorState(t *testing.T) {
	svc, sess, ctl := authedController(t)
	svc.SeedTodo(sess.CurrentUser().ID, "Keep me", "", false)
	require.NoError(t, ctl.Load(context.Background()))

	svc.ListTodosErr = errors.New("network down")
	require.Error(t, ctl.Load(context.Background()))

	todos := ctl.Todos()
	require.Len(t, todos, 1)
	assert.Equal(t, "Keep me", todos[0].Title)
}

func TestCreate_PrependsConfirmedItem(t *testing.T) {
	svc, sess, ctl := authedController(t)
	svc.SeedTodo(sess.CurrentUser().ID, "Existing", "", false)
	require.NoError(t, ctl.Load(context.Background()))

	created, err := ctl.Create(context.Background(), "Buy milk", "two bottles")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.Completed)

	todos := ctl.Todos()
	require.Len(t, todos, 2)
	assert.Equal(t, "Buy milk", todos[0].Title)
	assert.Equal(t, "two bottles", todos[0].Description)
	assert.Equal(t, "Existing", todos[1].Title)
}

func TestCreate_BlankTitle(t *testing.T) {
	_, _, ctl := authedController(t)

	_, err := ctl.Create(context.Background(), "   ", "")
	var valErr *service.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Empty(t, ctl.Todos())
}

func TestCreate_NotAuthenticated(t *testing.T) {
	svc := testutil.NewFakeService()
	sess := session.New(svc, testutil.NewMemStore(), nil)
	sess.Restore(context.Background())

	ctl := todolist.New(svc, sess, nil)
	_, err := ctl.Create(context.Background(), "Buy milk", "")
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)
}

func TestToggle_Twice(t *testing.T) {
	svc, sess, ctl := authedController(t)
	seeded := svc.SeedTodo(sess.CurrentUser().ID, "Flip me", "", false)
	require.NoError(t, ctl.Load(context.Background()))

	first, err := ctl.Toggle(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.True(t, first.Completed)

	second, err := ctl.Toggle(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.False(t, second.Completed)

	todos := ctl.Todos()
	require.Len(t, todos, 1)
	assert.False(t, todos[0].Completed)
}

func TestToggle_NotTracked(t *testing.T) {
	_, _, ctl := authedController(t)

	_, err := ctl.Toggle(context.Background(), 42)
	assert.ErrorIs(t, err, todolist.ErrNotTracked)
}

func TestToggle_FailureKeepsState(t *testing.T) {
	svc, sess, ctl := authedController(t)
	seeded := svc.SeedTodo(sess.CurrentUser().ID, "Stuck", "", false)
	require.NoError(t, ctl.Load(context.Background()))

	svc.UpdateTodoErr = errors.New("network down")
	_, err := ctl.Toggle(context.Background(), seeded.ID)
	require.Error(t, err)

	todos := ctl.Todos()
	require.Len(t, todos, 1)
	assert.False(t, todos[0].Completed)
}

func TestRemove(t *testing.T) {
	svc, sess, ctl := authedController(t)
	keep := svc.SeedTodo(sess.CurrentUser().ID, "Keep", "", false)
	drop := svc.SeedTodo(sess.CurrentUser().ID, "Drop", "", false)
	require.NoError(t, ctl.Load(context.Background()))

	require.NoError(t, ctl.Remove(context.Background(), drop.ID))

	todos := ctl.Todos()
	require.Len(t, todos, 1)
	assert.Equal(t, keep.ID, todos[0].ID)
}

func TestRemove_UntrackedIDLeavesLocalState(t *testing.T) {
	svc, sess, ctl := authedController(t)
	// Exists on the server but was never loaded locally.
	seeded := svc.SeedTodo(sess.CurrentUser().ID, "Server only", "", false)

	require.NoError(t, ctl.Remove(context.Background(), seeded.ID))
	assert.Empty(t, ctl.Todos())
}

func TestRemove_FailureKeepsState(t *testing.T) {
	svc, sess, ctl := authedController(t)
	seeded := svc.SeedTodo(sess.CurrentUser().ID, "Sticky", "", false)
	require.NoError(t, ctl.Load(context.Background()))

	svc.DeleteTodoErr = errors.New("network down")
	require.Error(t, ctl.Remove(context.Background(), seeded.ID))
	require.Len(t, ctl.Todos(), 1)
}

func TestSubscribeNotifiesOnChange(t *testing.T) {
	_, _, ctl := authedController(t)

	notified := 0
	unsubscribe := ctl.Subscribe(func() { notified++ })

	_, err := ctl.Create(context.Background(), "Ping", "")
	require.NoError(t, err)
	assert.Equal(t, 1, notified)

	unsubscribe()
	_, err = ctl.Create(context.Background(), "Pong", "")
	require.NoError(t, err)
	assert.Equal(t, 1, notified)
}

func TestRegisterThenCreateThenLoad(t *testing.T) {
	svc := testutil.NewFakeService()
	sess := session.New(svc, testutil.NewMemStore(), nil)
	require.NoError(t, sess.Register(context.Background(), "b@x.com", "bob", "pw123456"))
	require.True(t, sess.Authenticated())

	ctl := todolist.New(svc, sess, nil)
	_, err := ctl.Create(context.Background(), "Task A", "")
	require.NoError(t, err)

	require.NoError(t, ctl.Load(context.Background()))
	todos := ctl.Todos()
	require.Len(t, todos, 1)
	assert.Equal(t, "Task A", todos[0].Title)
}
