package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"todoctl/internal/commands"
	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/session"
	"todoctl/internal/testutil"
)

// newTestDispatcher wires the default registry to a fake backend and an
// in-memory credential store.
func newTestDispatcher(svc service.Service, creds session.CredentialStore) *Dispatcher {
	d := NewDispatcher(commands.DefaultRegistry, func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	})
	d.Credentials = creds
	return d
}

func run(t *testing.T, d *Dispatcher, args ...string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := d.Run(context.Background(), args, strings.NewReader(""), &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestRun_UnknownCommand(t *testing.T) {
	d := newTestDispatcher(testutil.NewFakeService(), testutil.NewMemStore())

	_, errOut, code := run(t, d, "frobnicate")

	if code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if errOut != "error: unknown command: frobnicate\n" {
		t.Errorf("stderr = %q, want unknown command message", errOut)
	}
}

func TestRun_FlagBeforeCommand(t *testing.T) {
	d := newTestDispatcher(testutil.NewFakeService(), testutil.NewMemStore())

	_, errOut, code := run(t, d, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if errOut != "error: unknown command: --quiet\n" {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	d := newTestDispatcher(testutil.NewFakeService(), testutil.NewMemStore())

	_, errOut, code := run(t, d, "version", "--bogus")

	if code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if errOut != "error: unknown flag: -bogus\n" {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_FlagNeedsArgument(t *testing.T) {
	d := newTestDispatcher(testutil.NewFakeService(), testutil.NewMemStore())

	_, errOut, code := run(t, d, "list", "--api")

	if code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if errOut != "error: flag needs an argument: -api\n" {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_Version(t *testing.T) {
	// Version never touches the backend; a nil factory must not matter.
	d := NewDispatcher(commands.DefaultRegistry, nil)

	out, _, code := run(t, d, "version")

	if code != exitcode.Success {
		t.Errorf("exit code = %d, want %d", code, exitcode.Success)
	}
	if out != "todoctl 0.1.0\n" {
		t.Errorf("output = %q, want %q", out, "todoctl 0.1.0\n")
	}
}

func TestRun_AuthGate(t *testing.T) {
	d := newTestDispatcher(testutil.NewFakeService(), testutil.NewMemStore())

	for _, cmd := range []string{"list", "add", "done", "rm", "whoami", "board"} {
		_, errOut, code := run(t, d, cmd)
		if code != exitcode.AuthError {
			t.Errorf("%s: exit code = %d, want %d", cmd, code, exitcode.AuthError)
		}
		if errOut != "error: not logged in (run: todoctl login)\n" {
			t.Errorf("%s: stderr = %q", cmd, errOut)
		}
	}
}

func TestRun_AuthGateWithStaleCredential(t *testing.T) {
	creds := testutil.NewMemStoreWith("stale-token")
	d := newTestDispatcher(testutil.NewFakeService(), creds)

	_, errOut, code := run(t, d, "list")

	if code != exitcode.AuthError {
		t.Errorf("exit code = %d, want %d", code, exitcode.AuthError)
	}
	if errOut != "error: not logged in (run: todoctl login)\n" {
		t.Errorf("stderr = %q", errOut)
	}
	// The rejected credential is cleared, not kept for retries.
	if creds.Has() {
		t.Error("stale credential still stored after rejected restore")
	}
}

func TestRun_FactoryError(t *testing.T) {
	d := NewDispatcher(commands.DefaultRegistry, func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("dial failed")
	})
	d.Credentials = testutil.NewMemStore()

	_, errOut, code := run(t, d, "list")

	if code != exitcode.BackendError {
		t.Errorf("exit code = %d, want %d", code, exitcode.BackendError)
	}
	if errOut != "error: backend error: dial failed\n" {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_NoArgsListsTodos(t *testing.T) {
	svc := testutil.NewFakeService()
	user := svc.SeedUser("a@x.com", "alice", "pw123456")
	svc.SeedTodo(user.ID, "Buy milk", "", false)
	creds := testutil.NewMemStoreWith(svc.SeedToken("a@x.com"))

	d := newTestDispatcher(svc, creds)
	out, errOut, code := run(t, d)

	if code != exitcode.Success {
		t.Fatalf("exit code = %d, want %d (stderr: %q)", code, exitcode.Success, errOut)
	}
	want := "   1  [ ] Buy milk\n1 tasks, 0 completed (0%)\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRun_AddDoneRmFlow(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedUser("a@x.com", "alice", "pw123456")
	creds := testutil.NewMemStoreWith(svc.SeedToken("a@x.com"))
	d := newTestDispatcher(svc, creds)

	if _, errOut, code := run(t, d, "add", "Buy", "milk"); code != exitcode.Success {
		t.Fatalf("add: exit code = %d (stderr: %q)", code, errOut)
	}
	if _, errOut, code := run(t, d, "done", "1"); code != exitcode.Success {
		t.Fatalf("done: exit code = %d (stderr: %q)", code, errOut)
	}

	out, _, code := run(t, d, "list", "--quiet")
	if code != exitcode.Success {
		t.Fatalf("list: exit code = %d", code)
	}
	if out != "   1  [x] Buy milk\n" {
		t.Errorf("list output = %q, want %q", out, "   1  [x] Buy milk\n")
	}

	if _, errOut, code := run(t, d, "rm", "1"); code != exitcode.Success {
		t.Fatalf("rm: exit code = %d (stderr: %q)", code, errOut)
	}
	out, _, _ = run(t, d, "ls")
	if out != "no todos found\n" {
		t.Errorf("list after rm = %q, want %q", out, "no todos found\n")
	}
}
