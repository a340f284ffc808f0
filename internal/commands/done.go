package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/logging"
	"todoctl/internal/service"
	"todoctl/internal/session"
	"todoctl/internal/todolist"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command: toggle completion of the n-th
// listed todo. Running it on a completed todo marks it open again.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a todo's completion" }
func (c *DoneCmd) Usage() string     { return "todoctl done [common flags] <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, sess *session.Store, args []string, in io.Reader, out, errOut io.Writer) int {
	num, code := parseTodoNumber(args, errOut)
	if code != exitcode.Success {
		return code
	}

	ctl := todolist.New(svc, sess, logging.New(errOut, cfg.Debug))
	todo, code := todoByNumber(ctx, ctl, num, errOut)
	if code != exitcode.Success {
		return code
	}

	if _, err := ctl.Toggle(ctx, todo.ID); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitFor(err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// parseTodoNumber parses the single 1-based positional reference.
func parseTodoNumber(args []string, errOut io.Writer) (int, int) {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: todo number required")
		return 0, exitcode.UserError
	}
	num, err := strconv.Atoi(args[0])
	if err != nil || num < 1 {
		fmt.Fprintf(errOut, "error: invalid todo number: %s\n", args[0])
		return 0, exitcode.UserError
	}
	return num, exitcode.Success
}

// todoByNumber loads the list and resolves the n-th todo.
func todoByNumber(ctx context.Context, ctl *todolist.Controller, num int, errOut io.Writer) (service.Todo, int) {
	if err := ctl.Load(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return service.Todo{}, exitFor(err)
	}
	todos := ctl.Todos()
	if num > len(todos) {
		fmt.Fprintf(errOut, "error: todo number out of range: %d\n", num)
		return service.Todo{}, exitcode.UserError
	}
	return todos[num-1], exitcode.Success
}
