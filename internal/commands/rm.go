package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/logging"
	"todoctl/internal/service"
	"todoctl/internal/session"
	"todoctl/internal/todolist"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command: delete the n-th listed todo.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a todo" }
func (c *RmCmd) Usage() string     { return "todoctl rm [common flags] <n>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, sess *session.Store, args []string, in io.Reader, out, errOut io.Writer) int {
	num, code := parseTodoNumber(args, errOut)
	if code != exitcode.Success {
		return code
	}

	ctl := todolist.New(svc, sess, logging.New(errOut, cfg.Debug))
	todo, code := todoByNumber(ctx, ctl, num, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := ctl.Remove(ctx, todo.ID); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitFor(err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
