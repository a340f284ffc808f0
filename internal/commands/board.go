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
	"todoctl/internal/tui"
)

func init() {
	Register(&BoardCmd{})
}

// BoardCmd implements the board command: an interactive todo list.
type BoardCmd struct{}

func (c *BoardCmd) Name() string      { return "board" }
func (c *BoardCmd) Aliases() []string { return []string{"tui"} }
func (c *BoardCmd) Synopsis() string  { return "Open the interactive board" }
func (c *BoardCmd) Usage() string     { return "todoctl board [common flags]" }
func (c *BoardCmd) NeedsAuth() bool   { return true }

func (c *BoardCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *BoardCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, sess *session.Store, args []string, in io.Reader, out, errOut io.Writer) int {
	ctl := todolist.New(svc, sess, logging.New(errOut, cfg.Debug))
	if err := ctl.Load(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitFor(err)
	}

	if err := tui.Run(ctx, sess, ctl); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
