package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/logging"
	"todoctl/internal/output"
	"todoctl/internal/service"
	"todoctl/internal/session"
	"todoctl/internal/todolist"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. Handles both `todoctl` (no
// args) and `todoctl list`.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List todos" }
func (c *ListCmd) Usage() string     { return "todoctl list [common flags]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, sess *session.Store, args []string, in io.Reader, out, errOut io.Writer) int {
	ctl := todolist.New(svc, sess, logging.New(errOut, cfg.Debug))
	if err := ctl.Load(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitFor(err)
	}

	todos := ctl.Todos()
	if len(todos) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no todos found")
		}
		return exitcode.Success
	}

	for i, todo := range todos {
		output.FormatTodo(out, i+1, todo)
	}
	if !cfg.Quiet {
		output.FormatSummary(out, todos)
	}
	return exitcode.Success
}
