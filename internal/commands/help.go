package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/session"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todoctl help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, sess *session.Store, args []string, in io.Reader, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todoctl                                     List todos
  todoctl list [common flags]                 List todos
  todoctl add [common flags] [--desc <text>] <title...>
  todoctl done [common flags] <n>             Toggle the n-th todo
  todoctl rm [common flags] <n>               Delete the n-th todo
  todoctl board [common flags]                Open the interactive board
  todoctl register [common flags] [--email <email>] [--username <name>]
  todoctl login [common flags] [--email <email>]
  todoctl logout [common flags]
  todoctl whoami [common flags]
  todoctl help
  todoctl version

Common flags:
  --config <dir>   Override config directory
  --api <url>      Override API base URL (also TODOCTL_API_URL)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
