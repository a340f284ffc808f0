package commands

import (
	"bufio"
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
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email string
}

// SetEmail sets the email (for testing).
func (c *LoginCmd) SetEmail(email string) {
	c.email = email
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in and store the credential" }
func (c *LoginCmd) Usage() string     { return "todoctl login [common flags] [--email <email>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, sess *session.Store, args []string, in io.Reader, out, errOut io.Writer) int {
	// A still-valid stored credential means there is nothing to do.
	sess.Restore(ctx)
	if sess.Authenticated() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	reader := bufio.NewReader(in)

	email := c.email
	if email == "" {
		var err error
		email, err = promptLine(reader, errOut, "Email: ")
		if err != nil || email == "" {
			fmt.Fprintln(errOut, "error: email required")
			return exitcode.UserError
		}
	}

	password, err := promptPassword(in, reader, errOut, "Password: ")
	if err != nil || password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	if err := sess.Login(ctx, email, password); err != nil {
		fmt.Fprintf(errOut, "error: login failed: %v\n", err)
		return exitFor(err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
