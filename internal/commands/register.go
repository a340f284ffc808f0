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
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command. On success the session
// is logged in with the new account (auto-login).
type RegisterCmd struct {
	email    string
	username string
}

// SetEmail sets the email (for testing).
func (c *RegisterCmd) SetEmail(email string) {
	c.email = email
}

// SetUsername sets the username (for testing).
func (c *RegisterCmd) SetUsername(username string) {
	c.username = username
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account and log in" }
func (c *RegisterCmd) Usage() string {
	return "todoctl register [common flags] [--email <email>] [--username <name>]"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.username, "username", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, sess *session.Store, args []string, in io.Reader, out, errOut io.Writer) int {
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

	username := c.username
	if username == "" {
		var err error
		username, err = promptLine(reader, errOut, "Username: ")
		if err != nil || username == "" {
			fmt.Fprintln(errOut, "error: username required")
			return exitcode.UserError
		}
	}

	password, err := promptPassword(in, reader, errOut, "Password: ")
	if err != nil || password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}
	confirm, err := promptPassword(in, reader, errOut, "Confirm password: ")
	if err != nil || confirm != password {
		fmt.Fprintln(errOut, "error: passwords do not match")
		return exitcode.UserError
	}

	if err := sess.Register(ctx, email, username, password); err != nil {
		fmt.Fprintf(errOut, "error: registration failed: %v\n", err)
		return exitFor(err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
