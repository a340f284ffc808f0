// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/session"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires an authenticated
	// session. The dispatcher refuses such commands when session
	// restoration does not yield one.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided. svc and sess are nil only for commands
	// that never touch the backend (help, version). in is the
	// interactive input stream; args contains positional arguments
	// after flag parsing. Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, sess *session.Store, args []string, in io.Reader, out, errOut io.Writer) int
}

// exitFor maps a failed operation to an exit code using the error
// taxonomy: rejected credentials are auth errors, validation and
// conflicts are user errors, everything else is a backend error.
func exitFor(err error) int {
	var authErr *service.AuthError
	var valErr *service.ValidationError
	var conflictErr *service.ConflictError
	switch {
	case errors.As(err, &authErr):
		return exitcode.AuthError
	case errors.As(err, &valErr), errors.As(err, &conflictErr):
		return exitcode.UserError
	default:
		return exitcode.BackendError
	}
}
