// Package xattr clears extended filesystem attributes (quarantine flags,
// Finder info and the like) from every regular file in a bundle tree.
package xattr

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mpyw/neubundle/internal/buildenv"
)

// Mode selects how attributes are cleared.
type Mode string

const (
	// ModeExec shells out to find(1) and xattr(1).
	ModeExec Mode = "exec"
	// ModeNative uses listxattr/removexattr syscalls.
	ModeNative Mode = "native"
)

// ErrUnknownMode is returned by ParseMode for unsupported values.
var ErrUnknownMode = errors.New("unknown xattr mode")

// ParseMode parses a mode string. An empty string means ModeExec.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeExec:
		return ModeExec, nil
	case ModeNative:
		return ModeNative, nil
	default:
		return "", fmt.Errorf("%w: %q (expected exec or native)", ErrUnknownMode, s)
	}
}

// Cleaner clears extended attributes below root.
type Cleaner interface {
	Clear(ctx context.Context, root string) error
}

// ForEnvironment returns the cleaner for env. Hosts other than macOS get a no-op.
func ForEnvironment(env buildenv.Environment, mode Mode) Cleaner {
	if !env.IsDarwin() {
		return Nop{}
	}

	if mode == ModeNative {
		return Native{}
	}

	return &Exec{}
}

// Nop does nothing.
type Nop struct{}

// Clear implements Cleaner.
func (Nop) Clear(context.Context, string) error {
	return nil
}

// RunFunc runs an external command and returns its combined output.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Exec clears attributes via `find <root> -type f -exec xattr -c {} ;`.
type Exec struct {
	// Run overrides command execution. Nil means os/exec.
	Run RunFunc
}

// Clear implements Cleaner.
func (e *Exec) Clear(ctx context.Context, root string) error {
	run := e.Run
	if run == nil {
		run = runCommand
	}

	args := []string{root, "-type", "f", "-exec", "xattr", "-c", "{}", ";"}

	out, err := run(ctx, "find", args...)
	if err != nil {
		return &ExternalCommandError{
			Command: "find " + strings.Join(args, " "),
			Output:  strings.TrimSpace(string(out)),
			Err:     err,
		}
	}

	return nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ExternalCommandError reports a failed attribute-clearing invocation.
type ExternalCommandError struct {
	Command string
	Output  string
	Err     error
}

func (e *ExternalCommandError) Error() string {
	msg := fmt.Sprintf("command failed: %s: %v", e.Command, e.Err)
	if e.Output != "" {
		msg += "\n" + e.Output
	}

	return msg
}

func (e *ExternalCommandError) Unwrap() error {
	return e.Err
}
