// Package pager pages long command output, such as dry-run Info.plist diffs.
package pager

import (
	"bytes"
	"io"

	"github.com/walles/moor/v2/pkg/moor"

	"github.com/mpyw/neubundle/internal/cli/terminal"
)

// WithPagerWriter executes fn with pager support.
// If noPager is true or stdout is not a TTY, fn writes straight to stdout.
// Otherwise the output is buffered and shown through moor, unless it fits on
// one screen, in which case it is written directly.
func WithPagerWriter(stdout io.Writer, noPager bool, fn func(w io.Writer) error) error {
	if noPager || !terminal.IsTerminalWriter(stdout) {
		return fn(stdout)
	}

	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		// Keep whatever was produced before the failure visible.
		_, _ = stdout.Write(buf.Bytes())
		return err
	}

	if buf.Len() == 0 {
		return nil
	}

	if terminal.FitsHeight(stdout, buf.String()) {
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	return moor.PageFromString(buf.String(), moor.Options{})
}
