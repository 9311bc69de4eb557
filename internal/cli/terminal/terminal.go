// Package terminal detects whether CLI writers are attached to a terminal and
// how large that terminal is.
package terminal

import (
	"io"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is the default terminal width when detection fails.
const DefaultWidth = 50

// Fder is an interface for types that have a file descriptor.
type Fder interface {
	Fd() uintptr
}

// GetSize returns the terminal width and height for the given file descriptor.
// This is a variable to allow mocking in tests.
//
//nolint:gochecknoglobals // Required for test mocking
var GetSize = term.GetSize

// IsTTY checks if the file descriptor is a TTY.
// This is a variable to allow mocking in tests.
//
//nolint:gochecknoglobals // Required for test mocking
var IsTTY = isatty.IsTerminal

// ttyFd returns the descriptor behind w when w is a terminal.
func ttyFd(w io.Writer) (int, bool) {
	f, ok := w.(Fder)
	if !ok || !IsTTY(f.Fd()) {
		return 0, false
	}

	return int(f.Fd()), true
}

// IsTerminalWriter returns true if the given writer is a terminal.
func IsTerminalWriter(w io.Writer) bool {
	_, ok := ttyFd(w)
	return ok
}

// GetWidthFromWriter returns the terminal width for the given writer.
// Returns DefaultWidth if detection fails or writer is not a terminal.
func GetWidthFromWriter(w io.Writer) int {
	fd, ok := ttyFd(w)
	if !ok {
		return DefaultWidth
	}

	width, _, err := GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultWidth
	}

	return width
}

// FitsHeight reports whether content can be shown on the terminal behind w
// without scrolling, keeping one line for the prompt. It returns false when w
// is not a terminal or its size is unknown.
func FitsHeight(w io.Writer, content string) bool {
	fd, ok := ttyFd(w)
	if !ok {
		return false
	}

	_, height, err := GetSize(fd)
	if err != nil || height <= 0 {
		return false
	}

	lines := strings.Count(content, "\n")
	if content != "" && !strings.HasSuffix(content, "\n") {
		lines++
	}

	return lines < height
}
