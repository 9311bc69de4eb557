// Package confirm provides confirmation prompts for destructive operations,
// such as removing existing bundles before a clean build.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mpyw/neubundle/internal/cli/colors"
	"github.com/mpyw/neubundle/internal/cli/terminal"
)

// Prompter handles confirmation prompts.
type Prompter struct {
	Stdin  io.Reader
	Stderr io.Writer
}

// Interactive reports whether stdin is a terminal someone can answer from.
func Interactive(stdin io.Reader) bool {
	f, ok := stdin.(terminal.Fder)
	return ok && terminal.IsTTY(f.Fd())
}

// Confirm displays a confirmation prompt and returns true if the user confirms.
// If skipConfirm is true, returns true without prompting.
func (p *Prompter) Confirm(message string, skipConfirm bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	_, _ = fmt.Fprintf(p.Stderr, "%s %s [y/N]: ", colors.Warning("?"), message)

	return p.read()
}

// ConfirmRemove lists the paths that are about to be removed and asks whether
// to continue. An empty list is confirmed without prompting.
func (p *Prompter) ConfirmRemove(paths []string, skipConfirm bool) (bool, error) {
	if skipConfirm || len(paths) == 0 {
		return true, nil
	}

	_, _ = fmt.Fprintf(p.Stderr, "%s This will remove and rebuild:\n", colors.Error("!"))
	for _, path := range paths {
		_, _ = fmt.Fprintf(p.Stderr, "    %s\n", path)
	}

	_, _ = fmt.Fprintf(p.Stderr, "%s Continue? [y/N]: ", colors.Warning("?"))

	return p.read()
}

func (p *Prompter) read() (bool, error) {
	reader := bufio.NewReader(p.Stdin)

	response, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || response == "") {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))

	return response == "y" || response == "yes", nil
}
