// Package colors provides pre-configured color functions for CLI output.
package colors

import "github.com/fatih/color"

//nolint:gochecknoglobals // Immutable color definitions initialized at package load
var (
	// Header formats the banner printed at the start of a build in bold.
	Header = color.New(color.Bold).SprintFunc()

	// Arch formats architecture names (e.g., "x64", "arm64") in yellow.
	Arch = color.New(color.FgYellow).SprintFunc()

	// Warning formats text in yellow for warning messages.
	Warning = color.New(color.FgYellow).SprintFunc()

	// Error formats text in red for error messages.
	Error = color.New(color.FgRed).SprintFunc()

	// Success formats text in green for success messages.
	Success = color.New(color.FgGreen).SprintFunc()

	// Info formats text in cyan for informational messages.
	Info = color.New(color.FgCyan).SprintFunc()

	// Step formats the bullet in front of build step lines.
	Step = color.New(color.FgBlue).SprintFunc()

	// FieldLabel formats field labels (e.g., "App Name:", "Destination:") in cyan.
	FieldLabel = color.New(color.FgCyan).SprintFunc()

	// Digest formats checksums in faint text.
	Digest = color.New(color.Faint).SprintFunc()

	// DiffHeader formats diff header lines (---/+++) in cyan.
	DiffHeader = color.New(color.FgCyan).SprintFunc()

	// DiffHunk formats diff hunk markers (@@) in cyan.
	DiffHunk = color.New(color.FgCyan).SprintFunc()

	// DiffAdded formats added lines (+) in green.
	DiffAdded = color.New(color.FgGreen).SprintFunc()

	// DiffRemoved formats removed lines (-) in red.
	DiffRemoved = color.New(color.FgRed).SprintFunc()

	// Failed formats "FAIL" markers in red.
	Failed = color.New(color.FgRed).SprintFunc()
)
