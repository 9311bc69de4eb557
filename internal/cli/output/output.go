// Package output handles formatted output for the CLI.
//
// This package provides utilities for:
//   - Indented field summaries (label: value format)
//   - Build step and completion lines
//   - Unified diffs of rendered files with color highlighting
//   - User feedback messages (Warning, Hint, Error) with TTY-aware coloring
//
// Colors are disabled by fatih/color when stdout is not a TTY, so piped
// build logs stay plain.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/mpyw/neubundle/internal/cli/colors"
	"github.com/mpyw/neubundle/internal/cli/terminal"
)

// Format represents the output format.
type Format string

const (
	// FormatText is the default human-readable text format.
	FormatText Format = "text"
	// FormatJSON outputs structured JSON.
	FormatJSON Format = "json"
)

// ParseFormat parses a format string and returns the Format.
// Returns FormatText for empty string or invalid values.
func ParseFormat(s string) Format {
	switch s {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Writer prints labeled fields at a fixed indent.
type Writer struct {
	w      io.Writer
	indent string
}

// New creates a new output writer.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Indented creates a writer whose lines are prefixed with indent.
func Indented(w io.Writer, indent string) *Writer {
	return &Writer{w: w, indent: indent}
}

// Field prints a labeled field.
func (o *Writer) Field(label, value string) {
	_, _ = fmt.Fprintf(o.w, "%s%s %s\n", o.indent, colors.FieldLabel(label+":"), value)
}

// Line prints a plain line at the writer's indent.
func (o *Writer) Line(text string) {
	_, _ = fmt.Fprintf(o.w, "%s%s\n", o.indent, text)
}

// Separator prints a separator line.
func (o *Writer) Separator() {
	_, _ = fmt.Fprintln(o.w)
}

// Header prints a bold banner line.
func Header(w io.Writer, text string) {
	_, _ = fmt.Fprintln(w, colors.Header(text))
}

// Rule prints a horizontal line as wide as the terminal (or terminal.DefaultWidth).
func Rule(w io.Writer) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", terminal.GetWidthFromWriter(w)))
}

// Step prints an indented build step line.
// Example: "  • Copying binary and resources...".
func Step(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "  %s %s\n", colors.Step("•"), msg)
}

// Warning prints a warning message in yellow.
// Used to alert users about non-critical issues that don't fail the build.
// Example: "Warning: unresolved placeholders in Info.plist: {APP_COPYRIGHT}".
//
//nolint:goprintffuncname // intentionally named without 'f' suffix for cleaner API
func Warning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(w, colors.Warning("Warning: "+msg))
}

// Hint prints a hint message in cyan.
// Used to provide helpful suggestions to the user, typically following a warning.
// Example: "Hint: run neubundle build to assemble missing bundles".
//
//nolint:goprintffuncname // intentionally named without 'f' suffix for cleaner API
func Hint(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(w, colors.Info("Hint: "+msg))
}

// Error prints an error message in red.
// Used by the entry point to report the error that ended the run.
//
//nolint:goprintffuncname // intentionally named without 'f' suffix for cleaner API
func Error(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(w, colors.Error("Error: "+msg))
}

// Success prints a success message with green checkmark.
// Example: "✓ Build finished for x64.".
//
//nolint:goprintffuncname // intentionally named without 'f' suffix for cleaner API
func Success(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n", colors.Success("✓"), msg)
}

// Failed prints a failure line in red followed by the problem.
// Example: "✗ x64: main executable not found".
func Failed(w io.Writer, name, problem string) {
	_, _ = fmt.Fprintf(w, "%s %s: %s\n", colors.Failed("✗"), name, problem)
}

// Info prints an informational message in yellow (without "Warning:" prefix).
// Example: "Dry run: nothing was written.".
//
//nolint:goprintffuncname // intentionally named without 'f' suffix for cleaner API
func Info(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(w, colors.Warning(msg))
}

// Diff generates a unified diff between two strings with ANSI colors.
func Diff(oldName, newName, oldContent, newContent string) string {
	edits := udiff.Strings(oldContent, newContent)
	unified, _ := udiff.ToUnifiedDiff(oldName, newName, oldContent, edits, udiff.DefaultContextLines)

	return colorDiff(unified.String())
}

// colorDiff adds ANSI colors to diff output.
func colorDiff(diff string) string {
	if diff == "" {
		return ""
	}

	var result strings.Builder

	for line := range strings.SplitSeq(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++"):
			result.WriteString(colors.DiffHeader(line))
		case strings.HasPrefix(line, "-"):
			result.WriteString(colors.DiffRemoved(line))
		case strings.HasPrefix(line, "+"):
			result.WriteString(colors.DiffAdded(line))
		case strings.HasPrefix(line, "@@"):
			result.WriteString(colors.DiffHunk(line))
		default:
			result.WriteString(line)
		}

		result.WriteString("\n")
	}

	return result.String()
}

// Println writes a message to the writer with a newline.
func Println(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, msg)
}

// Printf writes a formatted message to the writer.
func Printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
