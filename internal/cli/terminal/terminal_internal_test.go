package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockFdWriter implements Fder for testing.
type mockFdWriter struct {
	buf bytes.Buffer
	fd  uintptr
}

func (m *mockFdWriter) Write(p []byte) (n int, err error) {
	return m.buf.Write(p)
}

func (m *mockFdWriter) Fd() uintptr {
	return m.fd
}

func stubTerminal(t *testing.T, tty bool, width, height int, err error) {
	t.Helper()

	origIsTTY := IsTTY
	origGetSize := GetSize

	t.Cleanup(func() {
		IsTTY = origIsTTY
		GetSize = origGetSize
	})

	IsTTY = func(_ uintptr) bool { return tty }
	GetSize = func(_ int) (int, int, error) {
		return width, height, err
	}
}

//nolint:paralleltest // Test modifies package globals (IsTTY, GetSize)
func TestGetWidthFromWriter(t *testing.T) {
	tests := []struct {
		name   string
		tty    bool
		width  int
		height int
		err    error
		want   int
	}{
		{name: "tty", tty: true, width: 120, height: 40, want: 120},
		{name: "not a tty", tty: false, width: 120, height: 40, want: DefaultWidth},
		{name: "size error", tty: true, err: assert.AnError, want: DefaultWidth},
		{name: "zero width", tty: true, width: 0, height: 40, want: DefaultWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubTerminal(t, tt.tty, tt.width, tt.height, tt.err)

			assert.Equal(t, tt.want, GetWidthFromWriter(&mockFdWriter{fd: 1}))
		})
	}
}

//nolint:paralleltest // Test modifies package globals (IsTTY)
func TestIsTerminalWriter_Stubbed(t *testing.T) {
	stubTerminal(t, true, 80, 24, nil)
	assert.True(t, IsTerminalWriter(&mockFdWriter{fd: 1}))

	stubTerminal(t, false, 80, 24, nil)
	assert.False(t, IsTerminalWriter(&mockFdWriter{fd: 1}))
}

//nolint:paralleltest // Test modifies package globals (IsTTY, GetSize)
func TestFitsHeight(t *testing.T) {
	tests := []struct {
		name    string
		tty     bool
		height  int
		err     error
		content string
		want    bool
	}{
		{name: "short content", tty: true, height: 24, content: "a\nb\n", want: true},
		{name: "exactly the prompt line short", tty: true, height: 3, content: "a\nb\n", want: true},
		{name: "too long", tty: true, height: 3, content: "a\nb\nc\n", want: false},
		{name: "unterminated last line counts", tty: true, height: 3, content: "a\nb\nc", want: false},
		{name: "not a tty", tty: false, height: 24, content: "a\n", want: false},
		{name: "size error", tty: true, err: assert.AnError, content: "a\n", want: false},
		{name: "long diff", tty: true, height: 24, content: strings.Repeat("line\n", 30), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubTerminal(t, tt.tty, 80, tt.height, tt.err)

			assert.Equal(t, tt.want, FitsHeight(&mockFdWriter{fd: 1}, tt.content))
		})
	}
}
