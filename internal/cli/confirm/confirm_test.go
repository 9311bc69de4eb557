package confirm_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/neubundle/internal/cli/confirm"
)

type errorReader struct{}

func (e *errorReader) Read(_ []byte) (int, error) {
	return 0, errors.New("read error")
}

func TestPrompter_Confirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "y", input: "y\n", want: true},
		{name: "yes", input: "yes\n", want: true},
		{name: "YES (case insensitive)", input: "YES\n", want: true},
		{name: "answer without newline", input: "y", want: true},
		{name: "n", input: "n\n", want: false},
		{name: "no", input: "no\n", want: false},
		{name: "empty (default no)", input: "\n", want: false},
		{name: "random input", input: "maybe\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stderr bytes.Buffer
			p := &confirm.Prompter{
				Stdin:  strings.NewReader(tt.input),
				Stderr: &stderr,
			}

			result, err := p.Confirm("Rebuild MyApp.app?", false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
			assert.Contains(t, stderr.String(), "Rebuild MyApp.app?")
			assert.Contains(t, stderr.String(), "[y/N]")
		})
	}

	t.Run("skip confirm", func(t *testing.T) {
		t.Parallel()
		p := &confirm.Prompter{
			Stdin:  strings.NewReader(""),
			Stderr: io.Discard,
		}

		result, err := p.Confirm("Rebuild MyApp.app?", true)
		require.NoError(t, err)
		assert.True(t, result)
	})

	t.Run("no input", func(t *testing.T) {
		t.Parallel()
		p := &confirm.Prompter{
			Stdin:  strings.NewReader(""),
			Stderr: io.Discard,
		}

		_, err := p.Confirm("Rebuild MyApp.app?", false)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("read error", func(t *testing.T) {
		t.Parallel()
		p := &confirm.Prompter{
			Stdin:  &errorReader{},
			Stderr: io.Discard,
		}

		_, err := p.Confirm("Rebuild MyApp.app?", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read response")
	})
}

func TestPrompter_ConfirmRemove(t *testing.T) {
	t.Parallel()

	t.Run("lists paths", func(t *testing.T) {
		t.Parallel()
		var stderr bytes.Buffer
		p := &confirm.Prompter{
			Stdin:  strings.NewReader("y\n"),
			Stderr: &stderr,
		}

		result, err := p.ConfirmRemove([]string{"dist/mac_x64/MyApp.app", "dist/mac_arm64/MyApp.app"}, false)
		require.NoError(t, err)
		assert.True(t, result)
		assert.Contains(t, stderr.String(), "This will remove and rebuild:")
		assert.Contains(t, stderr.String(), "    dist/mac_x64/MyApp.app\n")
		assert.Contains(t, stderr.String(), "    dist/mac_arm64/MyApp.app\n")
		assert.Contains(t, stderr.String(), "Continue?")
	})

	t.Run("declined", func(t *testing.T) {
		t.Parallel()
		p := &confirm.Prompter{
			Stdin:  strings.NewReader("n\n"),
			Stderr: io.Discard,
		}

		result, err := p.ConfirmRemove([]string{"dist/mac_x64/MyApp.app"}, false)
		require.NoError(t, err)
		assert.False(t, result)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		t.Parallel()
		var stderr bytes.Buffer
		p := &confirm.Prompter{
			Stdin:  strings.NewReader(""),
			Stderr: &stderr,
		}

		result, err := p.ConfirmRemove(nil, false)
		require.NoError(t, err)
		assert.True(t, result)
		assert.Empty(t, stderr.String())
	})

	t.Run("skip confirm", func(t *testing.T) {
		t.Parallel()
		p := &confirm.Prompter{
			Stdin:  strings.NewReader(""),
			Stderr: io.Discard,
		}

		result, err := p.ConfirmRemove([]string{"dist/mac_x64/MyApp.app"}, true)
		require.NoError(t, err)
		assert.True(t, result)
	})
}

func TestInteractive(t *testing.T) {
	t.Parallel()

	assert.False(t, confirm.Interactive(strings.NewReader("")))
	assert.False(t, confirm.Interactive(&bytes.Buffer{}))
}
