package commands_test

import (
	"bytes"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	appcli "github.com/mpyw/neubundle/internal/cli/commands"
	"github.com/mpyw/neubundle/internal/testutil"
)

func TestMakeApp(t *testing.T) {
	t.Parallel()

	app := appcli.MakeApp()

	require.NotNil(t, app)
	assert.Equal(t, "neubundle", app.Name)
	assert.NotEmpty(t, app.Usage)
	assert.Equal(t, "build", app.DefaultCommand)

	names := lo.Map(app.Commands, func(c *cli.Command, _ int) string {
		return c.Name
	})
	assert.Equal(t, []string{"build", "inspect", "config"}, names)
}

func TestApp_DefaultCommandBuilds(t *testing.T) {
	t.Parallel()

	p := testutil.NewProject(t, "x64")

	var stdout bytes.Buffer

	app := appcli.MakeApp()
	app.Writer = &stdout
	app.ErrWriter = &bytes.Buffer{}

	require.NoError(t, app.Run(t.Context(), []string{"neubundle", "--root", p.Root, "--host-os", "linux"}))
	assert.Contains(t, stdout.String(), "Build finished for x64.")
}
