package commands_test

import (
	"bytes"
	"errors"
	"flag"
	"testing"

	"billboard-demo/internal/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line  string
		args  []string
		isCmd bool
	}{
		{"/light red 1 2 3", []string{"light", "red", "1", "2", "3"}, true},
		{"  /reset  ", []string{"reset"}, true},
		{"/", nil, true},
		{`/spawn "tat house 1"`, []string{"spawn", "tat house 1"}, true},
		{`/spawn --texture 'sand texture' desert`, []string{"spawn", "--texture", "sand texture", "desert"}, true},
		{`/spawn tat\ house`, []string{"spawn", "tat house"}, true},
		{"hello there", nil, false},
		{"light /red", nil, false},
	}
	for _, tt := range tests {
		args, ok, err := commands.Parse(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.isCmd, ok, tt.line)
		assert.Equal(t, tt.args, args, tt.line)
	}

	_, ok, err := commands.Parse(`/spawn "tat house`)
	assert.True(t, ok)
	assert.ErrorContains(t, err, "closing quote")
}

func TestExecuteFlagsAndArgs(t *testing.T) {
	reg := commands.NewRegistry(nil)
	fs := flag.NewFlagSet("fps", flag.ContinueOnError)
	show := fs.Bool("show", false, "show the counter")
	var got []string
	reg.Register("fps", "toggle the FPS counter", fs, func(args []string) error {
		got = args
		return nil
	})

	require.NoError(t, reg.Execute([]string{"fps", "--show", "extra"}))
	assert.True(t, *show)
	assert.Equal(t, []string{"extra"}, got)
}

func TestExecuteErrors(t *testing.T) {
	var out bytes.Buffer
	reg := commands.NewRegistry(&out)
	boom := errors.New("boom")
	reg.Register("fail", "always fails", nil, func([]string) error { return boom })

	assert.Error(t, reg.Execute(nil))
	assert.ErrorContains(t, reg.Execute([]string{"nope"}), "unknown command: nope")
	assert.ErrorIs(t, reg.Execute([]string{"fail"}), boom)

	assert.Error(t, reg.Execute([]string{"fail", "--bogus"}))
	assert.Contains(t, out.String(), "bogus")

	out.Reset()
	assert.ErrorIs(t, reg.Execute([]string{"fail", "-h"}), commands.ErrHelp)
	assert.Contains(t, out.String(), "Usage of fail")
}

func TestNamesAndHelp(t *testing.T) {
	reg := commands.NewRegistry(nil)
	noop := func([]string) error { return nil }
	reg.Register("reset", "put the camera back", nil, noop)
	reg.Register("light", "move a light", nil, noop)

	assert.Equal(t, []string{"light", "reset"}, reg.Names())
	help := reg.Help()
	require.Len(t, help, 2)
	assert.Contains(t, help[0], "/light")
	assert.Contains(t, help[1], "put the camera back")
}
