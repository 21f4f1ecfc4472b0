package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/internal/config"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootRegistersCommands(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"window", "term", "sim"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func TestSimCommand(t *testing.T) {
	t.Setenv("BLOCKFALL_SEED", "5")

	stdout, stderr, err := execute(t, "sim", "--frames", "50", "--step", "101ms", "--verbose")
	require.NoError(t, err)

	assert.Contains(t, stdout, "# Blockfall Simulation Report")
	assert.Contains(t, stdout, "**Gravity Ticks:** 50")
	assert.Contains(t, stdout, "**Seed:** 5")

	assert.Contains(t, stderr, "session=")
	assert.Contains(t, stderr, "configuration loaded")
}

func TestSimCommandRejectsBadFlags(t *testing.T) {
	_, _, err := execute(t, "sim", "--frames", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "sim", "--config", filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
