package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	require.Equal(t, 1, steps)

	steps, err = parseSteps([]string{" 3 "})
	require.NoError(t, err)
	require.Equal(t, 3, steps)

	_, err = parseSteps([]string{"0"})
	require.Error(t, err)
	_, err = parseSteps([]string{"x"})
	require.Error(t, err)
}

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("1772000100")
	require.NoError(t, err)
	require.Equal(t, 1772000100, v)

	_, err = parseVersion("-2")
	require.Error(t, err)
}

func TestResolveMigrationsDirPrefersFlag(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", "")
	t.Setenv("MIGRATIONS_PATH", "")

	got, err := resolveMigrationsDir(dir)
	require.NoError(t, err)
	require.Equal(t, dir, got)

	_, err = resolveMigrationsDir(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestEnvBool(t *testing.T) {
	for value, want := range map[string]bool{"": false, "yes": true, " TRUE ": true, "1": true, "off": false} {
		t.Setenv("MIGRATION_TEST_FLAG", value)
		require.Equal(t, want, envBool("MIGRATION_TEST_FLAG"), "value %q", value)
	}
}

func TestRootCmdRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"up", "down", "version", "force", "goto"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, cmd.Name())
	}
}
