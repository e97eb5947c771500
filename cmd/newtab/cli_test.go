package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with a throwaway data directory.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args,
		"--dsn", filepath.Join(dir, "newtab.db"),
		"--cache-dir", filepath.Join(dir, "photos"),
		"--log-file", filepath.Join(dir, "newtab.log"),
	))
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"run", "sync", "random", "clear", "prefs", "favorites"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"config", "dsn", "cache-dir", "cloud-functions-url", "log-file", "log-level"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestPrefs_SetGetClear(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "prefs", "set", "prayers.alarms.enable", "true")
	require.NoError(t, err)
	_, err = execute(t, dir, "prefs", "set", "theme", "dark")
	require.NoError(t, err)

	out, err := execute(t, dir, "prefs", "get", "prayers.alarms.enable")
	require.NoError(t, err)
	assert.Equal(t, "true", strings.TrimSpace(out))

	out, err = execute(t, dir, "prefs", "get")
	require.NoError(t, err)
	assert.JSONEq(t, `{"prayers":{"alarms":{"enable":true,"list":[]}},"dateTime":{"calendar":"hijri","lang":"en","timeMode":"12"},"theme":"dark"}`, strings.TrimSpace(out))

	_, err = execute(t, dir, "prefs", "clear")
	require.NoError(t, err)

	out, err = execute(t, dir, "prefs", "get", "prayers.alarms.enable")
	require.NoError(t, err)
	assert.Equal(t, "false", strings.TrimSpace(out))

	_, err = execute(t, dir, "prefs", "get", "theme")
	assert.Error(t, err)
}

func TestPrefs_UnknownBucket(t *testing.T) {
	_, err := execute(t, t.TempDir(), "prefs", "--bucket", "nope", "get")
	assert.ErrorContains(t, err, `unknown bucket "nope"`)
}

func TestFavorites_AddListRemove(t *testing.T) {
	dir := t.TempDir()

	for _, id := range []string{"p1", "p2", "p1"} {
		_, err := execute(t, dir, "favorites", "add", id)
		require.NoError(t, err)
	}

	out, err := execute(t, dir, "favorites", "list")
	require.NoError(t, err)
	assert.Equal(t, "p1\np2\n", out)

	_, err = execute(t, dir, "favorites", "remove", "p1")
	require.NoError(t, err)

	out, err = execute(t, dir, "prefs", "--bucket", "favorites", "get", "photos")
	require.NoError(t, err)
	assert.JSONEq(t, `["p2"]`, strings.TrimSpace(out))
}

func TestArgsValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown collection", []string{"sync", "videos"}},
		{"random without kind", []string{"random"}},
		{"random unknown kind", []string{"random", "video"}},
		{"favorites add without id", []string{"favorites", "add"}},
		{"prefs set without value", []string{"prefs", "set", "theme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, t.TempDir(), tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestParsePrefValue(t *testing.T) {
	tests := []struct {
		arg  string
		want any
	}{
		{"true", true},
		{"42", float64(42)},
		{`"quoted"`, "quoted"},
		{"dark", "dark"},
		{`["a","b"]`, []any{"a", "b"}},
		{`{"x":1}`, map[string]any{"x": float64(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePrefValue(tt.arg))
		})
	}
}
