package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/trtodo/internal/cli"
)

// isolate points config, data and logs at a temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("TRTODO_CONFIG", filepath.Join(dir, "config.yaml"))
	for _, k := range []string{"TRTODO_STORAGE_TYPE", "TRTODO_STORAGE_PATH", "TRTODO_LOG_LEVEL", "TRTODO_LOG_FILE", "TRTODO_THEME"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_Workflow(t *testing.T) {
	for _, kind := range []string{"json", "sqlite"} {
		t.Run(kind, func(t *testing.T) {
			dir := isolate(t)
			t.Setenv("TRTODO_LOG_LEVEL", "debug")
			ext := map[string]string{"json": "json", "sqlite": "db"}[kind]
			dataPath := filepath.Join(dir, "data."+ext)

			_, _, err := execute(t, "config", "set", "storage.type", kind)
			require.NoError(t, err)
			_, _, err = execute(t, "config", "set", "storage.path", dataPath)
			require.NoError(t, err)

			out, _, err := execute(t, "category", "list", "--quiet")
			require.NoError(t, err)
			assert.Equal(t, "1\n2\n", out, "Home and Work are created on first run")

			_, _, err = execute(t, "category", "use", "work")
			require.NoError(t, err)
			_, _, err = execute(t, "config", "set", "default-priority", "high")
			require.NoError(t, err)

			out, _, err = execute(t, "task", "add", "Write", "report", "--quiet")
			require.NoError(t, err)
			assert.Equal(t, "1\n", out)

			out, _, err = execute(t, "task", "show", "1", "--json")
			require.NoError(t, err)
			assert.Contains(t, out, `"priority":"high"`)
			assert.Contains(t, out, `"category_id":2`)

			_, _, err = execute(t, "task", "done", "1")
			require.NoError(t, err)

			out, _, err = execute(t, "task", "list", "--done", "--quiet")
			require.NoError(t, err)
			assert.Equal(t, "1\n", out)

			_, err = os.Stat(dataPath)
			require.NoError(t, err, "data file must exist")

			_, _, err = execute(t, "config", "reset")
			assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
			_, _, err = execute(t, "config", "reset", "--yes")
			require.NoError(t, err)
			out, _, err = execute(t, "task", "list", "--deleted", "--quiet")
			require.NoError(t, err)
			assert.Empty(t, out)
			out, _, err = execute(t, "config", "get", "default-priority")
			require.NoError(t, err)
			assert.Equal(t, "medium\n", out)

			_, err = os.Stat(filepath.Join(dir, "logs", "trtodo.log"))
			assert.NoError(t, err, "log file must exist")
		})
	}
}

func TestRoot_YAMLFile(t *testing.T) {
	dir := isolate(t)
	dataPath := filepath.Join(dir, "todo.yaml")
	t.Setenv("TRTODO_STORAGE_PATH", dataPath)

	_, _, err := execute(t, "task", "add", "Plain task")
	require.NoError(t, err)

	data, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Plain task")
}

func TestRoot_ExitCodes(t *testing.T) {
	isolate(t)

	_, stderr, err := execute(t, "task", "done", "99")
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	assert.Contains(t, stderr, "task not found")

	_, stderr, err = execute(t, "task", "list", "--bogus")
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	assert.Contains(t, stderr, "unknown flag")

	_, _, err = execute(t, "db", "version")
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestRoot_BrokenConfigStillEditable(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage:\n  type: postgres\n"), 0o644))

	_, _, err := execute(t, "task", "list")
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	_, _, err = execute(t, "config", "set", "storage.type", "json")
	require.NoError(t, err)

	out, _, err := execute(t, "task", "list")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "No tasks found"))
}
