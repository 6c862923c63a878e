package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/floatdock/internal/cli/scenario"
)

// execute runs the root command in an isolated XDG environment.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))

	simulateOutput, simulateDefaults, simulateDraw = "table", false, false
	configSchemaWrite, configYes, boundsYes, previewNoRestore = false, false, false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestSimulate_JSONOutput(t *testing.T) {
	out, err := execute(t, "simulate", "--defaults", "-o", "json", filepath.Join("..", "scenario", "testdata", "attached_growth.yaml"))
	require.NoError(t, err)

	var res scenario.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Passed())
	todo, ok := res.Panel("todo")
	require.True(t, ok)
	assert.Equal(t, 328.0, todo.Rect.Top)
	assert.EqualValues(t, "clock", todo.Anchor)
}

func TestSimulate_FailedExpectationIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fail.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
panels:
  - {id: clock, kind: timer, x: 300, y: 300}
expect:
  - {panel: clock, left: 10}
`), 0o644))

	out, err := execute(t, "simulate", "--draw", path)

	assert.ErrorIs(t, err, errExpectationsFailed)
	assert.Contains(t, out, "1 expectation(s) failed")
}

func TestSimulate_UnknownFormat(t *testing.T) {
	_, err := execute(t, "simulate", "-o", "xml", filepath.Join("..", "scenario", "testdata", "drag_cancel.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "xml"`)
}

func TestConfigSchema_PrintsSchema(t *testing.T) {
	out, err := execute(t, "config", "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "floatdock configuration", schema["title"])
}

func TestConfigReset_WithYes(t *testing.T) {
	out, err := execute(t, "config", "reset", "--yes")
	require.NoError(t, err)

	assert.Contains(t, out, "Restored defaults")
	assert.FileExists(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "floatdock", "config.toml"))
}

func TestBounds_ListEmptyAndDeleteMissing(t *testing.T) {
	out, err := execute(t, "bounds", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved bounds")

	_, err = execute(t, "bounds", "delete", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no saved position for panel "ghost"`)
}

func TestConfigMigrate_UpToDateAfterFirstLoad(t *testing.T) {
	out, err := execute(t, "config", "migrate", "--yes")
	require.NoError(t, err)

	assert.Contains(t, out, "Config is up to date")
}
