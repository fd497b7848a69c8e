package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixturectl/internal/app"
	"fixturectl/internal/selftest"
)

// isolateConfig points the commands at an empty config file for the duration of the test.
func isolateConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	original := configPath
	configPath = path
	t.Cleanup(func() { configPath = original })
}

func execute(t *testing.T, cmdArgs []string, newCmd func() *cobra.Command) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	c := newCmd()
	c.SetOut(&buf)
	c.SetErr(&buf)
	c.SetArgs(cmdArgs)
	err := c.Execute()
	return buf.String(), err
}

func TestRunCommand_HealthySubset(t *testing.T) {
	isolateConfig(t, "")

	out, err := execute(t, []string{"--fixture", selftest.LifecycleFixture, "--format", "quiet"}, newRunCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "✅ All 2 tests passed")
}

func TestRunCommand_FailuresExitNonZero(t *testing.T) {
	isolateConfig(t, "")

	out, err := execute(t, []string{"--format", "quiet"}, newRunCmd)
	assert.ErrorIs(t, err, app.ErrSuiteFailed)
	assert.Contains(t, out, "❌ "+selftest.FaultyBodyFixture+".Fails")
}

func TestRunCommand_FlagsOverrideConfig(t *testing.T) {
	isolateConfig(t, "report:\n  format: json\n")

	out, err := execute(t, []string{"--fixture", selftest.LifecycleFixture, "--format", "quiet"}, newRunCmd)
	require.NoError(t, err)
	assert.NotContains(t, out, `"label"`)

	out, err = execute(t, []string{"--fixture", selftest.LifecycleFixture}, newRunCmd)
	require.NoError(t, err)
	assert.Contains(t, out, `"label": "`+selftest.LifecycleFixture+`"`)
}

func TestRunCommand_RejectsUnknownFormat(t *testing.T) {
	isolateConfig(t, "")

	_, err := execute(t, []string{"--format", "xml"}, newRunCmd)
	assert.Error(t, err)
}

func TestListCommand(t *testing.T) {
	isolateConfig(t, "")

	out, err := execute(t, []string{"--fixture", "SelfTest.*Ignore*"}, newListCmd)
	require.NoError(t, err)
	assert.Contains(t, out, selftest.PartialIgnoreFixture)
	assert.Contains(t, out, "Sits ignored: not ready")
	assert.NotContains(t, out, selftest.LifecycleFixture)
}

func TestRunFlags_OnlyChangedFlagsOverride(t *testing.T) {
	var f runFlags
	c := &cobra.Command{Use: "test"}
	f.addSelection(c)
	f.addReporting(c)
	f.addDetail(c)
	require.NoError(t, c.ParseFlags([]string{"--order", "lexical", "--detail", "0"}))

	o := f.overrides(c)
	assert.Equal(t, "lexical", o.Order)
	assert.Nil(t, o.HookTimeout)
	assert.Empty(t, o.Format)
	assert.Empty(t, o.Fixtures)
	require.NotNil(t, o.DetailLevel, "an explicit zero still overrides")
	assert.Equal(t, 0, *o.DetailLevel)
}
