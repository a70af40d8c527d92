package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeParamFile(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "run.param")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// resetFlags undoes any flag value a previous test left on the package-level
// rootCmd, since pflag only overwrites flags that appear in the next argv.
func resetFlags(t *testing.T) {
	t.Helper()
	require.NoError(t, rootCmd.Flags().Set("strict", "false"))
	require.NoError(t, rootCmd.Flags().Set("profile", ""))
}

func TestRunSimulationCompletesASmallSodProblem(t *testing.T) {
	resetFlags(t)
	path := writeParamFile(t, `
nx = 32
ghost = 2
gamma = 1.4
cfl_number = 0.4
reconstruction = plmc
riemann_solver = hllc
integrator = van_leer
max_steps = 5
`)
	rootCmd.SetArgs([]string{path})
	err := Execute()
	require.NoError(t, err)
}

func TestRunSimulationRejectsMissingFile(t *testing.T) {
	resetFlags(t)
	rootCmd.SetArgs([]string{"/nonexistent/path/does-not-exist.param"})
	err := Execute()
	assert.Error(t, err)
}

func TestRunSimulationRejectsBadGhostWidth(t *testing.T) {
	resetFlags(t)
	path := writeParamFile(t, `
nx = 32
ghost = 1
reconstruction = ppmc
max_steps = 1
`)
	rootCmd.SetArgs([]string{path})
	err := Execute()
	assert.Error(t, err)
}

func TestRunSimulationAppliesKeyValueOverrides(t *testing.T) {
	resetFlags(t)
	path := writeParamFile(t, `
nx = 32
ghost = 2
max_steps = 1
`)
	rootCmd.SetArgs([]string{path, "max_steps=3", "cfl_number=0.2"})
	err := Execute()
	require.NoError(t, err)
}

func TestRunSimulationStrictModeAbortsOnUnknownKey(t *testing.T) {
	resetFlags(t)
	path := writeParamFile(t, `
nx = 32
ghost = 2
max_steps = 1
this_key_is_never_read = 7
`)
	rootCmd.SetArgs([]string{"--strict", path})
	err := Execute()
	assert.Error(t, err)
}
