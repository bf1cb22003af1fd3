package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRunnerConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runner_config.json")
	content := `{
  "exit_first": true,
  "fuzzer_runs": 500,
  "fuzzer_seed": 12,
  "max_concurrency": 4
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := ReadRunnerConfigFromFile(path)
	require.NoError(t, err)
	assert.True(t, config.ExitFirst)
	assert.EqualValues(t, 500, config.FuzzerRuns)
	assert.EqualValues(t, 12, config.FuzzerSeed)
	assert.Equal(t, 4, config.MaxConcurrency)
}

func TestReadRunnerConfigFromFile_MissingFile(t *testing.T) {
	_, err := ReadRunnerConfigFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestValidateCorelibVersion(t *testing.T) {
	params := &RunnerParams{CorelibVersionRange: "^2.4.0"}

	assert.NoError(t, params.ValidateCorelibVersion("2.4.3"))
	assert.Error(t, params.ValidateCorelibVersion("1.9.0"))
}

func TestValidateCorelibVersion_EmptyConstraintAlwaysSatisfied(t *testing.T) {
	params := &RunnerParams{}
	assert.NoError(t, params.ValidateCorelibVersion("0.0.1"))
}

func TestResolveFuzzerConfig_CaseOverridesCrate(t *testing.T) {
	runnerConfig := &RunnerConfig{FuzzerRuns: 256, FuzzerSeed: 0}

	runs, seed := resolveFuzzerConfig(nil, runnerConfig)
	assert.EqualValues(t, 256, runs)
	assert.EqualValues(t, 0, seed)

	runs, seed = resolveFuzzerConfig(&FuzzerConfig{Runs: 10, Seed: 99}, runnerConfig)
	assert.EqualValues(t, 10, runs)
	assert.EqualValues(t, 99, seed)
}
