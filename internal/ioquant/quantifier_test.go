package ioquant

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protquant/quantpipe/pkg/config"
	"github.com/protquant/quantpipe/pkg/lifecycle"
)

type fakeRunner struct {
	calls  [][]string
	result lifecycle.ToolResult
	err    error
	onRun  func()
}

func (f *fakeRunner) Run(
	_ context.Context, argv []string,
) (lifecycle.ToolResult, error) {
	f.calls = append(f.calls, argv)
	if f.onRun != nil {
		f.onRun()
	}
	return f.result, f.err
}

func testConfig(outDir string) *config.Config {
	cfg := config.New()
	cfg.OutputDir = outDir
	return cfg
}

// TestBuildArgv_Defaults verifies the base invocation with default
// settings: no prior, no thread count, no toggles, trailing input.
func TestBuildArgv_Defaults(t *testing.T) {
	cfg := testConfig("/results")

	argv := buildArgv(cfg, "/data/input.tsv")

	assert.Equal(t, []string{
		"python3", "-m", "triqler",
		"--out_file", "/results/proteins.tsv",
		"--fold_change_eval", "1",
		"--decoy_pattern", "decoy_",
		"--min_samples", "2",
		"/data/input.tsv",
	}, argv)
}

// TestBuildArgv_DIAPrior verifies the prior flag appears only for the
// non-default mode.
func TestBuildArgv_DIAPrior(t *testing.T) {
	cfg := testConfig("/results")
	cfg.Quant.MissingValuePrior = "DIA"

	argv := buildArgv(cfg, "/data/input.tsv")
	assert.Contains(t, argv, "--missing_value_prior")

	cfg.Quant.MissingValuePrior = "default"
	argv = buildArgv(cfg, "/data/input.tsv")
	assert.NotContains(t, argv, "--missing_value_prior")
}

// TestBuildArgv_ThreadsOmittedAtZero verifies zero means "engine
// default" and sends nothing.
func TestBuildArgv_ThreadsOmittedAtZero(t *testing.T) {
	cfg := testConfig("/results")

	argv := buildArgv(cfg, "/data/input.tsv")
	assert.NotContains(t, argv, "--num_threads")

	cfg.Quant.NumThreads = 4
	argv = buildArgv(cfg, "/data/input.tsv")
	idx := indexOf(argv, "--num_threads")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "4", argv[idx+1])
}

// TestBuildArgv_Toggles verifies each output toggle contributes its
// flag, with posterior exports carrying fixed destination paths.
func TestBuildArgv_Toggles(t *testing.T) {
	cfg := testConfig("/results")
	cfg.Quant.UseTTest = true
	cfg.Quant.WriteSpectrumQuants = true
	cfg.Quant.WriteProteinPosteriors = true
	cfg.Quant.WriteGroupPosteriors = true
	cfg.Quant.WriteFoldChangePosteriors = true

	argv := buildArgv(cfg, "/data/input.tsv")

	assert.Contains(t, argv, "--ttest")
	assert.Contains(t, argv, "--write_spectrum_quants")

	idx := indexOf(argv, "--write_protein_posteriors")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "/results/protein_posteriors.tsv", argv[idx+1])

	idx = indexOf(argv, "--write_group_posteriors")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "/results/group_posteriors.tsv", argv[idx+1])

	idx = indexOf(argv, "--write_fold_change_posteriors")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "/results/fold_change_posteriors.tsv", argv[idx+1])
}

// TestBuildArgv_LeadingInput verifies the version-sensitive placement
// switch moves the input before the flags.
func TestBuildArgv_LeadingInput(t *testing.T) {
	cfg := testConfig("/results")
	cfg.Quant.InputArgPosition = config.InputLeading

	argv := buildArgv(cfg, "/data/input.tsv")

	assert.Equal(t, "/data/input.tsv", argv[3],
		"Input should follow the exec prefix directly")
	assert.NotEqual(t, "/data/input.tsv", argv[len(argv)-1])
}

// TestQuantify_ExitCodePropagated verifies a failing engine surfaces
// its own exit code untranslated.
func TestQuantify_ExitCodePropagated(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{
		result: lifecycle.ToolResult{ExitCode: 2, Stderr: "diverged"},
	}
	q := New(runner)

	err := q.Quantify(
		context.Background(), testConfig(dir),
		filepath.Join(dir, "input.tsv"),
	)
	require.Error(t, err)

	var exitErr *lifecycle.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
}

// TestQuantify_SpectrumRelocated verifies the artifact written beside
// the input is moved under its fixed name.
func TestQuantify_SpectrumRelocated(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(outDir, 0755))

	input := filepath.Join(dir, "input.tsv")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0644))

	spectrum := filepath.Join(dir, "input.spectrum_quants.tsv")

	cfg := testConfig(outDir)
	cfg.Quant.WriteSpectrumQuants = true

	runner := &fakeRunner{
		onRun: func() {
			// Engine drops the artifact beside its input.
			err := os.WriteFile(spectrum, []byte("spec\n"), 0644)
			require.NoError(t, err)
		},
	}
	q := New(runner)

	err := q.Quantify(context.Background(), cfg, input)
	require.NoError(t, err)

	data, err := os.ReadFile(
		filepath.Join(outDir, "spectrum_quants.tsv"),
	)
	require.NoError(t, err)
	assert.Equal(t, "spec\n", string(data))

	_, err = os.Stat(spectrum)
	assert.True(t, os.IsNotExist(err), "Source should be moved away")
}

// TestQuantify_MissingSpectrumIsWarning verifies a missing artifact
// does not fail a successful run.
func TestQuantify_MissingSpectrumIsWarning(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Quant.WriteSpectrumQuants = true

	runner := &fakeRunner{}
	q := New(runner)

	err := q.Quantify(
		context.Background(), cfg, filepath.Join(dir, "input.tsv"),
	)
	assert.NoError(t, err)
}

func indexOf(ss []string, want string) int {
	for i, s := range ss {
		if s == want {
			return i
		}
	}
	return -1
}
