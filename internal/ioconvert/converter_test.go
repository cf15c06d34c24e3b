package ioconvert

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protquant/quantpipe/pkg/config"
	"github.com/protquant/quantpipe/pkg/lifecycle"
)

// fakeRunner records invocations and plays back a canned result.
type fakeRunner struct {
	calls  [][]string
	result lifecycle.ToolResult
	err    error
}

func (f *fakeRunner) Run(
	_ context.Context, argv []string,
) (lifecycle.ToolResult, error) {
	f.calls = append(f.calls, argv)
	return f.result, f.err
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Input.File = "/data/report.tsv"
	cfg.Input.FileListFile = "/data/file_list.txt"
	cfg.OutputDir = "/results"
	return cfg
}

// TestConvert_TriqlerPassthrough verifies canonical input is used in
// place, without any subprocess or copy.
func TestConvert_TriqlerPassthrough(t *testing.T) {
	cfg := testConfig()
	cfg.Input.Format = config.FormatTriqler

	runner := &fakeRunner{}
	c := New(runner)

	path, err := c.Convert(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "/data/report.tsv", path)
	assert.Empty(t, runner.calls, "No converter should be spawned")
}

// TestConvert_MissingFileList verifies the configuration error fires
// before any subprocess starts.
func TestConvert_MissingFileList(t *testing.T) {
	for _, format := range []config.Format{
		config.FormatDiann, config.FormatMaxquant,
	} {
		cfg := testConfig()
		cfg.Input.Format = format
		cfg.Input.FileListFile = ""

		runner := &fakeRunner{}
		c := New(runner)

		_, err := c.Convert(context.Background(), cfg)
		require.Error(t, err)
		assert.Empty(t, runner.calls,
			"No subprocess may run on configuration error")
	}
}

// TestConvert_DiannArgv verifies the DIA-NN converter invocation.
func TestConvert_DiannArgv(t *testing.T) {
	cfg := testConfig()
	cfg.Input.Format = config.FormatDiann

	runner := &fakeRunner{}
	c := New(runner)

	path, err := c.Convert(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "/results/canonical_input.tsv", path)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		"python3", "-m", "triqler.convert.diann",
		"--file_list_file", "/data/file_list.txt",
		"--out_file", "/results/canonical_input.tsv",
		"/data/report.tsv",
	}, runner.calls[0])
}

// TestConvert_MaxquantArgv verifies the MaxQuant converter is a
// distinct program from the DIA-NN one.
func TestConvert_MaxquantArgv(t *testing.T) {
	cfg := testConfig()
	cfg.Input.Format = config.FormatMaxquant

	runner := &fakeRunner{}
	c := New(runner)

	_, err := c.Convert(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0], "triqler.convert.maxquant")
	assert.NotContains(t, runner.calls[0], "triqler.convert.diann")
}

// TestConvert_ToolFailure verifies a converter failure is fatal and
// carries the tool's exit code.
func TestConvert_ToolFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Input.Format = config.FormatDiann

	runner := &fakeRunner{
		result: lifecycle.ToolResult{ExitCode: 2, Stderr: "bad input"},
	}
	c := New(runner)

	_, err := c.Convert(context.Background(), cfg)
	require.Error(t, err)

	var exitErr *lifecycle.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
	assert.Equal(t, "bad input", exitErr.Stderr)
}

// TestConvert_UnknownFormat verifies an unknown tag is rejected.
func TestConvert_UnknownFormat(t *testing.T) {
	cfg := testConfig()
	cfg.Input.Format = config.Format("spectronaut")

	runner := &fakeRunner{}
	c := New(runner)

	_, err := c.Convert(context.Background(), cfg)
	assert.Error(t, err)
	assert.Empty(t, runner.calls)
}
