// Package ioconvert normalizes search-engine exports into the
// canonical tab-separated table the quantification engine accepts.
//
// The numeric extraction itself lives in two external converter
// programs, one per upstream format; this package only dispatches to
// them. Canonical (triqler) input passes through untouched.
package ioconvert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/gnames/gn"
	"github.com/protquant/quantpipe/pkg/config"
	"github.com/protquant/quantpipe/pkg/lifecycle"
)

type converter struct {
	runner lifecycle.ToolRunner
}

// New returns a Converter that shells out via the given runner.
func New(runner lifecycle.ToolRunner) lifecycle.Converter {
	return &converter{runner: runner}
}

// Convert returns the path of the canonical table for the configured
// input. diann and maxquant inputs require the run-annotation file and
// dispatch to their own converter; the two are never interchangeable.
func (c *converter) Convert(
	ctx context.Context,
	cfg *config.Config,
) (string, error) {
	var execPrefix []string

	switch cfg.Input.Format {
	case config.FormatTriqler:
		// Already canonical; downstream stages read it in place.
		slog.Info("Input already in canonical format",
			"file", cfg.Input.File)
		return cfg.Input.File, nil
	case config.FormatDiann:
		execPrefix = cfg.Convert.DiannExec
	case config.FormatMaxquant:
		execPrefix = cfg.Convert.MaxquantExec
	default:
		return "", BadFormatError(string(cfg.Input.Format))
	}

	// Fail fast, before any subprocess starts.
	if cfg.Input.FileListFile == "" {
		return "", MissingFileListError(string(cfg.Input.Format))
	}

	out := filepath.Join(cfg.OutputDir, config.CanonicalFile)

	argv := slices.Clone(execPrefix)
	argv = append(argv,
		"--file_list_file", cfg.Input.FileListFile,
		"--out_file", out,
		cfg.Input.File,
	)

	gn.Info("Converting <em>%s</em> input to canonical format...",
		string(cfg.Input.Format))

	res, err := c.runner.Run(ctx, argv)
	if err != nil {
		return "", err
	}

	// Converter diagnostics are surfaced verbatim.
	if res.Stdout != "" {
		fmt.Fprint(os.Stdout, res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprint(os.Stderr, res.Stderr)
	}

	if res.ExitCode != 0 {
		slog.Error("Format conversion failed",
			"format", cfg.Input.Format,
			"exit_code", res.ExitCode)
		return "", &lifecycle.ExitError{
			Tool:   execPrefix[0],
			Code:   res.ExitCode,
			Stderr: res.Stderr,
		}
	}

	slog.Info("Wrote canonical table", "file", out)
	return out, nil
}
