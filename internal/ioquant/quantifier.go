// Package ioquant drives the external quantification engine: it
// translates the validated configuration into one engine invocation,
// captures the engine's streams, and relocates the spectrum-level
// artifact into the output directory.
//
// The engine's statistics are a black box; a non-zero exit is
// propagated untranslated to quantpipe's own exit code.
package ioquant

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/protquant/quantpipe/pkg/config"
	"github.com/protquant/quantpipe/pkg/lifecycle"
)

// spectrumSuffix is appended by the engine to the input's base name.
const spectrumSuffix = ".spectrum_quants.tsv"

// diaPrior is the only missing-value prior passed explicitly; the
// default mode is the engine's implicit behavior.
const diaPrior = "DIA"

type quantifier struct {
	runner lifecycle.ToolRunner
}

// New returns a Quantifier that shells out via the given runner.
func New(runner lifecycle.ToolRunner) lifecycle.Quantifier {
	return &quantifier{runner: runner}
}

// Quantify runs the engine over the canonical table. The engine's
// stdout/stderr are echoed verbatim. A requested spectrum artifact is
// moved into the output directory even when the engine failed, so
// partial diagnostics stay inspectable.
func (q *quantifier) Quantify(
	ctx context.Context,
	cfg *config.Config,
	tablePath string,
) error {
	argv := buildArgv(cfg, tablePath)

	gn.Info("Running quantification engine...")
	start := time.Now()

	res, err := q.runner.Run(ctx, argv)
	if err != nil {
		return err
	}

	if res.Stdout != "" {
		fmt.Fprint(os.Stdout, res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprint(os.Stderr, res.Stderr)
	}

	if cfg.Quant.WriteSpectrumQuants {
		relocateSpectrum(cfg, tablePath)
	}

	if res.ExitCode != 0 {
		slog.Error("Quantification engine failed",
			"exit_code", res.ExitCode)
		return &lifecycle.ExitError{
			Tool:   cfg.Quant.Exec[0],
			Code:   res.ExitCode,
			Stderr: res.Stderr,
		}
	}

	duration := time.Since(start)
	slog.Info("Quantification complete",
		"output_dir", cfg.OutputDir,
		"duration", gnfmt.TimeString(duration.Seconds()))
	return nil
}

// buildArgv assembles the full engine command line. Numeric options
// pass through verbatim; num_threads is omitted entirely at zero so
// the engine keeps its own default; the missing-value prior is passed
// only in DIA mode. The positional input path goes before or after
// the flags depending on configuration, because the engine's accepted
// placement has changed between versions.
func buildArgv(cfg *config.Config, tablePath string) []string {
	out := cfg.OutputDir
	quant := cfg.Quant

	args := []string{
		"--out_file", filepath.Join(out, config.ProteinsFile),
		"--fold_change_eval",
		strconv.FormatFloat(quant.FoldChangeEval, 'g', -1, 64),
		"--decoy_pattern", quant.DecoyPattern,
		"--min_samples", strconv.Itoa(quant.MinSamples),
	}

	if quant.MissingValuePrior == diaPrior {
		args = append(args, "--missing_value_prior", diaPrior)
	}

	if quant.NumThreads > 0 {
		args = append(args,
			"--num_threads", strconv.Itoa(quant.NumThreads))
	}

	if quant.UseTTest {
		args = append(args, "--ttest")
	}

	if quant.WriteSpectrumQuants {
		args = append(args, "--write_spectrum_quants")
	}

	// Posterior destinations are fixed up front so the expected
	// artifact paths are known regardless of what the engine writes.
	if quant.WriteProteinPosteriors {
		args = append(args, "--write_protein_posteriors",
			filepath.Join(out, config.ProteinPosteriorsFile))
	}
	if quant.WriteGroupPosteriors {
		args = append(args, "--write_group_posteriors",
			filepath.Join(out, config.GroupPosteriorsFile))
	}
	if quant.WriteFoldChangePosteriors {
		args = append(args, "--write_fold_change_posteriors",
			filepath.Join(out, config.FoldChangePosteriorsFile))
	}

	argv := slices.Clone(quant.Exec)
	if quant.InputArgPosition == config.InputLeading {
		argv = append(argv, tablePath)
		argv = append(argv, args...)
	} else {
		argv = append(argv, args...)
		argv = append(argv, tablePath)
	}
	return argv
}

// relocateSpectrum moves the spectrum artifact into the output
// directory under its fixed name. The engine names the artifact after
// the input file and writes it beside the input or into the working
// directory; both spots are checked. A missing artifact is a warning,
// the engine's own exit status stays authoritative.
func relocateSpectrum(cfg *config.Config, tablePath string) {
	base := strings.TrimSuffix(
		filepath.Base(tablePath), filepath.Ext(tablePath),
	)
	name := base + spectrumSuffix
	dst := filepath.Join(cfg.OutputDir, config.SpectrumQuantsFile)

	candidates := []string{
		filepath.Join(filepath.Dir(tablePath), name),
		name,
	}
	for _, src := range candidates {
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := moveFile(src, dst); err != nil {
			slog.Warn("Cannot relocate spectrum quantifications",
				"src", src, "dst", dst, "error", err)
			return
		}
		slog.Info("Relocated spectrum quantifications", "file", dst)
		return
	}

	slog.Warn("Spectrum quantifications file not found",
		"expected", name)
	gn.Warn("Expected spectrum file <em>%s</em> was not produced", name)
}

// moveFile renames src to dst, falling back to copy-and-remove when
// the rename crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return err
	}
	return os.Remove(src)
}
