package cmd

import (
	"github.com/spf13/cobra"

	"github.com/protquant/quantpipe/pkg/config"
)

// quantFlags holds the engine flags shared by the run and quantify
// subcommands.
type quantFlags struct {
	foldChangeEval      float64
	decoyPattern        string
	minSamples          int
	missingValuePrior   string
	numThreads          int
	useTTest            bool
	writeSpectrumQuants bool
	writeProteinPost    bool
	writeGroupPost      bool
	writeFoldChangePost bool
}

func addQuantFlags(cmd *cobra.Command, f *quantFlags) {
	cmd.Flags().Float64Var(
		&f.foldChangeEval, "fold-change-eval", 1.0,
		"log2 fold-change evaluation threshold",
	)
	cmd.Flags().StringVar(
		&f.decoyPattern, "decoy-pattern", "decoy_",
		"decoy protein accession prefix",
	)
	cmd.Flags().IntVar(
		&f.minSamples, "min-samples", 2,
		"minimum peptide quantifications required",
	)
	cmd.Flags().StringVar(
		&f.missingValuePrior, "missing-value-prior", "default",
		"missing value prior: default or DIA",
	)
	cmd.Flags().IntVar(
		&f.numThreads, "num-threads", 0,
		"engine thread count (0 = engine default)",
	)
	cmd.Flags().BoolVar(
		&f.useTTest, "ttest", false,
		"use t-test instead of posterior probabilities",
	)
	cmd.Flags().BoolVar(
		&f.writeSpectrumQuants, "write-spectrum-quants", false,
		"output spectrum-level quantifications",
	)
	cmd.Flags().BoolVar(
		&f.writeProteinPost, "write-protein-posteriors", false,
		"export protein posteriors",
	)
	cmd.Flags().BoolVar(
		&f.writeGroupPost, "write-group-posteriors", false,
		"export group posteriors",
	)
	cmd.Flags().BoolVar(
		&f.writeFoldChangePost, "write-fold-change-posteriors", false,
		"export fold-change posteriors",
	)
}

// quantOpts converts set flags into config options. Persistent engine
// settings are applied only when their flag was given so config.yaml
// and env values stay in charge otherwise; the output toggles are
// runtime-only and always applied.
func quantOpts(cmd *cobra.Command, f *quantFlags) []config.Option {
	var opts []config.Option
	fl := cmd.Flags()

	if fl.Changed("fold-change-eval") {
		opts = append(opts, config.OptQuantFoldChangeEval(f.foldChangeEval))
	}
	if fl.Changed("decoy-pattern") {
		opts = append(opts, config.OptQuantDecoyPattern(f.decoyPattern))
	}
	if fl.Changed("min-samples") {
		opts = append(opts, config.OptQuantMinSamples(f.minSamples))
	}
	if fl.Changed("missing-value-prior") {
		opts = append(opts, config.OptQuantMissingValuePrior(f.missingValuePrior))
	}
	if fl.Changed("num-threads") {
		opts = append(opts, config.OptQuantNumThreads(f.numThreads))
	}

	opts = append(opts,
		config.OptUseTTest(f.useTTest),
		config.OptWriteSpectrumQuants(f.writeSpectrumQuants),
		config.OptWriteProteinPosteriors(f.writeProteinPost),
		config.OptWriteGroupPosteriors(f.writeGroupPost),
		config.OptWriteFoldChangePosteriors(f.writeFoldChangePost),
	)
	return opts
}
