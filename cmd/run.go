package cmd

import (
	"context"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/protquant/quantpipe/internal/ioannotate"
	"github.com/protquant/quantpipe/internal/ioconvert"
	"github.com/protquant/quantpipe/internal/iofs"
	"github.com/protquant/quantpipe/internal/iomapping"
	"github.com/protquant/quantpipe/internal/ioquant"
	"github.com/protquant/quantpipe/internal/iorunner"
	"github.com/protquant/quantpipe/pkg/config"
)

// getRunCmd returns the run command executing the whole pipeline.
func getRunCmd() *cobra.Command {
	var (
		inputFormat    string
		inputFile      string
		fileListFile   string
		outputDir      string
		skipAnnotation bool
		qf             quantFlags
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full quantification pipeline",
		Long: `Run all pipeline stages in order:

  1. Convert the input into the canonical table (diann/maxquant inputs
     require --file-list-file with run-to-condition annotations)
  2. Write condition_mapping.tsv
  3. Run the Triqler quantification engine
  4. Annotate protein result tables with UniProt gene names

Stages 2 and 4 are enrichment: their failures are warnings. A failing
converter or engine aborts the run and quantpipe exits with the tool's
own exit code.

Examples:
  # Canonical input
  quantpipe run -i psms.tsv -o results

  # DIA-NN input with run annotations and DIA prior
  quantpipe run -f diann -i report.tsv -l file_list.txt -o results \
    --missing-value-prior DIA

  # All posterior exports, no gene annotation
  quantpipe run -i psms.tsv -o results --write-protein-posteriors \
    --write-group-posteriors --write-fold-change-posteriors \
    --skip-annotation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRun(
				cmd, inputFormat, inputFile, fileListFile,
				outputDir, skipAnnotation, &qf,
			)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	runCmd.Flags().StringVarP(
		&inputFormat, "input-format", "f", "triqler",
		"input format: triqler, diann or maxquant",
	)
	runCmd.Flags().StringVarP(
		&inputFile, "input-file", "i", "",
		"input PSM file (tab-separated)",
	)
	runCmd.Flags().StringVarP(
		&fileListFile, "file-list-file", "l", "",
		"run-to-condition annotation file (diann/maxquant)",
	)
	runCmd.Flags().StringVarP(
		&outputDir, "output-dir", "o", "",
		"output directory for results",
	)
	runCmd.Flags().BoolVar(
		&skipAnnotation, "skip-annotation", false,
		"skip gene-name annotation of result files",
	)
	addQuantFlags(runCmd, &qf)

	_ = runCmd.MarkFlagRequired("input-file")
	_ = runCmd.MarkFlagRequired("output-dir")

	return runCmd
}

func runRun(
	cmd *cobra.Command,
	inputFormat string,
	inputFile string,
	fileListFile string,
	outputDir string,
	skipAnnotation bool,
	qf *quantFlags,
) error {
	ctx := context.Background()

	opts := []config.Option{
		config.OptInputFormat(inputFormat),
		config.OptInputFile(inputFile),
		config.OptInputFileListFile(fileListFile),
		config.OptOutputDir(outputDir),
	}
	opts = append(opts, quantOpts(cmd, qf)...)
	if skipAnnotation {
		opts = append(opts, config.OptAnnotationEnabled(false))
	}
	cfg.Update(opts)

	if err := iofs.EnsureOutputDir(cfg.OutputDir); err != nil {
		return err
	}

	runner := iorunner.New()

	table, err := ioconvert.New(runner).Convert(ctx, cfg)
	if err != nil {
		return err
	}

	iomapping.New().MapConditions(ctx, cfg, table)

	if err := ioquant.New(runner).Quantify(ctx, cfg, table); err != nil {
		return err
	}

	annotator := ioannotate.New(ioannotate.NewUniprotResolver(cfg))
	if err := annotator.Annotate(ctx, cfg); err != nil {
		slog.Warn("Annotation stage failed", "error", err)
	}

	gn.Info("Analysis complete. Results written to <em>%s</em>",
		cfg.OutputDir)
	return nil
}
