package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/protquant/quantpipe/internal/iofs"
	"github.com/protquant/quantpipe/internal/iomapping"
	"github.com/protquant/quantpipe/internal/ioquant"
	"github.com/protquant/quantpipe/internal/iorunner"
	"github.com/protquant/quantpipe/pkg/config"
)

// getQuantifyCmd returns the quantify command running the condition
// mapping and quantification stages over an existing canonical table.
func getQuantifyCmd() *cobra.Command {
	var (
		inputFile string
		outputDir string
		qf        quantFlags
	)

	quantifyCmd := &cobra.Command{
		Use:   "quantify",
		Short: "Run the quantification engine on a canonical table",
		Long: `Run the external Triqler engine on a table already in the
canonical tab-separated format, writing condition_mapping.tsv and the
protein result tables into the output directory.

On engine failure quantpipe exits with the engine's own exit code.

Examples:
  quantpipe quantify -i canonical_input.tsv -o results
  quantpipe quantify -i canonical_input.tsv -o results \
    --fold-change-eval 0.8 --num-threads 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runQuantify(cmd, inputFile, outputDir, &qf)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	quantifyCmd.Flags().StringVarP(
		&inputFile, "input-file", "i", "",
		"canonical input table (tab-separated)",
	)
	quantifyCmd.Flags().StringVarP(
		&outputDir, "output-dir", "o", "",
		"output directory for results",
	)
	addQuantFlags(quantifyCmd, &qf)

	_ = quantifyCmd.MarkFlagRequired("input-file")
	_ = quantifyCmd.MarkFlagRequired("output-dir")

	return quantifyCmd
}

func runQuantify(
	cmd *cobra.Command,
	inputFile string,
	outputDir string,
	qf *quantFlags,
) error {
	ctx := context.Background()

	opts := []config.Option{
		config.OptInputFormat("triqler"),
		config.OptInputFile(inputFile),
		config.OptOutputDir(outputDir),
	}
	opts = append(opts, quantOpts(cmd, qf)...)
	cfg.Update(opts)

	if err := iofs.EnsureOutputDir(cfg.OutputDir); err != nil {
		return err
	}

	iomapping.New().MapConditions(ctx, cfg, inputFile)

	err := ioquant.New(iorunner.New()).Quantify(ctx, cfg, inputFile)
	if err != nil {
		return err
	}

	gn.Info("Quantification complete. Results written to <em>%s</em>",
		cfg.OutputDir)
	return nil
}
