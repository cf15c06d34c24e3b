package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/protquant/quantpipe/internal/ioconvert"
	"github.com/protquant/quantpipe/internal/iofs"
	"github.com/protquant/quantpipe/internal/iorunner"
	"github.com/protquant/quantpipe/pkg/config"
)

// getConvertCmd returns the convert command running the format
// adaptation stage alone.
func getConvertCmd() *cobra.Command {
	var (
		inputFormat  string
		inputFile    string
		fileListFile string
		outputDir    string
	)

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a search-engine export to the canonical table",
		Long: `Convert a DIA-NN or MaxQuant export into the canonical
tab-separated table the quantification engine accepts.

The run-to-condition annotation file (--file-list-file) is required
for both formats. Input already in canonical (triqler) format is
reported as-is without conversion.

Examples:
  quantpipe convert -f diann -i report.tsv -l file_list.txt -o results
  quantpipe convert -f maxquant -i evidence.txt -l file_list.txt -o results`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runConvert(inputFormat, inputFile, fileListFile, outputDir)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	convertCmd.Flags().StringVarP(
		&inputFormat, "input-format", "f", "triqler",
		"input format: triqler, diann or maxquant",
	)
	convertCmd.Flags().StringVarP(
		&inputFile, "input-file", "i", "",
		"input PSM file (tab-separated)",
	)
	convertCmd.Flags().StringVarP(
		&fileListFile, "file-list-file", "l", "",
		"run-to-condition annotation file",
	)
	convertCmd.Flags().StringVarP(
		&outputDir, "output-dir", "o", "",
		"output directory for the canonical table",
	)

	_ = convertCmd.MarkFlagRequired("input-file")
	_ = convertCmd.MarkFlagRequired("output-dir")

	return convertCmd
}

func runConvert(
	inputFormat string,
	inputFile string,
	fileListFile string,
	outputDir string,
) error {
	ctx := context.Background()

	cfg.Update([]config.Option{
		config.OptInputFormat(inputFormat),
		config.OptInputFile(inputFile),
		config.OptInputFileListFile(fileListFile),
		config.OptOutputDir(outputDir),
	})

	if err := iofs.EnsureOutputDir(cfg.OutputDir); err != nil {
		return err
	}

	table, err := ioconvert.New(iorunner.New()).Convert(ctx, cfg)
	if err != nil {
		return err
	}

	gn.Info("Canonical table: <em>%s</em>", table)
	return nil
}
