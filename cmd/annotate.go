package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/protquant/quantpipe/internal/ioannotate"
	"github.com/protquant/quantpipe/pkg/config"
)

// getAnnotateCmd returns the annotate command running the gene-name
// annotation stage over an existing output directory.
func getAnnotateCmd() *cobra.Command {
	var (
		outputDir    string
		decoyPattern string
		noCache      bool
	)

	annotateCmd := &cobra.Command{
		Use:   "annotate",
		Short: "Annotate protein result tables with gene names",
		Long: `Annotate the protein result tables in an output directory
with UniProt gene names. Every proteins*.tsv file gets a gene_name
column inserted after its protein column; decoy accessions are skipped
during lookup. Files are rewritten atomically, so a failed lookup or
rewrite leaves the originals untouched.

Examples:
  quantpipe annotate -o results
  quantpipe annotate -o results --decoy-pattern DECOY_ --no-cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAnnotate(cmd, outputDir, decoyPattern, noCache)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	annotateCmd.Flags().StringVarP(
		&outputDir, "output-dir", "o", "",
		"directory holding proteins*.tsv result files",
	)
	annotateCmd.Flags().StringVar(
		&decoyPattern, "decoy-pattern", "decoy_",
		"decoy protein accession prefix",
	)
	annotateCmd.Flags().BoolVar(
		&noCache, "no-cache", false,
		"bypass the local gene-name cache",
	)

	_ = annotateCmd.MarkFlagRequired("output-dir")

	return annotateCmd
}

func runAnnotate(
	cmd *cobra.Command,
	outputDir string,
	decoyPattern string,
	noCache bool,
) error {
	ctx := context.Background()

	opts := []config.Option{config.OptOutputDir(outputDir)}
	if cmd.Flags().Changed("decoy-pattern") {
		opts = append(opts, config.OptQuantDecoyPattern(decoyPattern))
	}
	if noCache {
		opts = append(opts, config.OptAnnotationCache(false))
	}
	cfg.Update(opts)

	annotator := ioannotate.New(ioannotate.NewUniprotResolver(cfg))
	if err := annotator.Annotate(ctx, cfg); err != nil {
		return err
	}

	gn.Info("Annotation complete. Results in <em>%s</em>", cfg.OutputDir)
	return nil
}
