package lifecycle

import (
	"context"

	"github.com/protquant/quantpipe/pkg/config"
	"github.com/protquant/quantpipe/pkg/tables"
)

// Converter normalizes a search-engine export into the canonical
// tab-separated table the quantification engine accepts.
//
// The triqler format is already canonical and passes through untouched;
// diann and maxquant dispatch to their own external converter programs.
// A missing run-annotation file for a non-canonical format is a
// configuration error raised before any subprocess starts.
type Converter interface {
	// Convert returns the path of the canonical table. For canonical
	// input this is the input path itself; otherwise the converter
	// writes a new table inside the output directory.
	Convert(ctx context.Context, cfg *config.Config) (string, error)
}

// ConditionMapper derives a numbered list of distinct experimental
// conditions from the canonical table and writes it next to the other
// results.
//
// Mapping is enrichment: any failure is logged and yields an empty
// mapping, never an aborted run.
type ConditionMapper interface {
	// MapConditions streams tablePath and writes the mapping file into
	// the output directory. The returned slice is sorted by label with
	// dense IDs starting at 1; it is nil when mapping failed.
	MapConditions(ctx context.Context, cfg *config.Config, tablePath string) []tables.Condition
}

// Quantifier drives one invocation of the external quantification
// engine over the canonical table.
//
// A non-zero engine exit is returned as *ExitError; the caller mirrors
// that exact code on process exit. Missing optional artifacts after a
// successful exit are warnings only.
type Quantifier interface {
	// Quantify runs the engine and relocates the spectrum-level
	// artifact into the output directory when it was requested.
	Quantify(ctx context.Context, cfg *config.Config, tablePath string) error
}

// Annotator enriches protein result tables with gene names resolved
// against a remote batch lookup service.
//
// Annotation is enrichment: when the service is unavailable the stage
// is skipped with a warning, and per-file rewrite failures never abort
// the remaining files.
type Annotator interface {
	// Annotate discovers proteins*.tsv files in the output directory,
	// resolves their non-decoy accessions in bulk, and rewrites each
	// file with a gene_name column inserted after protein.
	Annotate(ctx context.Context, cfg *config.Config) error
}

// GeneResolver is the remote accession-to-gene-name boundary.
type GeneResolver interface {
	// Available reports whether the resolver can be used at all; it is
	// checked once before the annotation stage runs.
	Available() bool

	// Resolve submits all accessions as one logical batch and returns
	// a map holding one gene-name token per resolved accession.
	// Accessions absent from the result simply did not resolve; that is
	// not an error.
	Resolve(ctx context.Context, accessions []string) (map[string]string, error)
}
