// Package ioannotate enriches protein result tables with gene names.
//
// It collects the union of non-decoy accessions across every
// proteins*.tsv file in the output directory, resolves them in one
// logical batch against the UniProt id-mapping service (backed by a
// local sqlite cache), and rewrites each file in place with a
// gene_name column inserted right after the protein column.
//
// The whole stage is enrichment. An unavailable resolver skips it
// with a warning, and one file's rewrite failure never touches the
// others.
package ioannotate

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/protquant/quantpipe/pkg/config"
	"github.com/protquant/quantpipe/pkg/lifecycle"
)

// proteinsGlob discovers the engine's result tables: the overall
// table plus any group- or fold-change-level siblings.
const proteinsGlob = "proteins*.tsv"

type annotator struct {
	resolver lifecycle.GeneResolver
}

// New returns an Annotator using the given resolver for the remote
// accession-to-gene lookup.
func New(resolver lifecycle.GeneResolver) lifecycle.Annotator {
	return &annotator{resolver: resolver}
}

// Annotate rewrites every protein result table with gene names. All
// failures inside the stage degrade to warnings; the returned error
// is always nil unless the context was canceled.
func (a *annotator) Annotate(
	ctx context.Context,
	cfg *config.Config,
) error {
	if a.resolver == nil || !a.resolver.Available() ||
		!cfg.AnnotationEnabled() {
		slog.Warn("Gene annotation service unavailable, skipping")
		gn.Warn("Gene-name annotation skipped: lookup service unavailable")
		return nil
	}

	files, err := filepath.Glob(
		filepath.Join(cfg.OutputDir, proteinsGlob),
	)
	if err != nil {
		slog.Warn("Cannot scan output directory",
			"dir", cfg.OutputDir, "error", err)
		return nil
	}
	sort.Strings(files)
	if len(files) == 0 {
		slog.Info("No protein result files to annotate",
			"dir", cfg.OutputDir)
		return nil
	}

	accessions := collectAccessions(files, cfg.Quant.DecoyPattern)
	if len(accessions) == 0 {
		slog.Info("No accessions found, nothing to annotate")
		return nil
	}
	slog.Info("Collected protein accessions",
		"count", humanize.Comma(int64(len(accessions))))

	genes := a.resolveAll(ctx, cfg, accessions)
	if len(genes) == 0 {
		slog.Warn("No gene names resolved, result files left untouched")
		return nil
	}
	slog.Info("Resolved gene names",
		"count", humanize.Comma(int64(len(genes))))

	var bar *pb.ProgressBar
	if len(files) > 1 {
		bar = newProgressBar(len(files), "annotate")
	}

	annotated := 0
	for _, file := range files {
		if err := rewriteFile(file, genes); err != nil {
			slog.Warn("Cannot annotate result file",
				"file", file, "error", err)
		} else {
			annotated++
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}

	gn.Info("Annotated %d of %d protein result files",
		annotated, len(files))
	return nil
}

// resolveAll answers the accession set from the local cache first and
// asks the remote service only for the remainder. Lookup failures are
// warnings; whatever resolved is still merged.
func (a *annotator) resolveAll(
	ctx context.Context,
	cfg *config.Config,
	accessions map[string]struct{},
) map[string]string {
	genes := make(map[string]string)

	var cache *CacheManager
	if cfg.AnnotationCacheEnabled() && cfg.HomeDir != "" {
		var err error
		cache, err = NewCacheManager(config.GeneCachePath(cfg.HomeDir))
		if err != nil {
			slog.Warn("Gene-name cache unavailable", "error", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	missing := make([]string, 0, len(accessions))
	if cache != nil {
		cached, err := cache.Lookup(accessions)
		if err != nil {
			slog.Warn("Gene-name cache lookup failed", "error", err)
		}
		for acc, gene := range cached {
			genes[acc] = gene
		}
		for acc := range accessions {
			if _, ok := genes[acc]; !ok {
				missing = append(missing, acc)
			}
		}
	} else {
		for acc := range accessions {
			missing = append(missing, acc)
		}
	}
	sort.Strings(missing)

	if len(missing) == 0 {
		return genes
	}

	resolved, err := a.resolver.Resolve(ctx, missing)
	if err != nil {
		slog.Warn("Remote gene-name lookup failed", "error", err)
		gn.Warn("Gene-name lookup failed: %s", err.Error())
		return genes
	}
	for acc, gene := range resolved {
		genes[acc] = gene
	}

	if cache != nil && len(resolved) > 0 {
		if err := cache.Store(resolved); err != nil {
			slog.Warn("Cannot store gene names in cache", "error", err)
		}
	}

	return genes
}

// newProgressBar creates a new progress bar with consistent
// settings.
func newProgressBar(
	total int,
	prefix string,
) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
