// Package iomapping derives the condition mapping from the canonical
// table: every distinct condition label, sorted, with dense 1-based
// IDs. The mapping is enrichment; nothing here may fail the run.
package iomapping

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/protquant/quantpipe/pkg/config"
	"github.com/protquant/quantpipe/pkg/lifecycle"
	"github.com/protquant/quantpipe/pkg/tables"
)

// conditionColumn is matched case-insensitively in the header; when
// absent the second column is assumed to hold the condition.
const (
	conditionColumn   = "condition"
	conditionFallback = 1
)

// scanner buffer bounds; canonical tables can carry very wide rows.
const (
	scanBufInitial = 64 * 1024
	scanBufMax     = 16 * 1024 * 1024
)

type mapper struct{}

// New returns a ConditionMapper writing condition_mapping.tsv.
func New() lifecycle.ConditionMapper {
	return &mapper{}
}

// MapConditions streams the canonical table and writes the mapping
// file into the output directory. Every failure is downgraded to a
// warning and produces a nil mapping; the pipeline continues either
// way.
func (m *mapper) MapConditions(
	ctx context.Context,
	cfg *config.Config,
	tablePath string,
) []tables.Condition {
	conds, err := scanConditions(tablePath)
	if err != nil {
		slog.Warn("Cannot derive condition mapping",
			"table", tablePath, "error", err)
		gn.Warn("Condition mapping skipped: %s", err.Error())
		return nil
	}
	if len(conds) == 0 {
		slog.Warn("No condition values found", "table", tablePath)
		return nil
	}

	outPath := filepath.Join(cfg.OutputDir, config.MappingFile)
	if err := writeMapping(outPath, conds); err != nil {
		slog.Warn("Cannot write condition mapping",
			"file", outPath, "error", err)
		gn.Warn("Condition mapping skipped: %s", err.Error())
		return nil
	}

	slog.Info("Wrote condition mapping",
		"file", outPath,
		"conditions", humanize.Comma(int64(len(conds))))
	return conds
}

// scanConditions reads the table row by row and collects the distinct
// values of the condition column. Rows shorter than the column's
// position are ignored.
func scanConditions(path string) ([]tables.Condition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, scanBufInitial), scanBufMax)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty table %s", path)
	}
	header := strings.Split(sc.Text(), "\t")
	idx := tables.ColumnIndex(header, conditionColumn, conditionFallback)

	set := make(map[string]struct{})
	for sc.Scan() {
		fields := strings.Split(sc.Text(), "\t")
		if len(fields) <= idx {
			continue
		}
		set[fields[idx]] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return tables.NumberConditions(set), nil
}

func writeMapping(path string, conds []tables.Condition) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprint(w, "ID\tCondition\n")
	for _, c := range conds {
		fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Label)
	}
	return w.Flush()
}
