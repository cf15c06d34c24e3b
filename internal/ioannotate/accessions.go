package ioannotate

import (
	"bufio"
	"log/slog"
	"os"
	"strings"

	"github.com/protquant/quantpipe/pkg/tables"
)

// proteinColumn must be present by name; unlike the condition column
// there is no positional fallback, files without it are skipped.
const proteinColumn = "protein"

const (
	scanBufInitial = 64 * 1024
	scanBufMax     = 16 * 1024 * 1024
)

// collectAccessions gathers the union of non-decoy accessions over
// all result files. Unreadable files are warnings and contribute
// nothing.
func collectAccessions(
	files []string,
	decoyPrefix string,
) map[string]struct{} {
	set := make(map[string]struct{})
	for _, file := range files {
		if err := scanProteinColumn(file, decoyPrefix, set); err != nil {
			slog.Warn("Cannot collect accessions",
				"file", file, "error", err)
		}
	}
	return set
}

// scanProteinColumn streams one result file and adds its non-decoy
// accessions to set. A file without a protein column is silently
// skipped.
func scanProteinColumn(
	path string,
	decoyPrefix string,
	set map[string]struct{},
) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, scanBufInitial), scanBufMax)

	if !sc.Scan() {
		return sc.Err()
	}
	header := strings.Split(sc.Text(), "\t")
	idx := tables.ColumnIndex(header, proteinColumn, -1)
	if idx < 0 {
		return nil
	}

	for sc.Scan() {
		fields := strings.Split(sc.Text(), "\t")
		if len(fields) <= idx {
			continue
		}
		for _, acc := range tables.SplitAccessions(fields[idx]) {
			acc = strings.TrimSpace(acc)
			if acc == "" {
				continue
			}
			if strings.HasPrefix(acc, decoyPrefix) {
				continue
			}
			set[acc] = struct{}{}
		}
	}
	return sc.Err()
}
