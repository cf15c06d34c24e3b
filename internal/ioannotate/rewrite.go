package ioannotate

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/protquant/quantpipe/pkg/tables"
)

// geneColumn is inserted immediately after the protein column.
const geneColumn = "gene_name"

// rewriteFile rewrites one result file with a gene_name column. The
// full rewrite goes to a temporary file in the same directory and
// replaces the original atomically only after it succeeded; any
// failure leaves the original untouched and removes the temporary.
// Files without a protein column are left byte-identical.
func rewriteFile(path string, genes map[string]string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, scanBufInitial), scanBufMax)

	if !sc.Scan() {
		return sc.Err()
	}
	header := strings.Split(sc.Text(), "\t")
	idx := tables.ColumnIndex(header, proteinColumn, -1)
	if idx < 0 {
		return nil
	}

	tmp, err := os.CreateTemp(
		filepath.Dir(path), filepath.Base(path)+".tmp-*",
	)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	replaced := false
	defer func() {
		tmp.Close()
		if !replaced {
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmp)

	newHeader := tables.InsertAfter(header, idx, geneColumn)
	if _, err := w.WriteString(
		strings.Join(newHeader, "\t") + "\n",
	); err != nil {
		return err
	}

	for sc.Scan() {
		line := sc.Text()
		fields := strings.Split(line, "\t")
		if len(fields) <= idx {
			// Malformed row, passed through as-is.
			if _, err := w.WriteString(line + "\n"); err != nil {
				return err
			}
			continue
		}

		row := tables.InsertAfter(
			fields, idx, geneCell(fields[idx], genes),
		)
		if _, err := w.WriteString(
			strings.Join(row, "\t") + "\n",
		); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Sole mutation point: the original file changes only here.
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	replaced = true
	return nil
}

// geneCell maps every accession of the protein cell through the gene
// map, drops unresolved ones, and rejoins the rest. Order follows the
// protein cell; the protein cell itself is never modified.
func geneCell(cell string, genes map[string]string) string {
	accessions := tables.SplitAccessions(cell)
	resolved := make([]string, 0, len(accessions))
	for _, acc := range accessions {
		if gene := genes[strings.TrimSpace(acc)]; gene != "" {
			resolved = append(resolved, gene)
		}
	}
	return tables.JoinAccessions(resolved)
}
