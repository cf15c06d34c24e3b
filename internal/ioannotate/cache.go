package ioannotate

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // sqlite driver
)

// CacheManager keeps resolved accession-to-gene pairs in a small
// sqlite database so repeated runs do not re-query the remote
// service. Only resolved accessions are stored; misses are retried on
// the next run.
type CacheManager struct {
	path string
	db   *sql.DB
}

// NewCacheManager opens (and if needed creates) the cache database at
// the given path.
func NewCacheManager(path string) (*CacheManager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, CacheOpenError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, CacheOpenError(path, err)
	}

	ddl := `CREATE TABLE IF NOT EXISTS genes (
		accession TEXT PRIMARY KEY,
		gene      TEXT NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, CacheOpenError(path, err)
	}

	return &CacheManager{path: path, db: db}, nil
}

// Close closes the cache database.
func (c *CacheManager) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	if err != nil {
		slog.Warn("Cannot close gene-name cache", "error", err)
	}
	return err
}

// Lookup returns the cached gene names for the given accessions.
// Unknown accessions are simply absent from the result.
func (c *CacheManager) Lookup(
	accessions map[string]struct{},
) (map[string]string, error) {
	res := make(map[string]string)

	stmt, err := c.db.Prepare(
		"SELECT gene FROM genes WHERE accession = ?",
	)
	if err != nil {
		return res, CacheQueryError(c.path, err)
	}
	defer stmt.Close()

	for acc := range accessions {
		var gene string
		err := stmt.QueryRow(acc).Scan(&gene)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return res, CacheQueryError(c.path, err)
		}
		res[acc] = gene
	}
	return res, nil
}

// Store saves resolved gene names, replacing stale entries.
func (c *CacheManager) Store(genes map[string]string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return CacheQueryError(c.path, err)
	}

	stmt, err := tx.Prepare(
		"INSERT OR REPLACE INTO genes (accession, gene) VALUES (?, ?)",
	)
	if err != nil {
		tx.Rollback()
		return CacheQueryError(c.path, err)
	}
	defer stmt.Close()

	for acc, gene := range genes {
		if _, err := stmt.Exec(acc, gene); err != nil {
			tx.Rollback()
			return CacheQueryError(c.path, err)
		}
	}
	return tx.Commit()
}
