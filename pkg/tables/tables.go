// Package tables holds pure helpers for the tab-separated tables the
// pipeline reads and writes. No I/O happens here; every function is a
// plain transformation over parsed rows so behavior stays easy to test.
package tables

import (
	"sort"
	"strings"
)

// Condition pairs a dense 1-based ID with an experimental group label.
type Condition struct {
	ID    int
	Label string
}

// ColumnIndex locates a column by exact case-insensitive name match and
// falls back to the given positional index when the name is absent.
// The fallback is returned as-is even if it is out of range for the
// header; callers guard row length themselves.
func ColumnIndex(header []string, name string, fallback int) int {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i
		}
	}
	return fallback
}

// NumberConditions sorts the distinct labels byte-wise and assigns
// dense IDs starting at 1. IDs are stable only for a fixed label set:
// a new label can renumber everything after it.
func NumberConditions(labels map[string]struct{}) []Condition {
	sorted := make([]string, 0, len(labels))
	for l := range labels {
		sorted = append(sorted, l)
	}
	sort.Strings(sorted)

	res := make([]Condition, len(sorted))
	for i, l := range sorted {
		res[i] = Condition{ID: i + 1, Label: l}
	}
	return res
}

// SplitAccessions splits a semicolon-joined accession list. Empty
// fields are kept so positions stay aligned with the source cell.
func SplitAccessions(cell string) []string {
	return strings.Split(cell, ";")
}

// JoinAccessions is the inverse of SplitAccessions.
func JoinAccessions(accessions []string) string {
	return strings.Join(accessions, ";")
}

// InsertAfter returns a copy of row with value inserted right after
// position i.
func InsertAfter(row []string, i int, value string) []string {
	res := make([]string, 0, len(row)+1)
	res = append(res, row[:i+1]...)
	res = append(res, value)
	res = append(res, row[i+1:]...)
	return res
}
