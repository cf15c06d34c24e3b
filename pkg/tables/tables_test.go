package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestColumnIndex covers named match, case-insensitivity, and the
// positional fallback.
func TestColumnIndex(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		column   string
		fallback int
		want     int
	}{
		{"exact", []string{"run", "condition"}, "condition", 1, 1},
		{"case insensitive", []string{"run", "Condition"}, "condition", 1, 1},
		{"upper", []string{"CONDITION", "run"}, "condition", 1, 0},
		{"padded", []string{"run", " condition "}, "condition", 1, 1},
		{"fallback", []string{"run", "group", "x"}, "condition", 1, 1},
		{"fallback negative", []string{"run"}, "protein", -1, -1},
		{"no partial match", []string{"run", "conditions"}, "condition", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColumnIndex(tt.header, tt.column, tt.fallback)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestNumberConditions verifies dense 1-based IDs in byte-wise sorted
// order; uppercase labels sort before lowercase ones.
func TestNumberConditions(t *testing.T) {
	labels := map[string]struct{}{
		"groupb": {},
		"GroupA": {},
	}

	got := NumberConditions(labels)
	assert.Equal(t, []Condition{
		{ID: 1, Label: "GroupA"},
		{ID: 2, Label: "groupb"},
	}, got)
}

// TestNumberConditions_Dense verifies IDs form a contiguous 1..N
// range for any label set.
func TestNumberConditions_Dense(t *testing.T) {
	labels := map[string]struct{}{
		"c": {}, "a": {}, "b": {}, "d": {},
	}

	got := NumberConditions(labels)
	for i, c := range got {
		assert.Equal(t, i+1, c.ID)
		if i > 0 {
			assert.Less(t, got[i-1].Label, c.Label)
		}
	}
}

// TestNumberConditions_Empty verifies the empty set yields an empty
// mapping.
func TestNumberConditions_Empty(t *testing.T) {
	got := NumberConditions(map[string]struct{}{})
	assert.Empty(t, got)
}

// TestAccessionsRoundTrip verifies split/join keep positions.
func TestAccessionsRoundTrip(t *testing.T) {
	cell := "P1;P2;;P3"
	parts := SplitAccessions(cell)
	assert.Equal(t, []string{"P1", "P2", "", "P3"}, parts)
	assert.Equal(t, cell, JoinAccessions(parts))
}

// TestInsertAfter verifies the insertion position and that the input
// slice stays untouched.
func TestInsertAfter(t *testing.T) {
	row := []string{"a", "b", "c"}
	got := InsertAfter(row, 1, "x")
	assert.Equal(t, []string{"a", "b", "x", "c"}, got)
	assert.Equal(t, []string{"a", "b", "c"}, row)

	got = InsertAfter(row, 2, "x")
	assert.Equal(t, []string{"a", "b", "c", "x"}, got)
}
