package dataset

import (
	"github.com/arkilian/clickforge/pkg/types"
)

// Table is the assembled in-memory dataset: every event record across
// every user, in generation order (user-major, event-minor). Rows are
// not re-ordered until the writer sorts each partition group.
type Table struct {
	records []types.Record
}

// Assemble concatenates record batches into a single table. Row order
// is the order records were produced.
func Assemble(batches ...[]types.Record) *Table {
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	records := make([]types.Record, 0, total)
	for _, b := range batches {
		records = append(records, b...)
	}
	return &Table{records: records}
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	return len(t.records)
}

// Records returns the table's rows in order. The slice is shared, not
// copied; the dataset is write-once and never mutated after assembly.
func (t *Table) Records() []types.Record {
	return t.records
}
