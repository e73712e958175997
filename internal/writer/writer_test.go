package writer

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arkilian/clickforge/internal/catalog"
	"github.com/arkilian/clickforge/internal/dataset"
	cferrors "github.com/arkilian/clickforge/internal/errors"
	"github.com/arkilian/clickforge/internal/gen"
	"github.com/arkilian/clickforge/pkg/types"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testTable(t *testing.T, seed int64, users, minEvents, maxEvents int) *dataset.Table {
	t.Helper()
	g := gen.New(catalog.Default(), rand.New(rand.NewSource(seed)), testNow)
	records, err := g.Dataset(gen.Params{NumUsers: users, MinEvents: minEvents, MaxEvents: maxEvents})
	if err != nil {
		t.Fatalf("generate dataset: %v", err)
	}
	return dataset.Assemble(records)
}

func defaultKeys() []string {
	return []string{"country", "state", "device"}
}

func TestWritePartitioned_SingleUserScenario(t *testing.T) {
	tbl := testTable(t, 42, 1, 5, 5)

	if tbl.NumRows() != 5 {
		t.Fatalf("expected 5 records for one user with 5 events, got %d", tbl.NumRows())
	}

	rows := tbl.Records()
	sessionID, userID := rows[0].SessionID, rows[0].UserID
	last := rows[0].SessionStart
	for i, rec := range rows {
		if rec.SessionID != sessionID || rec.UserID != userID {
			t.Fatalf("record %d has a different session or user", i)
		}
		if !rec.EventTimestamp.After(last) {
			t.Fatalf("record %d timestamp %v not after %v", i, rec.EventTimestamp, last)
		}
		last = rec.EventTimestamp
	}

	dir := t.TempDir()
	result, err := WritePartitioned(context.Background(), tbl, Options{
		OutputDir:     dir,
		PartitionKeys: defaultKeys(),
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	// One user has one country/state/device combination, so the whole
	// session lands in exactly one partition.
	if len(result.Partitions) != 1 {
		t.Fatalf("expected 1 partition, got %d", len(result.Partitions))
	}

	p := result.Partitions[0]
	if p.RowCount != 5 {
		t.Fatalf("partition row count %d, want 5", p.RowCount)
	}
	wantPath := filepath.Join(
		"country="+rows[0].Country,
		"state="+rows[0].State,
		"device="+rows[0].Device,
		PartitionFileName,
	)
	if p.Path != filepath.ToSlash(wantPath) {
		t.Fatalf("partition path %q, want %q", p.Path, filepath.ToSlash(wantPath))
	}

	full := filepath.Join(dir, wantPath)
	if _, err := os.Stat(full); err != nil {
		t.Fatalf("partition file missing: %v", err)
	}

	// 5 rows is far below the default row group size, so exactly one
	// row group.
	if p.RowGroups != 1 {
		t.Fatalf("expected 1 row group in result, got %d", p.RowGroups)
	}
	n, err := RowGroupCount(full)
	if err != nil {
		t.Fatalf("row group count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row group in file, got %d", n)
	}
}

func TestWritePartitioned_RoundTrip(t *testing.T) {
	tbl := testTable(t, 42, 40, 5, 15)
	dir := t.TempDir()

	result, err := WritePartitioned(context.Background(), tbl, Options{
		OutputDir:     dir,
		PartitionKeys: defaultKeys(),
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	ds, err := ReadDataset(context.Background(), dir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if ds.RowCount() != tbl.NumRows() {
		t.Fatalf("read %d rows, wrote %d", ds.RowCount(), tbl.NumRows())
	}
	if len(ds.Files) != len(result.Partitions) {
		t.Fatalf("read %d files, wrote %d partitions", len(ds.Files), len(result.Partitions))
	}

	// Grouping the read-back rows reproduces the written partition
	// cardinalities.
	counts := ds.GroupCounts(defaultKeys())
	if len(counts) != len(result.Partitions) {
		t.Fatalf("read %d distinct tuples, wrote %d partitions", len(counts), len(result.Partitions))
	}
	for _, p := range result.Partitions {
		key := p.Values[0] + "/" + p.Values[1] + "/" + p.Values[2]
		if int64(counts[key]) != p.RowCount {
			t.Fatalf("partition %s: read %d rows, wrote %d", key, counts[key], p.RowCount)
		}
	}

	var total int64
	for _, p := range result.Partitions {
		total += p.RowCount
	}
	if total != result.RowCount {
		t.Fatalf("partition row counts sum to %d, result says %d", total, result.RowCount)
	}
}

func TestWritePartitioned_SortedWithinPartition(t *testing.T) {
	tbl := testTable(t, 7, 30, 5, 10)
	dir := t.TempDir()

	result, err := WritePartitioned(context.Background(), tbl, Options{
		OutputDir:     dir,
		PartitionKeys: defaultKeys(),
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, p := range result.Partitions {
		ds, err := ReadDataset(context.Background(), filepath.Join(dir, filepath.Dir(filepath.FromSlash(p.Path))))
		if err != nil {
			t.Fatalf("read partition %s: %v", p.Path, err)
		}
		for i := 1; i < len(ds.Rows); i++ {
			prevUser := ds.Rows[i-1]["user_id"].(string)
			currUser := ds.Rows[i]["user_id"].(string)
			if prevUser > currUser {
				t.Fatalf("partition %s row %d out of user_id order", p.Path, i)
			}
			if prevUser == currUser {
				if ds.Rows[i-1]["event_name"].(string) > ds.Rows[i]["event_name"].(string) {
					t.Fatalf("partition %s row %d out of event_name order", p.Path, i)
				}
			}
		}
	}
}

func TestWritePartitioned_RowGroupBound(t *testing.T) {
	// Partition by country only: every row shares "Brasil", so one
	// partition holds everything and the row group split is exercised.
	tbl := testTable(t, 42, 20, 6, 6)
	dir := t.TempDir()

	result, err := WritePartitioned(context.Background(), tbl, Options{
		OutputDir:     dir,
		PartitionKeys: []string{"country"},
		RowGroupSize:  50,
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	if len(result.Partitions) != 1 {
		t.Fatalf("expected 1 partition, got %d", len(result.Partitions))
	}

	p := result.Partitions[0]
	if p.RowCount != 120 {
		t.Fatalf("expected 120 rows, got %d", p.RowCount)
	}
	want := 3 // ceil(120 / 50)
	if p.RowGroups != want {
		t.Fatalf("expected %d row groups in result, got %d", want, p.RowGroups)
	}

	n, err := RowGroupCount(filepath.Join(dir, filepath.FromSlash(p.Path)))
	if err != nil {
		t.Fatalf("row group count: %v", err)
	}
	if n != want {
		t.Fatalf("expected %d row groups in file, got %d", want, n)
	}
}

func TestWritePartitioned_Idempotent(t *testing.T) {
	tbl := testTable(t, 42, 10, 5, 8)
	dir := t.TempDir()
	opts := Options{OutputDir: dir, PartitionKeys: defaultKeys()}

	first, err := WritePartitioned(context.Background(), tbl, opts)
	if err != nil {
		t.Fatalf("first write: %v", err)
	}
	second, err := WritePartitioned(context.Background(), tbl, opts)
	if err != nil {
		t.Fatalf("second write: %v", err)
	}

	if len(first.Partitions) != len(second.Partitions) {
		t.Fatalf("partition count changed across rewrites: %d vs %d",
			len(first.Partitions), len(second.Partitions))
	}

	// Re-running overwrites the single file per partition; the read-back
	// row count must not grow.
	ds, err := ReadDataset(context.Background(), dir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ds.RowCount() != tbl.NumRows() {
		t.Fatalf("read %d rows after rewrite, want %d", ds.RowCount(), tbl.NumRows())
	}
}

func TestWritePartitioned_Deterministic(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()

	for _, dir := range []string{dirA, dirB} {
		tbl := testTable(t, 42, 15, 5, 10)
		if _, err := WritePartitioned(context.Background(), tbl, Options{
			OutputDir:     dir,
			PartitionKeys: defaultKeys(),
		}); err != nil {
			t.Fatalf("write to %s: %v", dir, err)
		}
	}

	dsA, err := ReadDataset(context.Background(), dirA)
	if err != nil {
		t.Fatalf("read first run: %v", err)
	}
	dsB, err := ReadDataset(context.Background(), dirB)
	if err != nil {
		t.Fatalf("read second run: %v", err)
	}

	if dsA.RowCount() != dsB.RowCount() {
		t.Fatalf("row counts differ: %d vs %d", dsA.RowCount(), dsB.RowCount())
	}
	for i := range dsA.Rows {
		for k, v := range dsA.Rows[i] {
			if !valueEqual(v, dsB.Rows[i][k]) {
				t.Fatalf("row %d column %s differs: %v vs %v", i, k, v, dsB.Rows[i][k])
			}
		}
	}
}

func valueEqual(a, b interface{}) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if la, ok := a.([]string); ok {
		lb, ok := b.([]string)
		if !ok || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if la[i] != lb[i] {
				return false
			}
		}
		return true
	}
	return a == b
}

func TestWritePartitioned_EmptyTable(t *testing.T) {
	_, err := WritePartitioned(context.Background(), dataset.Assemble(), Options{
		OutputDir:     t.TempDir(),
		PartitionKeys: defaultKeys(),
	})
	if err == nil {
		t.Fatalf("expected error for empty table")
	}
	if cferrors.GetCode(err) != cferrors.CodeEmptyTable {
		t.Fatalf("expected %s, got %s", cferrors.CodeEmptyTable, cferrors.GetCode(err))
	}
}

func TestWritePartitioned_InvalidKey(t *testing.T) {
	tbl := testTable(t, 1, 2, 2, 2)

	_, err := WritePartitioned(context.Background(), tbl, Options{
		OutputDir:     t.TempDir(),
		PartitionKeys: []string{"country", "no_such_column"},
	})
	if err == nil {
		t.Fatalf("expected error for unknown partition key")
	}
	if cferrors.GetCode(err) != cferrors.CodeUnsupportedKey {
		t.Fatalf("expected %s, got %s", cferrors.CodeUnsupportedKey, cferrors.GetCode(err))
	}
}

func TestWritePartitioned_NoKeys(t *testing.T) {
	tbl := testTable(t, 1, 2, 2, 2)

	_, err := WritePartitioned(context.Background(), tbl, Options{OutputDir: t.TempDir()})
	if err == nil {
		t.Fatalf("expected error for missing partition keys")
	}
}

func TestWritePartitioned_Cancelled(t *testing.T) {
	tbl := testTable(t, 1, 5, 3, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := WritePartitioned(ctx, tbl, Options{
		OutputDir:     t.TempDir(),
		PartitionKeys: defaultKeys(),
	}); err == nil {
		t.Fatalf("expected error from cancelled context")
	}
}

func TestCodec(t *testing.T) {
	for _, name := range []string{"", "zstd", "snappy", "gzip", "uncompressed"} {
		if _, err := Codec(name); err != nil {
			t.Errorf("Codec(%q) returned %v", name, err)
		}
	}

	if _, err := Codec("lz77"); err == nil {
		t.Errorf("expected error for unknown codec")
	} else if cferrors.GetCode(err) != cferrors.CodeInvalidCodec {
		t.Errorf("expected %s, got %s", cferrors.CodeInvalidCodec, cferrors.GetCode(err))
	}
}

func TestGroupByKeys_StableAndOrdered(t *testing.T) {
	rows := []types.Record{
		{User: types.User{Country: "Brasil", State: "SP"}},
		{User: types.User{Country: "Brasil", State: "BA"}},
		{User: types.User{Country: "Brasil", State: "SP"}},
		{User: types.User{Country: "Brasil", State: "AC"}},
	}

	groups, err := groupByKeys(rows, []string{"country", "state"})
	if err != nil {
		t.Fatalf("group: %v", err)
	}

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	wantOrder := []string{"AC", "BA", "SP"}
	total := 0
	for i, grp := range groups {
		if grp.values[1] != wantOrder[i] {
			t.Fatalf("group %d is %s, want %s", i, grp.values[1], wantOrder[i])
		}
		total += len(grp.rows)
	}
	if total != len(rows) {
		t.Fatalf("groups hold %d rows, want %d", total, len(rows))
	}
	if len(groups[2].rows) != 2 {
		t.Fatalf("SP group has %d rows, want 2", len(groups[2].rows))
	}
}

func TestFingerprint(t *testing.T) {
	keys := []string{"country", "state", "device"}

	a := Fingerprint(keys, []string{"Brasil", "SP", "mobile"})
	b := Fingerprint(keys, []string{"Brasil", "SP", "mobile"})
	c := Fingerprint(keys, []string{"Brasil", "SP", "desktop"})

	if a != b {
		t.Errorf("identical tuples produced different fingerprints")
	}
	if a == c {
		t.Errorf("distinct tuples produced the same fingerprint")
	}
}
