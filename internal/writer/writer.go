// Package writer materializes an assembled table as a partitioned
// parquet dataset: rows are grouped by the partition key tuple, sorted
// inside each group, and written one file per partition under nested
// key=value directories.
//
// Writes are not atomic across partitions: a failure aborts the run and
// may leave earlier partitions already written. Re-running with the
// same output root overwrites each partition's single file in place.
package writer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/spaolacci/murmur3"

	"github.com/arkilian/clickforge/internal/dataset"
	cferrors "github.com/arkilian/clickforge/internal/errors"
	"github.com/arkilian/clickforge/pkg/types"
)

// DefaultRowGroupSize bounds rows per parquet row group. It is a
// compressibility knob, not a correctness constraint.
const DefaultRowGroupSize = 128 * 1024

// PartitionFileName is the single data file written per partition.
const PartitionFileName = "part-0.parquet"

// Options configures a partitioned write.
type Options struct {
	// OutputDir is the dataset root. Created if missing.
	OutputDir string

	// PartitionKeys are string column names, outermost directory first.
	PartitionKeys []string

	// RowGroupSize is the maximum rows per row group. Zero means
	// DefaultRowGroupSize.
	RowGroupSize int64

	// Compression is the codec name: zstd, snappy, gzip, or
	// uncompressed. Empty means zstd.
	Compression string
}

// PartitionInfo describes one written partition.
type PartitionInfo struct {
	// Values are the partition key values, aligned with the options'
	// PartitionKeys order.
	Values []string `json:"values"`

	// Path is the partition file path relative to the output root.
	Path string `json:"path"`

	// Fingerprint is the murmur3 hash of the key tuple, used as the
	// partition identity in manifests and the run catalog.
	Fingerprint uint64 `json:"fingerprint"`

	RowCount  int64 `json:"row_count"`
	SizeBytes int64 `json:"size_bytes"`
	RowGroups int   `json:"row_groups"`
}

// WriteResult summarizes a completed partitioned write.
type WriteResult struct {
	Partitions []PartitionInfo `json:"partitions"`
	RowCount   int64           `json:"row_count"`
}

// Codec resolves a codec name to a parquet compression codec.
func Codec(name string) (compress.Compression, error) {
	switch name {
	case "", "zstd":
		return compress.Codecs.Zstd, nil
	case "snappy":
		return compress.Codecs.Snappy, nil
	case "gzip":
		return compress.Codecs.Gzip, nil
	case "uncompressed":
		return compress.Codecs.Uncompressed, nil
	}
	return compress.Codecs.Uncompressed,
		cferrors.Newf(cferrors.ErrCategoryConfig, cferrors.CodeInvalidCodec, "unknown compression codec %q", name)
}

// WritePartitioned groups the table by the partition key tuple, sorts
// each group by (user_id, event_name), and writes one parquet file per
// group plus a dataset manifest at the output root.
func WritePartitioned(ctx context.Context, tbl *dataset.Table, opts Options) (*WriteResult, error) {
	if tbl.NumRows() == 0 {
		return nil, cferrors.New(cferrors.ErrCategoryWrite, cferrors.CodeEmptyTable, "cannot write an empty table")
	}
	if len(opts.PartitionKeys) == 0 {
		return nil, cferrors.New(cferrors.ErrCategoryConfig, cferrors.CodeInvalidPartitionKey, "at least one partition key is required")
	}
	if opts.RowGroupSize == 0 {
		opts.RowGroupSize = DefaultRowGroupSize
	}
	if opts.RowGroupSize < 0 {
		return nil, cferrors.Newf(cferrors.ErrCategoryConfig, cferrors.CodeInvalidRange, "row_group_size must be positive, got %d", opts.RowGroupSize)
	}

	codec, err := Codec(opts.Compression)
	if err != nil {
		return nil, err
	}

	groups, err := groupByKeys(tbl.Records(), opts.PartitionKeys)
	if err != nil {
		return nil, err
	}

	schema := dataset.Schema()
	mem := memory.NewGoAllocator()

	result := &WriteResult{RowCount: int64(tbl.NumRows())}
	for _, grp := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sortGroup(grp.rows)

		info, err := writePartition(mem, schema, grp, opts, codec)
		if err != nil {
			return nil, err
		}
		result.Partitions = append(result.Partitions, *info)
	}

	if err := writeManifest(opts, result); err != nil {
		return nil, err
	}

	return result, nil
}

// group is one partition's rows keyed by its value tuple.
type group struct {
	values []string
	rows   []types.Record
}

// groupByKeys splits rows by the distinct value tuples of the partition
// keys. Grouping is stable: every row with the same tuple lands in
// exactly one group, and groups come back in lexicographic tuple order
// so directory creation order is reproducible.
func groupByKeys(rows []types.Record, keys []string) ([]*group, error) {
	byTuple := make(map[string]*group)
	for i := range rows {
		values := make([]string, len(keys))
		for k, key := range keys {
			v, ok := rows[i].StringField(key)
			if !ok {
				return nil, cferrors.Newf(cferrors.ErrCategoryWrite, cferrors.CodeUnsupportedKey,
					"partition key %q is not a string column of the dataset schema", key)
			}
			values[k] = v
		}

		tuple := strings.Join(values, "\x00")
		grp, ok := byTuple[tuple]
		if !ok {
			grp = &group{values: values}
			byTuple[tuple] = grp
		}
		grp.rows = append(grp.rows, rows[i])
	}

	groups := make([]*group, 0, len(byTuple))
	for _, grp := range byTuple {
		groups = append(groups, grp)
	}
	sort.Slice(groups, func(i, j int) bool {
		for k := range groups[i].values {
			if groups[i].values[k] != groups[j].values[k] {
				return groups[i].values[k] < groups[j].values[k]
			}
		}
		return false
	})

	return groups, nil
}

// sortGroup orders a partition's rows by the fixed secondary key:
// user_id, then event_name. The sort is stable so equal rows keep
// generation order and output stays byte-for-byte comparable.
func sortGroup(rows []types.Record) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].UserID != rows[j].UserID {
			return rows[i].UserID < rows[j].UserID
		}
		return rows[i].EventName < rows[j].EventName
	})
}

// writePartition materializes one partition group as key=value nested
// directories holding a single parquet file.
func writePartition(mem memory.Allocator, schema *arrow.Schema, grp *group, opts Options, codec compress.Compression) (*PartitionInfo, error) {
	relDir := partitionDir(opts.PartitionKeys, grp.values)
	dir := filepath.Join(opts.OutputDir, relDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, cferrors.NewWriteError(cferrors.CodeDirCreation,
			fmt.Sprintf("failed to create partition directory %s", dir), err)
	}

	path := filepath.Join(dir, PartitionFileName)
	f, err := os.Create(path)
	if err != nil {
		return nil, cferrors.NewWriteError(cferrors.CodeFileWrite,
			fmt.Sprintf("failed to create partition file %s", path), err)
	}

	props := parquet.NewWriterProperties(
		parquet.WithCompression(codec),
		parquet.WithMaxRowGroupLength(opts.RowGroupSize),
	)
	arrProps := pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(mem))

	w, err := pqarrow.NewFileWriter(schema, f, props, arrProps)
	if err != nil {
		f.Close()
		return nil, cferrors.NewWriteError(cferrors.CodeFileWrite,
			fmt.Sprintf("failed to create parquet writer for %s", path), err)
	}

	rec := dataset.NewRecordBatch(mem, schema, grp.rows)
	writeErr := w.Write(rec)
	rec.Release()
	if writeErr != nil {
		w.Close()
		return nil, cferrors.NewWriteError(cferrors.CodeFileWrite,
			fmt.Sprintf("failed to write partition %s", path), writeErr)
	}

	// Closing the parquet writer also closes the underlying file.
	if err := w.Close(); err != nil {
		return nil, cferrors.NewWriteError(cferrors.CodeFileWrite,
			fmt.Sprintf("failed to finalize partition %s", path), err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, cferrors.NewWriteError(cferrors.CodeFileWrite,
			fmt.Sprintf("failed to stat partition %s", path), err)
	}

	n := int64(len(grp.rows))
	return &PartitionInfo{
		Values:      grp.values,
		Path:        filepath.ToSlash(filepath.Join(relDir, PartitionFileName)),
		Fingerprint: Fingerprint(opts.PartitionKeys, grp.values),
		RowCount:    n,
		SizeBytes:   stat.Size(),
		RowGroups:   int((n + opts.RowGroupSize - 1) / opts.RowGroupSize),
	}, nil
}

// partitionDir builds the nested key=value directory path, one level
// per partition key in key order.
func partitionDir(keys, values []string) string {
	parts := make([]string, len(keys))
	for i := range keys {
		parts[i] = keys[i] + "=" + values[i]
	}
	return filepath.Join(parts...)
}

// Fingerprint returns a stable 64-bit identity for a partition key
// tuple.
func Fingerprint(keys, values []string) uint64 {
	h := murmur3.New64()
	for i := range keys {
		h.Write([]byte(keys[i]))
		h.Write([]byte{'='})
		h.Write([]byte(values[i]))
		h.Write([]byte{'/'})
	}
	return h.Sum64()
}
