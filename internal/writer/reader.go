package writer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	cferrors "github.com/arkilian/clickforge/internal/errors"
)

// Row is one decoded dataset row, keyed by column name. Values are
// string, int64, float64, bool, time.Time, or []string depending on the
// column type; nil for nulls.
type Row map[string]interface{}

// Dataset is the logical union of every partition under an output root.
type Dataset struct {
	// Files are the partition file paths that were read, in walk order.
	Files []string

	// Rows are all rows across all partitions, file-major.
	Rows []Row

	// Schema is the Arrow schema of the first partition read.
	Schema *arrow.Schema
}

// RowCount returns the total number of rows read.
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// GroupCounts groups the rows by the given string columns and returns
// the cardinality per joined key tuple ("v1/v2/.../vN").
func (d *Dataset) GroupCounts(keys []string) map[string]int {
	counts := make(map[string]int)
	for _, row := range d.Rows {
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprint(row[k])
		}
		counts[strings.Join(parts, "/")]++
	}
	return counts
}

// ReadDataset recursively walks an output root and reads the union of
// all partition files as one logical dataset. Partition key columns are
// reconstructed from the directory path convention for any column not
// embedded in the file itself.
func ReadDataset(ctx context.Context, outputDir string) (*Dataset, error) {
	var paths []string
	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".parquet") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, cferrors.NewReadError(cferrors.CodeFileRead,
			fmt.Sprintf("failed to walk dataset root %s", outputDir), err)
	}
	if len(paths) == 0 {
		return nil, cferrors.Newf(cferrors.ErrCategoryRead, cferrors.CodeNoPartitions,
			"no partition files under %s", outputDir)
	}

	ds := &Dataset{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, schema, err := readPartitionFile(ctx, path)
		if err != nil {
			return nil, err
		}
		if ds.Schema == nil {
			ds.Schema = schema
		}

		rel, err := filepath.Rel(outputDir, path)
		if err != nil {
			rel = path
		}
		for _, row := range rows {
			for k, v := range PartitionValues(rel) {
				if _, ok := row[k]; !ok {
					row[k] = v
				}
			}
		}

		ds.Files = append(ds.Files, path)
		ds.Rows = append(ds.Rows, rows...)
	}

	return ds, nil
}

// PartitionValues parses the key=value directory segments of a
// partition file path relative to the dataset root.
func PartitionValues(relPath string) map[string]string {
	values := make(map[string]string)
	for _, seg := range strings.Split(filepath.ToSlash(relPath), "/") {
		if k, v, ok := strings.Cut(seg, "="); ok {
			values[k] = v
		}
	}
	return values
}

// RowGroupCount returns the number of parquet row groups in a partition
// file.
func RowGroupCount(path string) (int, error) {
	pf, err := file.OpenParquetFile(path, false)
	if err != nil {
		return 0, cferrors.NewReadError(cferrors.CodeFileRead,
			fmt.Sprintf("failed to open %s", path), err)
	}
	defer pf.Close()
	return pf.NumRowGroups(), nil
}

// readPartitionFile decodes one parquet file into rows.
func readPartitionFile(ctx context.Context, path string) ([]Row, *arrow.Schema, error) {
	pf, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, nil, cferrors.NewReadError(cferrors.CodeFileRead,
			fmt.Sprintf("failed to open %s", path), err)
	}
	defer pf.Close()

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, nil, cferrors.NewReadError(cferrors.CodeFileRead,
			fmt.Sprintf("failed to create reader for %s", path), err)
	}

	tbl, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, nil, cferrors.NewReadError(cferrors.CodeFileRead,
			fmt.Sprintf("failed to read table from %s", path), err)
	}
	defer tbl.Release()

	rows := make([]Row, tbl.NumRows())
	for i := range rows {
		rows[i] = make(Row, tbl.NumCols())
	}

	for c := 0; c < int(tbl.NumCols()); c++ {
		name := tbl.Schema().Field(c).Name
		idx := 0
		for _, chunk := range tbl.Column(c).Data().Chunks() {
			for i := 0; i < chunk.Len(); i++ {
				rows[idx][name] = decodeValue(chunk, i)
				idx++
			}
		}
	}

	return rows, tbl.Schema(), nil
}

// decodeValue converts one Arrow array element to a Go value.
func decodeValue(arr arrow.Array, i int) interface{} {
	if arr.IsNull(i) {
		return nil
	}

	switch a := arr.(type) {
	case *array.String:
		return a.Value(i)
	case *array.Int64:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.Date32:
		return a.Value(i).ToTime()
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit)
	case *array.List:
		start, end := a.ValueOffsets(i)
		values := a.ListValues().(*array.String)
		out := make([]string, 0, end-start)
		for j := start; j < end; j++ {
			out = append(out, values.Value(int(j)))
		}
		return out
	}

	return fmt.Sprint(arr)
}
