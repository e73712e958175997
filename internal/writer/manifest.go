package writer

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/golang/snappy"

	cferrors "github.com/arkilian/clickforge/internal/errors"
)

// ManifestFileName is the snappy-compressed dataset manifest written at
// the output root alongside the partition tree.
const ManifestFileName = "_manifest.snappy"

// Manifest records what a partitioned write produced. Its content is a
// pure function of the written data, so fixed-seed runs emit identical
// manifests.
type Manifest struct {
	PartitionKeys []string        `json:"partition_keys"`
	RowGroupSize  int64           `json:"row_group_size"`
	Compression   string          `json:"compression"`
	RowCount      int64           `json:"row_count"`
	Partitions    []PartitionInfo `json:"partitions"`
}

// writeManifest serializes the write result as snappy-compressed JSON.
func writeManifest(opts Options, result *WriteResult) error {
	compression := opts.Compression
	if compression == "" {
		compression = "zstd"
	}

	m := Manifest{
		PartitionKeys: opts.PartitionKeys,
		RowGroupSize:  opts.RowGroupSize,
		Compression:   compression,
		RowCount:      result.RowCount,
		Partitions:    result.Partitions,
	}

	data, err := json.Marshal(&m)
	if err != nil {
		return cferrors.NewWriteError(cferrors.CodeManifestWrite, "failed to encode dataset manifest", err)
	}

	path := filepath.Join(opts.OutputDir, ManifestFileName)
	if err := os.WriteFile(path, snappy.Encode(nil, data), 0644); err != nil {
		return cferrors.NewWriteError(cferrors.CodeManifestWrite, "failed to write dataset manifest", err)
	}

	return nil
}

// ReadManifest loads the dataset manifest from an output root.
func ReadManifest(outputDir string) (*Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(outputDir, ManifestFileName))
	if err != nil {
		return nil, cferrors.NewReadError(cferrors.CodeFileRead, "failed to read dataset manifest", err)
	}

	data, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, cferrors.NewReadError(cferrors.CodeManifestDecode, "failed to decompress dataset manifest", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, cferrors.NewReadError(cferrors.CodeManifestDecode, "failed to decode dataset manifest", err)
	}

	return &m, nil
}
