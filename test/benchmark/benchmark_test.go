// Package benchmark measures generation and write throughput of the
// clickforge pipeline.
package benchmark

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/arkilian/clickforge/internal/catalog"
	"github.com/arkilian/clickforge/internal/dataset"
	"github.com/arkilian/clickforge/internal/gen"
	"github.com/arkilian/clickforge/internal/writer"
	"github.com/arkilian/clickforge/pkg/types"
)

var benchNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func benchRecords(b *testing.B, users int) []types.Record {
	b.Helper()
	g := gen.New(catalog.Default(), rand.New(rand.NewSource(42)), benchNow)
	records, err := g.Dataset(gen.Params{NumUsers: users, MinEvents: 5, MaxEvents: 15})
	if err != nil {
		b.Fatalf("generate: %v", err)
	}
	return records
}

func BenchmarkGenerateDataset(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g := gen.New(catalog.Default(), rand.New(rand.NewSource(42)), benchNow)
		records, err := g.Dataset(gen.Params{NumUsers: 1000, MinEvents: 5, MaxEvents: 15})
		if err != nil {
			b.Fatalf("generate: %v", err)
		}
		if len(records) == 0 {
			b.Fatal("empty dataset")
		}
	}
}

func BenchmarkWritePartitioned(b *testing.B) {
	records := benchRecords(b, 1000)
	tbl := dataset.Assemble(records)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := writer.WritePartitioned(ctx, tbl, writer.Options{
			OutputDir:     b.TempDir(),
			PartitionKeys: []string{"country", "state", "device"},
		})
		if err != nil {
			b.Fatalf("write: %v", err)
		}
	}
}

func BenchmarkWritePartitioned_Codecs(b *testing.B) {
	records := benchRecords(b, 500)
	tbl := dataset.Assemble(records)
	ctx := context.Background()

	for _, codec := range []string{"zstd", "snappy", "gzip", "uncompressed"} {
		b.Run(codec, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, err := writer.WritePartitioned(ctx, tbl, writer.Options{
					OutputDir:     b.TempDir(),
					PartitionKeys: []string{"country", "state", "device"},
					Compression:   codec,
				})
				if err != nil {
					b.Fatalf("write: %v", err)
				}
			}
		})
	}
}

func BenchmarkReadDataset(b *testing.B) {
	records := benchRecords(b, 500)
	dir := b.TempDir()
	if _, err := writer.WritePartitioned(context.Background(), dataset.Assemble(records), writer.Options{
		OutputDir:     dir,
		PartitionKeys: []string{"country", "state", "device"},
	}); err != nil {
		b.Fatalf("write: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ds, err := writer.ReadDataset(context.Background(), dir)
		if err != nil {
			b.Fatalf("read: %v", err)
		}
		if ds.RowCount() != len(records) {
			b.Fatalf("read %d rows, want %d", ds.RowCount(), len(records))
		}
	}
}
