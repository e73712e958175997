// Package main implements the clickforge-export binary: the read-back
// collaborator that opens a partitioned dataset, reports per-partition
// row counts, and optionally exports the full table to CSV.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/arkilian/clickforge/internal/manifest"
	"github.com/arkilian/clickforge/internal/writer"
)

func main() {
	_ = godotenv.Load()

	var (
		in          = flag.String("in", "./data/clickstream", "dataset root to read")
		csvPath     = flag.String("csv", "", "export the full dataset to this CSV file")
		catalogPath = flag.String("catalog", "", "run catalog database path")
		listRuns    = flag.Bool("list-runs", false, "list recorded runs from the catalog and exit")
	)
	flag.Parse()

	ctx := context.Background()

	if *listRuns {
		if *catalogPath == "" {
			log.Fatalf("-list-runs requires -catalog")
		}
		if err := printRuns(ctx, *catalogPath); err != nil {
			log.Fatalf("Failed to list runs: %v", err)
		}
		return
	}

	ds, err := writer.ReadDataset(ctx, *in)
	if err != nil {
		log.Fatalf("Failed to read dataset: %v", err)
	}
	log.Printf("Read %d rows from %d partition files under %s", ds.RowCount(), len(ds.Files), *in)

	keys := []string{"country", "state", "device"}
	if m, err := writer.ReadManifest(*in); err == nil {
		keys = m.PartitionKeys
		verifyManifest(m, ds, keys)
	}

	counts := ds.GroupCounts(keys)
	tuples := make([]string, 0, len(counts))
	for tuple := range counts {
		tuples = append(tuples, tuple)
	}
	sort.Strings(tuples)
	for _, tuple := range tuples {
		log.Printf("  %s: %d rows", tuple, counts[tuple])
	}

	if *csvPath != "" {
		if err := exportCSV(ds, *csvPath); err != nil {
			log.Fatalf("CSV export failed: %v", err)
		}
		log.Printf("Exported %d rows to %s", ds.RowCount(), *csvPath)
	}
}

// verifyManifest cross-checks the dataset manifest against what was
// actually read back.
func verifyManifest(m *writer.Manifest, ds *writer.Dataset, keys []string) {
	if int64(ds.RowCount()) != m.RowCount {
		log.Fatalf("Manifest mismatch: manifest has %d rows, read %d", m.RowCount, ds.RowCount())
	}

	counts := ds.GroupCounts(keys)
	for _, p := range m.Partitions {
		tuple := strings.Join(p.Values, "/")
		if int64(counts[tuple]) != p.RowCount {
			log.Fatalf("Manifest mismatch for partition %s: manifest has %d rows, read %d",
				tuple, p.RowCount, counts[tuple])
		}
	}
}

// printRuns lists recorded runs, newest first.
func printRuns(ctx context.Context, catalogPath string) error {
	cat, err := manifest.NewCatalog(catalogPath)
	if err != nil {
		return err
	}
	defer cat.Close()

	runs, err := cat.ListRuns(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		log.Printf("No runs recorded")
		return nil
	}

	for _, r := range runs {
		log.Printf("%s seed=%d users=%d events=[%d,%d] rows=%d partitions=%d out=%s at=%s",
			r.RunID, r.Seed, r.NumUsers, r.MinEvents, r.MaxEvents,
			r.RowCount, r.PartitionCount, r.OutputDir,
			r.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

// exportCSV writes the full dataset to one CSV file with the schema's
// column order.
func exportCSV(ds *writer.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, ds.Schema.NumFields())
	for i := 0; i < ds.Schema.NumFields(); i++ {
		header[i] = ds.Schema.Field(i).Name
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, r := range ds.Rows {
		for i, name := range header {
			row[i] = formatValue(r[name])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// formatValue renders a decoded dataset value as a CSV cell.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case []string:
		return strings.Join(val, ";")
	}
	return fmt.Sprint(v)
}
