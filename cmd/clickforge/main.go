// Package main implements the clickforge generator binary: it
// synthesizes the clickstream dataset and writes it as a partitioned
// parquet tree.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/arkilian/clickforge/internal/catalog"
	"github.com/arkilian/clickforge/internal/config"
	"github.com/arkilian/clickforge/internal/dataset"
	"github.com/arkilian/clickforge/internal/gen"
	"github.com/arkilian/clickforge/internal/manifest"
	"github.com/arkilian/clickforge/internal/storage"
	"github.com/arkilian/clickforge/internal/writer"
)

func main() {
	// Best-effort .env bootstrap before reading the environment.
	_ = godotenv.Load()

	var (
		configPath    = flag.String("config", "", "path to a YAML or JSON config file")
		users         = flag.Int("users", 0, "number of users to generate")
		minEvents     = flag.Int("min-events", 0, "minimum events per user")
		maxEvents     = flag.Int("max-events", 0, "maximum events per user")
		out           = flag.String("out", "", "output directory for the partitioned dataset")
		keys          = flag.String("partition-keys", "", "comma-separated partition columns, outermost first")
		rowGroupSize  = flag.Int64("row-group-size", 0, "maximum rows per parquet row group")
		compression   = flag.String("compression", "", "parquet codec: zstd, snappy, gzip, uncompressed")
		seed          = flag.Int64("seed", -1, "random seed (negative derives from the clock)")
		catalogPath   = flag.String("catalog", "", "run catalog database path (empty disables)")
		upload        = flag.Bool("upload", false, "sync the written dataset to configured object storage")
	)
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFromFile(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	config.LoadFromEnv(cfg)

	// Flags override file and environment.
	if *users > 0 {
		cfg.NumUsers = *users
	}
	if *minEvents > 0 {
		cfg.MinEvents = *minEvents
	}
	if *maxEvents > 0 {
		cfg.MaxEvents = *maxEvents
	}
	if *out != "" {
		cfg.OutputDir = *out
	}
	if *keys != "" {
		cfg.PartitionKeys = strings.Split(*keys, ",")
	}
	if *rowGroupSize > 0 {
		cfg.RowGroupSize = *rowGroupSize
	}
	if *compression != "" {
		cfg.Compression = *compression
	}
	if *seed >= 0 {
		cfg.Seed = *seed
	}
	if *catalogPath != "" {
		cfg.CatalogPath = *catalogPath
	}

	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	seedValue := cfg.Seed
	if seedValue < 0 {
		seedValue = time.Now().UnixNano()
	}

	log.Printf("Starting clickforge run: users=%d events=[%d,%d] seed=%d out=%s",
		cfg.NumUsers, cfg.MinEvents, cfg.MaxEvents, seedValue, cfg.OutputDir)

	ctx := context.Background()
	rnd := rand.New(rand.NewSource(seedValue))
	generator := gen.New(catalog.Default(), rnd, time.Now())

	startGen := time.Now()
	records, err := generator.Dataset(gen.Params{
		NumUsers:  cfg.NumUsers,
		MinEvents: cfg.MinEvents,
		MaxEvents: cfg.MaxEvents,
	})
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
	tbl := dataset.Assemble(records)
	genElapsed := time.Since(startGen)
	log.Printf("Generated %d event records in %.2fs", tbl.NumRows(), genElapsed.Seconds())

	startWrite := time.Now()
	result, err := writer.WritePartitioned(ctx, tbl, writer.Options{
		OutputDir:     cfg.OutputDir,
		PartitionKeys: cfg.PartitionKeys,
		RowGroupSize:  cfg.RowGroupSize,
		Compression:   cfg.Compression,
	})
	if err != nil {
		log.Fatalf("Partitioned write failed: %v", err)
	}
	writeElapsed := time.Since(startWrite)
	log.Printf("Wrote %d rows into %d partitions under %s in %.2fs",
		result.RowCount, len(result.Partitions), cfg.OutputDir, writeElapsed.Seconds())

	if cfg.CatalogPath != "" {
		if err := registerRun(ctx, cfg, seedValue, result, genElapsed, writeElapsed); err != nil {
			log.Fatalf("Failed to record run: %v", err)
		}
	}

	if *upload {
		if err := syncDataset(ctx, cfg); err != nil {
			log.Fatalf("Dataset sync failed: %v", err)
		}
	}
}

// registerRun records the completed run and its partitions in the run
// catalog.
func registerRun(ctx context.Context, cfg *config.Config, seed int64, result *writer.WriteResult, genElapsed, writeElapsed time.Duration) error {
	cat, err := manifest.NewCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	defer cat.Close()

	run := &manifest.Run{
		RunID:          uuid.New().String(),
		Seed:           seed,
		NumUsers:       cfg.NumUsers,
		MinEvents:      cfg.MinEvents,
		MaxEvents:      cfg.MaxEvents,
		RowCount:       result.RowCount,
		PartitionCount: len(result.Partitions),
		RowGroupSize:   cfg.RowGroupSize,
		Compression:    cfg.Compression,
		OutputDir:      cfg.OutputDir,
		GenerateMillis: genElapsed.Milliseconds(),
		WriteMillis:    writeElapsed.Milliseconds(),
		CreatedAt:      time.Now(),
	}

	partitions := make([]manifest.Partition, 0, len(result.Partitions))
	for _, p := range result.Partitions {
		partitions = append(partitions, manifest.Partition{
			RunID:       run.RunID,
			Fingerprint: p.Fingerprint,
			Path:        p.Path,
			RowCount:    p.RowCount,
			SizeBytes:   p.SizeBytes,
			RowGroups:   p.RowGroups,
		})
	}

	if err := cat.RegisterRun(ctx, run, partitions); err != nil {
		return err
	}
	log.Printf("Recorded run %s in catalog %s", run.RunID, cfg.CatalogPath)
	return nil
}

// syncDataset uploads the written partition tree to object storage.
func syncDataset(ctx context.Context, cfg *config.Config) error {
	var store storage.ObjectStorage
	var err error

	switch cfg.Storage.Type {
	case "local":
		store, err = storage.NewLocalStorage(cfg.Storage.Path)
	case "s3":
		store, err = storage.NewS3Storage(ctx, cfg.Storage.S3.Bucket, storage.S3Config{
			Region:       cfg.Storage.S3.Region,
			Endpoint:     cfg.Storage.S3.Endpoint,
			UsePathStyle: cfg.Storage.S3.UsePathStyle,
		})
	default:
		log.Printf("Storage type is %q, skipping dataset sync", cfg.Storage.Type)
		return nil
	}
	if err != nil {
		return err
	}

	uploaded, err := storage.SyncDir(ctx, store, cfg.OutputDir, cfg.Storage.Prefix)
	if err != nil {
		return err
	}
	log.Printf("Synced %d objects to %s storage under %s", len(uploaded), cfg.Storage.Type, cfg.Storage.Prefix)
	return nil
}
