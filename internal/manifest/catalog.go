// Package manifest manages the run catalog: a SQLite database recording
// every generation run, its parameters, and what it produced on disk.
package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	cferrors "github.com/arkilian/clickforge/internal/errors"
)

// Run describes one completed generation run.
type Run struct {
	RunID          string
	Seed           int64
	NumUsers       int
	MinEvents      int
	MaxEvents      int
	RowCount       int64
	PartitionCount int
	RowGroupSize   int64
	Compression    string
	OutputDir      string
	GenerateMillis int64
	WriteMillis    int64
	CreatedAt      time.Time
}

// Partition describes one partition produced by a run.
type Partition struct {
	RunID       string
	Fingerprint uint64
	Path        string
	RowCount    int64
	SizeBytes   int64
	RowGroups   int
}

// Catalog manages run metadata in a SQLite database.
type Catalog struct {
	db     *sql.DB
	dbPath string
}

// NewCatalog opens (or creates) the run catalog database.
func NewCatalog(dbPath string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, cferrors.NewCatalogError(cferrors.CodeRunInsert, "failed to open run catalog", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	c := &Catalog{db: db, dbPath: dbPath}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return c, nil
}

// initSchema creates the catalog tables if missing.
func (c *Catalog) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			num_users INTEGER NOT NULL,
			min_events INTEGER NOT NULL,
			max_events INTEGER NOT NULL,
			row_count INTEGER NOT NULL,
			partition_count INTEGER NOT NULL,
			row_group_size INTEGER NOT NULL,
			compression TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			generate_millis INTEGER NOT NULL,
			write_millis INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_partitions (
			run_id TEXT NOT NULL,
			fingerprint INTEGER NOT NULL,
			path TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			size_bytes INTEGER NOT NULL,
			row_groups INTEGER NOT NULL,
			PRIMARY KEY (run_id, fingerprint)
		) WITHOUT ROWID`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := c.db.Exec(stmt); err != nil {
			return cferrors.NewCatalogError(cferrors.CodeRunInsert, "failed to initialize run catalog schema", err)
		}
	}

	return nil
}

// RegisterRun records a completed run and its partitions atomically.
func (c *Catalog) RegisterRun(ctx context.Context, run *Run, partitions []Partition) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return cferrors.NewCatalogError(cferrors.CodeRunInsert, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			run_id, seed, num_users, min_events, max_events,
			row_count, partition_count, row_group_size, compression,
			output_dir, generate_millis, write_millis, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Seed, run.NumUsers, run.MinEvents, run.MaxEvents,
		run.RowCount, run.PartitionCount, run.RowGroupSize, run.Compression,
		run.OutputDir, run.GenerateMillis, run.WriteMillis, run.CreatedAt.UnixMilli())
	if err != nil {
		return cferrors.NewCatalogError(cferrors.CodeRunInsert,
			fmt.Sprintf("failed to insert run %s", run.RunID), err)
	}

	for _, p := range partitions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_partitions (run_id, fingerprint, path, row_count, size_bytes, row_groups)
			VALUES (?, ?, ?, ?, ?, ?)`,
			run.RunID, int64(p.Fingerprint), p.Path, p.RowCount, p.SizeBytes, p.RowGroups)
		if err != nil {
			return cferrors.NewCatalogError(cferrors.CodeRunInsert,
				fmt.Sprintf("failed to insert partition %s for run %s", p.Path, run.RunID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return cferrors.NewCatalogError(cferrors.CodeRunInsert, "failed to commit run", err)
	}

	return nil
}

// ListRuns returns all recorded runs, newest first.
func (c *Catalog) ListRuns(ctx context.Context) ([]*Run, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT run_id, seed, num_users, min_events, max_events,
		       row_count, partition_count, row_group_size, compression,
		       output_dir, generate_millis, write_millis, created_at
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, cferrors.NewCatalogError(cferrors.CodeRunQuery, "failed to query runs", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		var createdAt int64
		if err := rows.Scan(
			&r.RunID, &r.Seed, &r.NumUsers, &r.MinEvents, &r.MaxEvents,
			&r.RowCount, &r.PartitionCount, &r.RowGroupSize, &r.Compression,
			&r.OutputDir, &r.GenerateMillis, &r.WriteMillis, &createdAt); err != nil {
			return nil, cferrors.NewCatalogError(cferrors.CodeRunQuery, "failed to scan run", err)
		}
		r.CreatedAt = time.UnixMilli(createdAt)
		runs = append(runs, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, cferrors.NewCatalogError(cferrors.CodeRunQuery, "failed to iterate runs", err)
	}

	return runs, nil
}

// GetRunPartitions returns the partitions recorded for a run, ordered
// by path.
func (c *Catalog) GetRunPartitions(ctx context.Context, runID string) ([]Partition, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT run_id, fingerprint, path, row_count, size_bytes, row_groups
		FROM run_partitions WHERE run_id = ? ORDER BY path`, runID)
	if err != nil {
		return nil, cferrors.NewCatalogError(cferrors.CodeRunQuery,
			fmt.Sprintf("failed to query partitions for run %s", runID), err)
	}
	defer rows.Close()

	var partitions []Partition
	for rows.Next() {
		var p Partition
		var fp int64
		if err := rows.Scan(&p.RunID, &fp, &p.Path, &p.RowCount, &p.SizeBytes, &p.RowGroups); err != nil {
			return nil, cferrors.NewCatalogError(cferrors.CodeRunQuery, "failed to scan partition", err)
		}
		p.Fingerprint = uint64(fp)
		partitions = append(partitions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, cferrors.NewCatalogError(cferrors.CodeRunQuery, "failed to iterate partitions", err)
	}

	return partitions, nil
}

// Close closes the catalog database.
func (c *Catalog) Close() error {
	return c.db.Close()
}
