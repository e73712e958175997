// Package config provides unified configuration for the clickforge
// binaries. Configuration resolves in order: defaults, optional config
// file, environment variables, then command-line flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arkilian/clickforge/pkg/types"
)

// Config holds the configuration for one generation run.
type Config struct {
	// NumUsers is the number of users (one session each) to generate.
	NumUsers int `json:"num_users" yaml:"num_users"`

	// MinEvents and MaxEvents bound the uniform per-user event count.
	MinEvents int `json:"min_events" yaml:"min_events"`
	MaxEvents int `json:"max_events" yaml:"max_events"`

	// OutputDir is the dataset root for the partition tree.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// PartitionKeys are the partition columns, outermost first.
	PartitionKeys []string `json:"partition_keys" yaml:"partition_keys"`

	// RowGroupSize is the maximum rows per parquet row group.
	RowGroupSize int64 `json:"row_group_size" yaml:"row_group_size"`

	// Compression is the parquet codec: zstd, snappy, gzip, uncompressed.
	Compression string `json:"compression" yaml:"compression"`

	// Seed is the random seed. Negative means derive from the clock.
	Seed int64 `json:"seed" yaml:"seed"`

	// CatalogPath is the run catalog database path. Empty disables run
	// recording.
	CatalogPath string `json:"catalog_path" yaml:"catalog_path"`

	// Storage configures the optional post-write dataset sync.
	Storage StorageConfig `json:"storage" yaml:"storage"`
}

// StorageConfig holds object storage configuration.
type StorageConfig struct {
	// Type is the storage type: none, local, s3.
	Type string `json:"type" yaml:"type"`

	// Path is the local storage path (for local type).
	Path string `json:"path" yaml:"path"`

	// Prefix is the object path prefix for uploaded datasets.
	Prefix string `json:"prefix" yaml:"prefix"`

	// S3 configuration (for s3 type).
	S3 S3Config `json:"s3" yaml:"s3"`
}

// S3Config holds S3 storage configuration.
type S3Config struct {
	Bucket       string `json:"bucket" yaml:"bucket"`
	Region       string `json:"region" yaml:"region"`
	Endpoint     string `json:"endpoint" yaml:"endpoint"`
	UsePathStyle bool   `json:"use_path_style" yaml:"use_path_style"`
}

// DefaultConfig returns the default configuration: the original
// benchmark dataset shape.
func DefaultConfig() *Config {
	return &Config{
		NumUsers:      10000,
		MinEvents:     5,
		MaxEvents:     15,
		OutputDir:     "./data/clickstream",
		PartitionKeys: []string{"country", "state", "device"},
		RowGroupSize:  128 * 1024,
		Compression:   "zstd",
		Seed:          -1,
		Storage: StorageConfig{
			Type:   "none",
			Prefix: "datasets/clickstream",
		},
	}
}

// Resolve fills in derived defaults.
func (c *Config) Resolve() {
	if c.Storage.Type == "local" && c.Storage.Path == "" {
		c.Storage.Path = filepath.Join(filepath.Dir(c.OutputDir), "storage")
	}
}

// Validate validates the configuration. Invalid parameters must be
// caught here, before any generation starts.
func (c *Config) Validate() error {
	if c.NumUsers <= 0 {
		return fmt.Errorf("num_users must be positive, got %d", c.NumUsers)
	}
	if c.MinEvents <= 0 || c.MaxEvents <= 0 {
		return fmt.Errorf("min_events and max_events must be positive, got %d and %d", c.MinEvents, c.MaxEvents)
	}
	if c.MinEvents > c.MaxEvents {
		return fmt.Errorf("min_events (%d) must not exceed max_events (%d)", c.MinEvents, c.MaxEvents)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.RowGroupSize <= 0 {
		return fmt.Errorf("row_group_size must be positive, got %d", c.RowGroupSize)
	}

	if len(c.PartitionKeys) == 0 {
		return fmt.Errorf("at least one partition key is required")
	}
	probe := &types.Record{}
	for _, key := range c.PartitionKeys {
		if _, ok := probe.StringField(key); !ok {
			return fmt.Errorf("partition key %q is not a string column of the dataset schema", key)
		}
	}

	switch c.Compression {
	case "", "zstd", "snappy", "gzip", "uncompressed":
	default:
		return fmt.Errorf("invalid compression codec: %s (must be zstd, snappy, gzip, or uncompressed)", c.Compression)
	}

	switch c.Storage.Type {
	case "", "none", "local", "s3":
	default:
		return fmt.Errorf("invalid storage type: %s (must be none, local, or s3)", c.Storage.Type)
	}
	if c.Storage.Type == "s3" && c.Storage.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required when storage type is s3")
	}

	return nil
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv overrides configuration from environment variables.
// Environment variables use the CLICKFORGE_ prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("CLICKFORGE_NUM_USERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.NumUsers = n
		}
	}
	if v := os.Getenv("CLICKFORGE_MIN_EVENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinEvents = n
		}
	}
	if v := os.Getenv("CLICKFORGE_MAX_EVENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxEvents = n
		}
	}
	if v := os.Getenv("CLICKFORGE_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("CLICKFORGE_PARTITION_KEYS"); v != "" {
		cfg.PartitionKeys = strings.Split(v, ",")
	}
	if v := os.Getenv("CLICKFORGE_ROW_GROUP_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.RowGroupSize = n
		}
	}
	if v := os.Getenv("CLICKFORGE_COMPRESSION"); v != "" {
		cfg.Compression = v
	}
	if v := os.Getenv("CLICKFORGE_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("CLICKFORGE_CATALOG_PATH"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("CLICKFORGE_STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("CLICKFORGE_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("CLICKFORGE_STORAGE_PREFIX"); v != "" {
		cfg.Storage.Prefix = v
	}
	if v := os.Getenv("CLICKFORGE_S3_BUCKET"); v != "" {
		cfg.Storage.S3.Bucket = v
	}
	if v := os.Getenv("CLICKFORGE_S3_REGION"); v != "" {
		cfg.Storage.S3.Region = v
	}
	if v := os.Getenv("CLICKFORGE_S3_ENDPOINT"); v != "" {
		cfg.Storage.S3.Endpoint = v
	}
}
