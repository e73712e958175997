// Package storage provides object storage abstractions used to sync a
// written dataset to a durable location after generation.
package storage

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
)

// Common errors for storage operations.
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrUploadFailed   = errors.New("upload failed")
)

// ObjectStorage abstracts object storage operations. Implementations
// include S3 and local filesystem for testing.
type ObjectStorage interface {
	// Upload uploads a local file to objectPath in storage.
	Upload(ctx context.Context, localPath, objectPath string) error

	// Exists checks if an object exists in storage.
	Exists(ctx context.Context, objectPath string) (bool, error)

	// ListObjects returns all object paths under the given prefix.
	ListObjects(ctx context.Context, prefix string) ([]string, error)
}

// SyncDir uploads every file under localRoot to storage, preserving the
// relative path layout under prefix. Returns the uploaded object paths.
func SyncDir(ctx context.Context, store ObjectStorage, localRoot, prefix string) ([]string, error) {
	var uploaded []string

	err := filepath.WalkDir(localRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(localRoot, path)
		if err != nil {
			return err
		}

		objectPath := filepath.ToSlash(filepath.Join(prefix, rel))
		if err := store.Upload(ctx, path, objectPath); err != nil {
			return err
		}
		uploaded = append(uploaded, objectPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uploaded, nil
}
