// Copyright (c) 2026 Socio. All rights reserved.

package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/socioapp/socio/pkg/uuid"
)

// DiskStore implements [Store] on the local filesystem.
//
// References are opaque file names scoped to the configured root directory,
// so a reference read back from the database can never escape the upload root.
type DiskStore struct {
	root   string
	logger *slog.Logger
}

// NewDiskStore creates the upload root if missing and returns a ready store.
func NewDiskStore(root string, logger *slog.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create upload dir %s: %w", root, err)
	}
	return &DiskStore{root: root, logger: logger}, nil
}

// Upload writes the bytes under a fresh UUIDv7 name and returns that name.
func (store *DiskStore) Upload(context context.Context, data []byte, contentType string) (string, error) {
	reference := uuid.New()

	path := filepath.Join(store.root, reference)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: failed to write attachment: %w", err)
	}

	store.logger.Info("attachment_stored",
		slog.String("reference", reference),
		slog.Int("bytes", len(data)),
		slog.String("kind", string(KindFromContentType(contentType))),
	)

	return reference, nil
}

// Delete removes the file behind a reference. Missing files are ignored.
func (store *DiskStore) Delete(context context.Context, reference string) error {
	// Reject anything that is not a bare file name.
	if reference != filepath.Base(reference) {
		return fmt.Errorf("storage: invalid attachment reference %q", reference)
	}

	err := os.Remove(filepath.Join(store.root, reference))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: failed to delete attachment: %w", err)
	}

	return nil
}
