package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pacbucket/pacbucket"
	"github.com/pacbucket/pacbucket/config"
	"github.com/pacbucket/pacbucket/filesystem"
	"github.com/pacbucket/pacbucket/memory"
	"github.com/pacbucket/pacbucket/s3"
)

// openStore builds the configured ObjectStore. The returned cleanup function
// must be called when the store is no longer needed.
func openStore(ctx context.Context, cfg *config.Config) (pacbucket.ObjectStore, func(), error) {
	switch cfg.Storage.Backend {
	case "s3":
		store, err := s3.New(ctx, s3.Config{
			Endpoint:  cfg.Storage.S3.Endpoint,
			Bucket:    cfg.Storage.S3.Bucket,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
			Region:    cfg.Storage.S3.Region,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open s3 store: %w", err)
		}
		return store, func() {}, nil

	case "filesystem":
		root, err := openRoot(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return filesystem.NewStore(root), func() { _ = root.Close() }, nil

	case "memory":
		return memory.NewStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

func openRoot(path string) (*os.Root, error) {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	root, err := os.OpenRoot(path)
	if err != nil {
		return nil, fmt.Errorf("open storage root: %w", err)
	}
	return root, nil
}
