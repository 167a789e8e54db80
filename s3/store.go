// Package s3 provides an ObjectStore backed by any S3-compatible service.
// Cloudflare R2 is the deployment target, but plain S3 and MinIO work the
// same way.
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pacbucket/pacbucket"
)

// Config holds the connection settings for an S3-compatible store.
type Config struct {
	// Endpoint accepts either "host:port" or a full "https://host" URL.
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	// Region may stay empty; R2 uses "auto".
	Region string
}

// Store provides object storage operations against a single bucket.
type Store struct {
	client *minio.Client
	bucket string
}

// normaliseEndpoint accepts either "host:port" or "scheme://host" and returns
// the bare host together with whether TLS should be used. Endpoints without a
// scheme default to insecure, which matches local MinIO setups.
func normaliseEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty endpoint")
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, fmt.Errorf("invalid endpoint")
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, fmt.Errorf("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}

	return raw, false, nil
}

// New creates a Store and verifies that the configured bucket exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("new s3 store: bucket cannot be empty: %w", pacbucket.ErrInvalidInput)
	}

	endpoint, secure, err := normaliseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("new s3 store: %w", err)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("new s3 store: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("new s3 store: check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("new s3 store: bucket does not exist: %s", cfg.Bucket)
	}

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// Stat returns the metadata of an object. Returns pacbucket.ErrNotFound if
// the key is absent.
func (s *Store) Stat(ctx context.Context, key string) (pacbucket.ObjectInfo, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return pacbucket.ObjectInfo{}, pacbucket.ErrNotFound
		}
		return pacbucket.ObjectInfo{}, fmt.Errorf("stat object: %w", err)
	}

	return pacbucket.ObjectInfo{Key: key, Size: info.Size, ContentType: info.ContentType}, nil
}

// ReadRange returns a reader over the inclusive byte range [start, end] of an
// object. The backend may not report a missing object until the first read.
func (s *Store) ReadRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, error) {
	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(start, end); err != nil {
		return nil, fmt.Errorf("read range [%d, %d]: %w", start, end, pacbucket.ErrInvalidInput)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, opts)
	if err != nil {
		if isNotFound(err) {
			return nil, pacbucket.ErrNotFound
		}
		return nil, fmt.Errorf("get object: %w", err)
	}

	return obj, nil
}

// List returns every object whose key begins with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]pacbucket.ObjectInfo, error) {
	infos := []pacbucket.ObjectInfo{}

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		infos = append(infos, pacbucket.ObjectInfo{Key: obj.Key, Size: obj.Size, ContentType: obj.ContentType})
	}

	return infos, nil
}

// Delete removes an object. Removing an absent key succeeds, per S3 semantics.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}
