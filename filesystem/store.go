// Package filesystem provides an ObjectStore backed by a local directory,
// sandboxed with os.Root. It serves a mirrored repository and acts as the
// destination of pull operations; writes are atomic via temp file and rename.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pacbucket/pacbucket"
)

// Store provides file system storage operations.
type Store struct {
	root *os.Root
}

// NewStore creates a Store rooted at the given directory. The root provides
// sandboxed file operations preventing path traversal.
func NewStore(root *os.Root) *Store {
	return &Store{root: root}
}

// Stat returns the metadata of a file. Directories and missing files report
// pacbucket.ErrNotFound; the content type is detected from the extension.
func (s *Store) Stat(ctx context.Context, key string) (pacbucket.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return pacbucket.ObjectInfo{}, err
	}

	info, err := s.root.Stat(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return pacbucket.ObjectInfo{}, pacbucket.ErrNotFound
		}
		return pacbucket.ObjectInfo{}, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return pacbucket.ObjectInfo{}, pacbucket.ErrNotFound
	}

	return pacbucket.ObjectInfo{Key: key, Size: info.Size(), ContentType: detectContentType(key)}, nil
}

type sectionReadCloser struct {
	io.Reader
	closer io.Closer
}

func (r *sectionReadCloser) Close() error { return r.closer.Close() }

// ReadRange opens a file and returns a reader over the inclusive byte range
// [start, end]. Returns pacbucket.ErrNotFound if the file does not exist.
func (s *Store) ReadRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.root.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, pacbucket.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("seek to %d: %w", start, err)
	}

	return &sectionReadCloser{Reader: io.LimitReader(f, end-start+1), closer: f}, nil
}

// List walks the root directory and returns every file whose key (the
// slash-separated path relative to the root) begins with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]pacbucket.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos := []pacbucket.ObjectInfo{}
	err := fs.WalkDir(s.root.FS(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.HasPrefix(path, prefix) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}

		infos = append(infos, pacbucket.ObjectInfo{Key: path, Size: fi.Size(), ContentType: detectContentType(path)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return infos, nil
}

// Delete removes a file. Returns pacbucket.ErrNotFound if the file does not exist.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.root.Remove(key); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return pacbucket.ErrNotFound
		}
		return fmt.Errorf("could not delete file: %w", err)
	}
	return nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Write atomically writes content to the given key using a temp file and
// rename, creating intermediate directories as needed. It returns the number
// of bytes written and respects context cancellation.
func (s *Store) Write(ctx context.Context, key string, content io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	tmpFile := tmpFileName()
	t, createErr := s.root.Create(tmpFile)
	if createErr != nil {
		return 0, fmt.Errorf("could not open temp file: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(t.Name()); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	written, err := io.Copy(t, &ctxReader{ctx: ctx, r: content})
	if err != nil {
		return 0, fmt.Errorf("could not copy file contents: %w", err)
	}

	if err := t.Sync(); err != nil {
		return 0, fmt.Errorf("could not sync written file: %w", err)
	}

	destDir := filepath.Dir(key)
	if destDir != "." {
		if err := s.root.MkdirAll(destDir, 0o755); err != nil {
			return 0, fmt.Errorf("could not create intermediate directories: %w", err)
		}
	}

	if renameErr := s.root.Rename(tmpFile, key); renameErr != nil {
		return 0, fmt.Errorf("failed to rename file: %w", renameErr)
	}

	success = true
	return written, nil
}

func detectContentType(path string) string {
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}

func tmpFileName() string {
	return fmt.Sprintf(".t%s", uuid.New().String())
}
