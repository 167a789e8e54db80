package pacbucket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Service implements repository maintenance on top of an ObjectStore. All
// package objects live under a single key prefix (conventionally "repo/");
// keys outside the prefix are never touched.
type Service struct {
	store  ObjectStore
	prefix string
}

// NewService creates a Service operating on the given key prefix. A non-empty
// prefix is normalized to end with "/".
func NewService(store ObjectStore, prefix string) *Service {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Service{store: store, prefix: prefix}
}

// Packages lists every parseable package object under the repository prefix.
// Signature files, directory placeholders and keys that do not look like
// package filenames are skipped silently.
func (s *Service) Packages(ctx context.Context) ([]Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	infos, err := s.store.List(ctx, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	pkgs := make([]Package, 0, len(infos))
	for _, info := range infos {
		filename := strings.TrimPrefix(info.Key, s.prefix)
		if filename == "" || strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, SignatureSuffix) {
			continue
		}

		pkg, ok := ParsePackageFilename(filename)
		if !ok {
			continue
		}
		pkg.Key = info.Key
		pkg.Size = info.Size
		pkgs = append(pkgs, pkg)
	}

	return pkgs, nil
}

// StoredVersions returns the newest stored version for each package name.
func (s *Service) StoredVersions(ctx context.Context) (map[string]string, error) {
	pkgs, err := s.Packages(ctx)
	if err != nil {
		return nil, fmt.Errorf("stored versions: %w", err)
	}

	versions := make(map[string]string, len(pkgs))
	for _, pkg := range pkgs {
		if cur, ok := versions[pkg.Name]; !ok || CompareVersions(pkg.Version, cur) > 0 {
			versions[pkg.Name] = pkg.Version
		}
	}

	return versions, nil
}

// CleanOldVersions deletes every package object superseded by a newer stored
// version of the same package, together with its detached signature. With
// dryRun set it only reports what would be deleted.
//
// The newest version of each package is always kept; a package with a single
// stored version is never touched.
func (s *Service) CleanOldVersions(ctx context.Context, dryRun bool) (CleanResult, error) {
	var result CleanResult

	pkgs, err := s.Packages(ctx)
	if err != nil {
		return result, fmt.Errorf("clean old versions: %w", err)
	}

	latest := make(map[string]Package, len(pkgs))
	for _, pkg := range pkgs {
		if cur, ok := latest[pkg.Name]; !ok || CompareVersions(pkg.Version, cur.Version) > 0 {
			latest[pkg.Name] = pkg
		}
	}

	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("clean old versions: %w", err)
		}

		if latest[pkg.Name].Key == pkg.Key {
			result.Kept++
			continue
		}

		if !dryRun {
			if err := s.store.Delete(ctx, pkg.Key); err != nil && !errors.Is(err, ErrNotFound) {
				return result, fmt.Errorf("clean old versions: delete %q: %w", pkg.Key, err)
			}
			// The signature may never have been uploaded.
			if err := s.store.Delete(ctx, pkg.Key+SignatureSuffix); err != nil && !errors.Is(err, ErrNotFound) {
				return result, fmt.Errorf("clean old versions: delete %q: %w", pkg.Key+SignatureSuffix, err)
			}
		}

		result.Deleted = append(result.Deleted, pkg.Key)
	}

	return result, nil
}

// BlobWriter is the destination of a Pull, satisfied by filesystem.Store.
type BlobWriter interface {
	// Write stores content at the given key, overwriting any existing data,
	// and returns the number of bytes written.
	Write(ctx context.Context, key string, content io.Reader) (int64, error)
}

// PullOptions controls what Pull mirrors.
type PullOptions struct {
	// SkipPackage names a package whose files (and signatures) are skipped.
	// Used by build jobs that are about to replace the package anyway.
	SkipPackage string
}

// Pull mirrors every object under the repository prefix into dst, keyed by
// the filename relative to the prefix. It returns the number of objects
// written and stops at the first error.
func (s *Service) Pull(ctx context.Context, dst BlobWriter, opts PullOptions) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("pull: %w", err)
	}

	infos, err := s.store.List(ctx, s.prefix)
	if err != nil {
		return 0, fmt.Errorf("pull: %w", err)
	}

	written := 0
	for _, info := range infos {
		filename := strings.TrimPrefix(info.Key, s.prefix)
		if filename == "" || strings.HasSuffix(filename, "/") {
			continue
		}

		if opts.SkipPackage != "" {
			base := strings.TrimSuffix(filename, SignatureSuffix)
			if pkg, ok := ParsePackageFilename(base); ok && pkg.Name == opts.SkipPackage {
				continue
			}
		}

		if err := s.pullOne(ctx, dst, info, filename); err != nil {
			return written, fmt.Errorf("pull %q: %w", info.Key, err)
		}
		written++
	}

	return written, nil
}

func (s *Service) pullOne(ctx context.Context, dst BlobWriter, info ObjectInfo, filename string) error {
	if info.Size == 0 {
		_, err := dst.Write(ctx, filename, strings.NewReader(""))
		return err
	}

	body, err := s.store.ReadRange(ctx, info.Key, 0, info.Size-1)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	_, err = dst.Write(ctx, filename, body)
	return err
}
