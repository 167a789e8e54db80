// Package pacbucket serves an Arch Linux package repository out of an
// S3-compatible object store and automates its upkeep.
//
// The package provides the pieces a self-hosted AUR repository needs once the
// build pipeline has deposited packages into the bucket:
//
//   - ObjectStore: interface over a key-value blob store (S3/R2, filesystem
//     and in-memory implementations live in their own subpackages)
//   - ByteRange: lenient single-range header parsing and validation used by
//     the HTTP responder
//   - CompareVersions: pacman-style version ordering for
//     [epoch:]pkgver-pkgrel strings
//   - Service: repository maintenance on top of an ObjectStore (stored
//     version scan, superseded-version cleanup, local mirroring)
//   - FindUpdates: diff between AUR versions and the versions already built
//
// # Example Usage
//
//	store, err := s3.New(ctx, s3.Config{Endpoint: endpoint, Bucket: bucket})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	svc := pacbucket.NewService(store, "repo/")
//	versions, err := svc.StoredVersions(ctx)
//
// See the http package for the range-aware HTTP responder and the aur and
// dispatch packages for the update-check collaborators.
package pacbucket
