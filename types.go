package pacbucket

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// Package is a parsed Arch Linux package file held in the repository.
type Package struct {
	Name    string
	Version string // pkgver-pkgrel, optionally with an epoch: prefix
	Arch    string
	Key     string
	Size    int64
}

// Update describes a tracked package whose AUR version is ahead of the
// repository, or which has never been built at all.
type Update struct {
	Name          string
	AURVersion    string
	StoredVersion string // empty when no version of the package is stored
}

// IsNew reports whether the package has never been built into the repository.
func (u Update) IsNew() bool {
	return u.StoredVersion == ""
}

// CleanResult summarizes a superseded-version cleanup pass.
type CleanResult struct {
	Deleted []string
	Kept    int
}
