package pacbucket

import (
	"regexp"
	"strings"
)

const (
	// PackageSuffix is the extension makepkg produces with zstd compression.
	PackageSuffix = ".pkg.tar.zst"
	// SignatureSuffix marks a detached package signature.
	SignatureSuffix = ".sig"
)

var (
	archPattern    = regexp.MustCompile(`-(x86_64|i686|armv7h|aarch64|any)$`)
	versionPattern = regexp.MustCompile(`-\d+(\.\d+)*`)
	namePattern    = regexp.MustCompile(`^[a-zA-Z0-9@._+-]+$`)
)

// ParsePackageFilename parses an Arch package filename of the form
// {name}-{pkgver}-{pkgrel}-{arch}.pkg.tar.zst, e.g.
// localsend-bin-1.14.4-1-x86_64.pkg.tar.zst. The returned Package carries
// Name, Version (pkgver-pkgrel) and Arch; Key and Size are left for the
// caller. Signature files and anything else that does not match return false.
func ParsePackageFilename(filename string) (Package, bool) {
	if !strings.HasSuffix(filename, PackageSuffix) {
		return Package{}, false
	}
	base := strings.TrimSuffix(filename, PackageSuffix)

	archIdx := archPattern.FindStringSubmatchIndex(base)
	if archIdx == nil {
		return Package{}, false
	}
	arch := base[archIdx[2]:archIdx[3]]
	base = base[:archIdx[0]]

	// The version starts at the first "-<digit>" boundary; everything before
	// it is the package name, which itself may contain hyphens.
	verIdx := versionPattern.FindStringIndex(base)
	if verIdx == nil {
		return Package{}, false
	}
	version := base[verIdx[0]+1:]
	name := base[:verIdx[0]]

	if !namePattern.MatchString(name) {
		return Package{}, false
	}

	return Package{Name: name, Version: version, Arch: arch}, true
}
