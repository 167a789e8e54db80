package pacbucket

import (
	"strconv"
	"strings"
)

// Segment kinds follow pacman's vercmp ordering: digit runs sort before
// single letters, letters before separator characters.
const (
	segNumber = iota
	segLetter
	segOther
)

type versionSegment struct {
	kind int
	val  string
}

type archVersion struct {
	epoch    int
	segments []versionSegment
	rel      int
}

// parseArchVersion splits an Arch version string of the form
// [epoch:]pkgver-pkgrel. The epoch defaults to 0 and the last hyphen
// separates pkgver from pkgrel; pkgver itself may contain hyphens.
func parseArchVersion(s string) archVersion {
	var v archVersion

	if idx := strings.Index(s, ":"); idx >= 0 {
		if epoch, err := strconv.Atoi(s[:idx]); err == nil {
			v.epoch = epoch
		}
		s = s[idx+1:]
	}

	pkgver := s
	if idx := strings.LastIndex(s, "-"); idx >= 0 {
		pkgver = s[:idx]
		if rel, err := strconv.Atoi(s[idx+1:]); err == nil {
			v.rel = rel
		}
	}

	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			v.segments = append(v.segments, versionSegment{kind: segNumber, val: current.String()})
			current.Reset()
		}
	}

	for _, r := range pkgver {
		switch {
		case r >= '0' && r <= '9':
			current.WriteRune(r)
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			flush()
			v.segments = append(v.segments, versionSegment{kind: segLetter, val: string(r)})
		default:
			flush()
			v.segments = append(v.segments, versionSegment{kind: segOther, val: string(r)})
		}
	}
	flush()

	return v
}

// compareNumeric compares two digit strings as integers of arbitrary length.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) > len(b) {
			return 1
		}
		return -1
	}
	return strings.Compare(a, b)
}

// CompareVersions compares two Arch Linux version strings.
//
// It returns 1 if a is newer, -1 if b is newer and 0 if they are equal.
// The epoch is compared first, then the pkgver segment by segment, then the
// pkgrel; when one pkgver is a prefix of the other, the longer one is newer.
func CompareVersions(a, b string) int {
	va := parseArchVersion(a)
	vb := parseArchVersion(b)

	if va.epoch != vb.epoch {
		if va.epoch > vb.epoch {
			return 1
		}
		return -1
	}

	n := min(len(va.segments), len(vb.segments))
	for i := range n {
		sa, sb := va.segments[i], vb.segments[i]

		if sa.kind != sb.kind {
			if sa.kind > sb.kind {
				return 1
			}
			return -1
		}

		var cmp int
		if sa.kind == segNumber {
			cmp = compareNumeric(sa.val, sb.val)
		} else {
			cmp = strings.Compare(sa.val, sb.val)
		}
		if cmp != 0 {
			return cmp
		}
	}

	if len(va.segments) != len(vb.segments) {
		if len(va.segments) > len(vb.segments) {
			return 1
		}
		return -1
	}

	if va.rel != vb.rel {
		if va.rel > vb.rel {
			return 1
		}
		return -1
	}

	return 0
}
