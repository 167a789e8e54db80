package pacbucket

import (
	"fmt"
	"regexp"
	"strconv"
)

// ByteRange is an end-inclusive byte range requested by a client.
// End is -1 when the request left the end open ("bytes=500-").
type ByteRange struct {
	Start int64
	End   int64
}

// Only the single "start-end" and "start-" forms are recognized. Multi-range
// lists and suffix ranges ("bytes=-500") fail the pattern and take the
// full-body fallback.
var rangePattern = regexp.MustCompile(`^bytes=(\d+)-(\d*)$`)

// ParseRange parses a Range header value. It returns false for an absent or
// malformed header so the caller can fall back to a full response; a bad
// range is never an error on its own.
func ParseRange(header string) (ByteRange, bool) {
	m := rangePattern.FindStringSubmatch(header)
	if m == nil {
		return ByteRange{}, false
	}

	start, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return ByteRange{}, false
	}

	r := ByteRange{Start: start, End: -1}
	if m[2] != "" {
		end, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return ByteRange{}, false
		}
		r.End = end
	}

	return r, true
}

// Resolve validates the range against an object of the given size and returns
// the offsets to serve. An open or over-long end is clamped to the last byte;
// a start at or past the end of the object is unsatisfiable.
//
// The returned pair always satisfies 0 <= start <= end < size.
func (r ByteRange) Resolve(size int64) (start, end int64, err error) {
	if r.Start >= size {
		return 0, 0, fmt.Errorf("resolve range: start %d outside object of %d bytes: %w", r.Start, size, ErrRangeNotSatisfiable)
	}

	end = r.End
	if end < 0 || end > size-1 {
		end = size - 1
	}

	// An inverted explicit range ("bytes=5-3") cannot be clamped into
	// anything servable.
	if end < r.Start {
		return 0, 0, fmt.Errorf("resolve range: end %d before start %d: %w", end, r.Start, ErrRangeNotSatisfiable)
	}

	return r.Start, end, nil
}
