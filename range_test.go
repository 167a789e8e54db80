package pacbucket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacbucket/pacbucket"
)

func TestParseRange(t *testing.T) {
	tt := []struct {
		Name   string
		Header string
		Want   pacbucket.ByteRange
		OK     bool
	}{
		{Name: "absent header", Header: "", OK: false},
		{Name: "start and end", Header: "bytes=0-499", Want: pacbucket.ByteRange{Start: 0, End: 499}, OK: true},
		{Name: "open end", Header: "bytes=500-", Want: pacbucket.ByteRange{Start: 500, End: -1}, OK: true},
		{Name: "single byte", Header: "bytes=10-10", Want: pacbucket.ByteRange{Start: 10, End: 10}, OK: true},

		// Unsupported forms degrade to "no range requested"
		{Name: "suffix range", Header: "bytes=-500", OK: false},
		{Name: "multi range", Header: "bytes=0-10,20-30", OK: false},
		{Name: "missing unit", Header: "0-499", OK: false},
		{Name: "wrong unit", Header: "items=0-499", OK: false},
		{Name: "negative start", Header: "bytes=-1-5", OK: false},
		{Name: "non-numeric", Header: "bytes=a-b", OK: false},
		{Name: "whitespace", Header: "bytes= 0-499", OK: false},
		{Name: "trailing garbage", Header: "bytes=0-499x", OK: false},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			got, ok := pacbucket.ParseRange(tc.Header)
			require.Equal(t, tc.OK, ok)
			if ok {
				assert.Equal(t, tc.Want, got)
			}
		})
	}
}

func TestByteRange_Resolve(t *testing.T) {
	tt := []struct {
		Name      string
		Range     pacbucket.ByteRange
		Size      int64
		WantStart int64
		WantEnd   int64
		WantErr   bool
	}{
		{Name: "exact range", Range: pacbucket.ByteRange{Start: 0, End: 499}, Size: 1000, WantStart: 0, WantEnd: 499},
		{Name: "open end", Range: pacbucket.ByteRange{Start: 500, End: -1}, Size: 1000, WantStart: 500, WantEnd: 999},
		{Name: "over-long end clamped", Range: pacbucket.ByteRange{Start: 500, End: 1499}, Size: 1000, WantStart: 500, WantEnd: 999},
		{Name: "last byte", Range: pacbucket.ByteRange{Start: 999, End: 999}, Size: 1000, WantStart: 999, WantEnd: 999},
		{Name: "start at size", Range: pacbucket.ByteRange{Start: 1000, End: -1}, Size: 1000, WantErr: true},
		{Name: "start past size", Range: pacbucket.ByteRange{Start: 5000, End: 6000}, Size: 1000, WantErr: true},
		{Name: "empty object", Range: pacbucket.ByteRange{Start: 0, End: 10}, Size: 0, WantErr: true},
		{Name: "inverted range", Range: pacbucket.ByteRange{Start: 5, End: 3}, Size: 1000, WantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			start, end, err := tc.Range.Resolve(tc.Size)
			if tc.WantErr {
				require.ErrorIs(t, err, pacbucket.ErrRangeNotSatisfiable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.WantStart, start)
			assert.Equal(t, tc.WantEnd, end)
		})
	}
}
