package pngcodec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Paeth(t *testing.T) {
	testCases := []struct {
		name    string
		a, b, c uint8
		want    uint8
	}{
		{"tie between left and up favours left", 10, 20, 15, 10},
		{"up closest", 10, 20, 5, 20},
		{"left closest", 50, 60, 100, 50},
		{"upper left closest", 100, 10, 50, 50},
		{"tie between up and upper left favours up", 0, 6, 2, 6},
		{"zeros", 0, 0, 0, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, paeth(tc.a, tc.b, tc.c))
		})
	}
}

func TestFilter_Unfilter(t *testing.T) {
	testCases := []struct {
		name string
		ft   byte
		raw  []byte
		prev []byte
		want []byte
	}{
		{
			name: "none",
			ft:   filterNone,
			raw:  []byte{1, 2, 3, 4, 5, 6, 7, 8},
			prev: []byte{9, 9, 9, 9, 9, 9, 9, 9},
			want: []byte{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			name: "sub",
			ft:   filterSub,
			raw:  []byte{1, 2, 3, 200, 1, 1, 1, 100},
			prev: make([]byte, 8),
			want: []byte{1, 2, 3, 200, 2, 3, 4, 44},
		},
		{
			name: "up",
			ft:   filterUp,
			raw:  []byte{1, 2, 3, 4, 5, 6, 7, 8},
			prev: []byte{10, 20, 30, 40, 50, 60, 70, 250},
			want: []byte{11, 22, 33, 44, 55, 66, 77, 2},
		},
		{
			name: "average on first row",
			ft:   filterAverage,
			raw:  []byte{10, 20, 30, 40, 5, 5, 5, 5},
			prev: make([]byte, 8),
			want: []byte{10, 20, 30, 40, 10, 15, 20, 25},
		},
		{
			name: "average with previous row",
			ft:   filterAverage,
			raw:  []byte{1, 1, 1, 1, 1, 1, 1, 1},
			prev: []byte{10, 11, 0, 255, 4, 4, 4, 4},
			want: []byte{6, 6, 1, 128, 6, 6, 3, 67},
		},
		{
			name: "paeth",
			ft:   filterPaeth,
			raw:  []byte{1, 1, 1, 1, 1, 1, 1, 1},
			prev: []byte{10, 20, 30, 40, 50, 60, 70, 80},
			want: []byte{11, 21, 31, 41, 51, 61, 71, 81},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cur := append([]byte(nil), tc.raw...)
			require.NoError(t, unfilter(tc.ft, cur, tc.prev))
			assert.Equal(t, tc.want, cur)
		})
	}
}

func TestFilter_UnknownType(t *testing.T) {
	err := unfilter(5, make([]byte, 4), make([]byte, 4))
	var fe FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, err.Error(), "unsupported filter type 5")
}

// applyFilter is the forward transform of unfilter, used to build test streams.
func applyFilter(ft byte, cur, prev []byte) []byte {
	out := make([]byte, len(cur))
	for i := range cur {
		var left, upLeft byte
		if i >= bytesPerPixel {
			left = cur[i-bytesPerPixel]
			upLeft = prev[i-bytesPerPixel]
		}
		switch ft {
		case filterNone:
			out[i] = cur[i]
		case filterSub:
			out[i] = cur[i] - left
		case filterUp:
			out[i] = cur[i] - prev[i]
		case filterAverage:
			out[i] = cur[i] - uint8((int(left)+int(prev[i]))/2)
		case filterPaeth:
			out[i] = cur[i] - paeth(left, prev[i], upLeft)
		}
	}
	return out
}

func TestFilter_RoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	const stride = 6 * bytesPerPixel

	prev := make([]byte, stride)
	for row := 0; row < 40; row++ {
		ft := byte(row % 5)
		cur := make([]byte, stride)
		rnd.Read(cur)

		got := applyFilter(ft, cur, prev)
		require.NoError(t, unfilter(ft, got, prev))
		require.Equal(t, cur, got, "row %d, filter %d", row, ft)
		prev = cur
	}
}
