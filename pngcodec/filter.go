package pngcodec

import (
	"strconv"

	"github.com/happenhub/iconkit/utils"
)

// Scanline filter types.
const (
	filterNone    = 0
	filterSub     = 1
	filterUp      = 2
	filterAverage = 3
	filterPaeth   = 4
)

// bytesPerPixel is fixed by the only supported format, 8-bit RGBA.
const bytesPerPixel = 4

// paeth returns whichever of a (left), b (up) or c (upper left) is closest to
// a+b-c. Ties favour a, then b.
func paeth(a, b, c uint8) uint8 {
	p := int(a) + int(b) - int(c)
	pa := utils.Abs(p - int(a))
	pb := utils.Abs(p - int(b))
	pc := utils.Abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

// unfilter reverses the filter ft in place on cur, using prev as the
// already reconstructed previous row. prev is all zeros for the first row.
// All arithmetic wraps modulo 256.
func unfilter(ft byte, cur, prev []byte) error {
	switch ft {
	case filterNone:
	case filterSub:
		for i := bytesPerPixel; i < len(cur); i++ {
			cur[i] += cur[i-bytesPerPixel]
		}
	case filterUp:
		for i, up := range prev {
			cur[i] += up
		}
	case filterAverage:
		for i := 0; i < len(cur); i++ {
			var left int
			if i >= bytesPerPixel {
				left = int(cur[i-bytesPerPixel])
			}
			cur[i] += uint8((left + int(prev[i])) / 2)
		}
	case filterPaeth:
		for i := 0; i < len(cur); i++ {
			var left, upLeft uint8
			if i >= bytesPerPixel {
				left = cur[i-bytesPerPixel]
				upLeft = prev[i-bytesPerPixel]
			}
			cur[i] += paeth(left, prev[i], upLeft)
		}
	default:
		return FormatError("unsupported filter type " + strconv.Itoa(int(ft)))
	}
	return nil
}
