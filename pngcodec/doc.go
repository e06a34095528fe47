// Package pngcodec reads and writes the narrow slice of the PNG format the
// icon pipeline needs: 8-bit RGBA, non-interlaced, with only the IHDR, IDAT
// and IEND chunks written.
//
// The reader walks the chunk list, inflates the concatenated IDAT payloads
// and reverses all five scanline filters, so it also accepts files produced
// by other encoders as long as they use 8-bit RGBA. The writer always emits
// the None filter.
package pngcodec
