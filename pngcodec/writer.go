package pngcodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/happenhub/iconkit/imop"
	"github.com/klauspost/compress/zlib"
)

// colorTypeRGBA is the IHDR color type for truecolor with alpha.
const colorTypeRGBA = 6

// Encode writes r to w as an 8-bit RGBA PNG. Every scanline uses the None
// filter and the pixel data is deflated at the best compression level.
func Encode(w io.Writer, r *imop.Raster) error {
	if r.Width <= 0 || r.Height <= 0 || r.Width > maxDimension || r.Height > maxDimension {
		return fmt.Errorf("png: invalid image size %dx%d", r.Width, r.Height)
	}

	idat, err := compress(scanlines(r))
	if err != nil {
		return fmt.Errorf("png: compressing pixel data: %w", err)
	}

	e := &encoder{w: w}
	e.write([]byte(signature))
	e.writeChunk(chunkIHDR, ihdr(r.Width, r.Height))
	e.writeChunk(chunkIDAT, idat)
	e.writeChunk(chunkIEND, nil)
	return e.err
}

// EncodeBytes is like Encode but returns the PNG stream.
func EncodeBytes(r *imop.Raster) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ihdr(width, height int) []byte {
	b := make([]byte, 13)
	binary.BigEndian.PutUint32(b[0:4], uint32(width))
	binary.BigEndian.PutUint32(b[4:8], uint32(height))
	b[8] = 8 // bit depth
	b[9] = colorTypeRGBA
	b[10] = 0 // compression method
	b[11] = 0 // filter method
	b[12] = 0 // interlace method
	return b
}

// scanlines serializes the raster into filter-prefixed rows of quantized samples.
func scanlines(r *imop.Raster) []byte {
	raw := make([]byte, 0, r.Height*(1+r.Width*bytesPerPixel))
	for y := 0; y < r.Height; y++ {
		raw = append(raw, filterNone)
		for _, c := range r.Row(y) {
			q := c.NRGBA()
			raw = append(raw, q.R, q.G, q.B, q.A)
		}
	}
	return raw
}

func compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
