package pngcodec

import (
	"bytes"
	"encoding/binary"
	"image"
	"io"

	"github.com/klauspost/compress/zlib"
)

// maxDimension bounds width and height so that buffer sizes cannot overflow.
const maxDimension = 1 << 24

// Image is a decoded 8-bit RGBA PNG.
type Image struct {
	Width  int
	Height int
	// Pix holds the reconstructed RGBA samples, 4*Width bytes per row.
	Pix []uint8
}

// Alpha extracts the alpha channel, one slice per row.
func (m *Image) Alpha() [][]uint8 {
	stride := m.Width * bytesPerPixel
	alpha := make([][]uint8, m.Height)
	for y := range alpha {
		row := m.Pix[y*stride : (y+1)*stride]
		a := make([]uint8, m.Width)
		for x := range a {
			a[x] = row[x*bytesPerPixel+3]
		}
		alpha[y] = a
	}
	return alpha
}

// NRGBA wraps the decoded samples in an *image.NRGBA without copying.
func (m *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.Pix,
		Stride: m.Width * bytesPerPixel,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}

// Decoder reads PNG streams produced by Encode and by other 8-bit RGBA,
// non-interlaced writers.
type Decoder struct {
	// VerifyChecksum makes the decoder reject chunks whose CRC-32 does not
	// match their type and payload. Chunk CRCs are skipped otherwise.
	VerifyChecksum bool
}

// Decode decodes a PNG held in memory using the default Decoder.
func Decode(data []byte) (*Image, error) {
	var d Decoder
	return d.Decode(data)
}

// DecodeAlpha decodes data and returns its dimensions and alpha channel.
func DecodeAlpha(data []byte) (width, height int, alpha [][]uint8, err error) {
	m, err := Decode(data)
	if err != nil {
		return 0, 0, nil, err
	}
	return m.Width, m.Height, m.Alpha(), nil
}

// header is the subset of IHDR this package cares about.
type header struct {
	width, height int
}

// Decode walks the chunks of data, inflates the concatenated IDAT payloads
// and reverses the scanline filters.
func (d *Decoder) Decode(data []byte) (*Image, error) {
	if len(data) < len(signature) || string(data[:len(signature)]) != signature {
		return nil, FormatError("not a PNG file")
	}

	var (
		hdr  *header
		idat bytes.Buffer
	)

loop:
	for off := len(signature); off < len(data); {
		c, next, err := readChunk(data, off)
		if err != nil {
			return nil, err
		}
		off = next

		if d.VerifyChecksum && checksum(c.typ, c.data) != c.crc {
			return nil, FormatError("invalid checksum in " + c.typ + " chunk")
		}

		switch c.typ {
		case chunkIHDR:
			if hdr != nil {
				return nil, FormatError("duplicate IHDR chunk")
			}
			if hdr, err = parseHeader(c.data); err != nil {
				return nil, err
			}
		case chunkIDAT:
			if hdr == nil {
				return nil, FormatError("IDAT chunk before IHDR")
			}
			idat.Write(c.data)
		case chunkIEND:
			break loop
		}
	}

	if hdr == nil {
		return nil, FormatError("missing IHDR chunk")
	}

	raw, err := inflate(idat.Bytes(), hdr)
	if err != nil {
		return nil, err
	}
	return reconstruct(raw, hdr)
}

func parseHeader(b []byte) (*header, error) {
	if len(b) != 13 {
		return nil, FormatError("bad IHDR length")
	}
	w := binary.BigEndian.Uint32(b[0:4])
	h := binary.BigEndian.Uint32(b[4:8])
	if w == 0 || h == 0 {
		return nil, FormatError("zero image dimension")
	}
	if w > maxDimension || h > maxDimension {
		return nil, FormatError("image dimensions too large")
	}

	bitDepth, colorType := b[8], b[9]
	compression, filter, interlace := b[10], b[11], b[12]
	switch {
	case bitDepth != 8 || colorType != colorTypeRGBA:
		return nil, FormatError("only 8-bit RGBA images are supported")
	case compression != 0 || filter != 0:
		return nil, FormatError("unknown compression or filter method")
	case interlace != 0:
		return nil, FormatError("interlaced images are not supported")
	}
	return &header{width: int(w), height: int(h)}, nil
}

// inflate decompresses the IDAT stream. It reads at most one byte past the
// size the header calls for; anything beyond that is ignored.
func inflate(compressed []byte, hdr *header) ([]byte, error) {
	want := hdr.height * (1 + hdr.width*bytesPerPixel)

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, &CompressionError{Err: err}
	}
	defer zr.Close()

	raw, err := io.ReadAll(io.LimitReader(zr, int64(want)+1))
	if err != nil {
		return nil, &CompressionError{Err: err}
	}
	if len(raw) < want {
		return nil, FormatError("not enough pixel data")
	}
	return raw[:want], nil
}

// reconstruct reverses the per-row filters of raw into an RGBA image.
func reconstruct(raw []byte, hdr *header) (*Image, error) {
	stride := hdr.width * bytesPerPixel
	m := &Image{
		Width:  hdr.width,
		Height: hdr.height,
		Pix:    make([]uint8, hdr.height*stride),
	}

	prev := make([]byte, stride)
	for y := 0; y < hdr.height; y++ {
		rec := raw[y*(1+stride):]
		cur := m.Pix[y*stride : (y+1)*stride]
		copy(cur, rec[1:1+stride])
		if err := unfilter(rec[0], cur, prev); err != nil {
			return nil, err
		}
		prev = cur
	}
	return m, nil
}
