package pngcodec

import (
	"encoding/binary"
	"hash/crc32"
	"io"
)

// signature is the fixed 8-byte prefix of every PNG stream.
const signature = "\x89PNG\r\n\x1a\n"

// Critical chunk types. Any other chunk is skipped when reading and never written.
const (
	chunkIHDR = "IHDR"
	chunkIDAT = "IDAT"
	chunkIEND = "IEND"
)

// chunk is a single length-prefixed record of the PNG container.
type chunk struct {
	typ  string
	data []byte
	crc  uint32
}

// checksum computes the CRC-32 over the chunk type and payload.
func checksum(typ string, data []byte) uint32 {
	h := crc32.NewIEEE()
	io.WriteString(h, typ)
	h.Write(data)
	return h.Sum32()
}

// readChunk parses the chunk starting at off and returns it along with the
// offset of the next chunk. The returned payload aliases buf.
func readChunk(buf []byte, off int) (chunk, int, error) {
	rest := buf[off:]
	if len(rest) < 8 {
		return chunk{}, 0, FormatError("truncated chunk header")
	}
	length := binary.BigEndian.Uint32(rest[:4])
	typ := string(rest[4:8])

	// 4 bytes length, 4 bytes type, payload, 4 bytes CRC.
	if uint64(length)+12 > uint64(len(rest)) {
		return chunk{}, 0, FormatError("truncated " + typ + " chunk")
	}
	end := 8 + int(length)
	c := chunk{
		typ:  typ,
		data: rest[8:end],
		crc:  binary.BigEndian.Uint32(rest[end : end+4]),
	}
	return c, off + end + 4, nil
}

// encoder writes chunks to w and remembers the first write error.
type encoder struct {
	w      io.Writer
	header [8]byte
	footer [4]byte
	err    error
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) writeChunk(typ string, data []byte) {
	binary.BigEndian.PutUint32(e.header[:4], uint32(len(data)))
	copy(e.header[4:], typ)
	binary.BigEndian.PutUint32(e.footer[:], checksum(typ, data))

	e.write(e.header[:])
	e.write(data)
	e.write(e.footer[:])
}
