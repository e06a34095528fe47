package pngcodec

// A FormatError reports that the input is not a PNG stream this package can read:
// bad signature, truncated or misordered chunks, a missing IHDR, an unsupported
// header or an unknown scanline filter.
type FormatError string

func (e FormatError) Error() string { return "png: invalid format: " + string(e) }

// A CompressionError reports that the zlib stream carried by the IDAT chunks
// is corrupt or truncated.
type CompressionError struct {
	Err error
}

func (e *CompressionError) Error() string { return "png: corrupt pixel data: " + e.Err.Error() }

func (e *CompressionError) Unwrap() error { return e.Err }
