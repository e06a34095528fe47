package iconkit

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/happenhub/iconkit/imop"
	"github.com/happenhub/iconkit/pngcodec"
	"golang.org/x/image/bmp"
)

// Supported output formats, keyed by file extension.
const (
	FormatPNG = ".png"
	FormatBMP = ".bmp"
)

var supportedFormats = []string{FormatPNG, FormatBMP}

// formatOf returns the normalized output format of a path.
func formatOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func isSupportedFormat(format string) bool {
	for _, f := range supportedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// EncodeImage writes img to w in the given format (a file extension such
// as ".png"). PNG goes through the in-house codec; BMP keeps the alpha
// channel as a 32-bit bitmap.
func EncodeImage(w io.Writer, format string, img *imop.Raster) error {
	switch strings.ToLower(format) {
	case FormatPNG:
		return pngcodec.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img.NRGBA())
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}
