package utils

import (
	"errors"
	"io"
	"net/http"
	"os"
)

// sniffLen is the number of leading bytes http.DetectContentType looks at.
const sniffLen = 512

// DetectFileContentType detects the file type by reading the MIME type
// information from the first bytes of the file content.
func DetectFileContentType(fname string) (string, error) {
	file, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer file.Close()

	buffer := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}

	// Always returns a valid content-type and "application/octet-stream" if no others seemed to match.
	return http.DetectContentType(buffer[:n]), nil
}
