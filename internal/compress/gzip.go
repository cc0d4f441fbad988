package compress

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/gzip"
)

// Encoding is the Content-Encoding value for gzip bodies.
const Encoding = "gzip"

// Gzip compresses data at level into dst.
func Gzip(dst *bytes.Buffer, data []byte, level int) error {
	gz, err := gzip.NewWriterLevel(dst, level)
	if err != nil {
		return fmt.Errorf("invalid gzip level %d: %w", level, err)
	}
	if _, err := gz.Write(data); err != nil {
		return fmt.Errorf("gzip write failed: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("gzip close failed: %w", err)
	}
	return nil
}
