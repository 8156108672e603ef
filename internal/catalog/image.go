// internal/catalog/image.go
//
// Image ingestion: turns an uploaded file into an opaque, displayable
// reference (a data URI). Ingest runs the read in the background and hands
// the finished reference to a callback exactly once, so a half-read image is
// never visible to anyone.

package catalog

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrImageTooLarge = errors.New("image too large")
	ErrEmptyImage    = errors.New("image is empty")
)

// ReadImage reads r completely (at most limit bytes) and returns a data URI.
func ReadImage(r io.Reader, limit int64) (string, error) {
	buf, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if int64(len(buf)) > limit {
		return "", ErrImageTooLarge
	}
	if len(buf) == 0 {
		return "", ErrEmptyImage
	}
	mime := http.DetectContentType(buf)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf), nil
}

// Ingest reads r on its own goroutine and calls done with the result. If
// ctx is done by the time the read finishes, the image is discarded and
// done receives ctx's error instead.
func Ingest(ctx context.Context, r io.Reader, limit int64, done func(ref string, err error)) {
	go func() {
		ref, err := ReadImage(r, limit)
		if err == nil && ctx.Err() != nil {
			ref, err = "", ctx.Err()
		}
		done(ref, err)
	}()
}
