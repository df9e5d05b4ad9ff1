// Package archive persists raw audio clips so transcriptions can be
// replayed or audited later. Keys are grouped by capture day.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"
)

var ErrClipNotFound = errors.New("audio clip not found")

type ClipInfo struct {
	Key      string
	Size     int64
	ETag     string
	StoredAt time.Time
}

type Store interface {
	Save(ctx context.Context, key string, audio io.Reader, size int64, contentType string) (ClipInfo, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// ClipKey builds the canonical key for a captured clip: audio/<day>/<id><ext>.
// The extension is derived from the content type when one is known.
func ClipKey(capturedAt time.Time, id, contentType string) string {
	ext := ".bin"
	if contentType != "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}
	day := capturedAt.UTC().Format("2006-01-02")
	return fmt.Sprintf("audio/%s/%s%s", day, strings.TrimSpace(id), ext)
}
