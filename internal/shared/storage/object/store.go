package object

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"resume-booster/internal/shared/util"
)

// Object describes a stored upload.
type Object struct {
	Key         string
	URL         string
	SizeBytes   int64
	ContentType string
}

// ObjectStore persists uploaded bytes and returns a URL that references them.
type ObjectStore interface {
	Save(ctx context.Context, owner string, fileName string, contentType string, r io.Reader) (Object, error)
}

// NewKey builds "<owner prefix>/<uuid>_<sanitized name>".
func NewKey(owner, fileName string) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join(util.OwnerPrefix(owner), uuid.NewString()+"_"+sanitized), nil
}

// CountingReader counts bytes read through it.
type CountingReader struct {
	R io.Reader
	N int64
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.N += int64(n)
	return n, err
}
