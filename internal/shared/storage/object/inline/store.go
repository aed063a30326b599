package inline

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"resume-booster/internal/shared/storage/object"
)

// Store keeps the file inside its URL as a base64 data URI. Nothing is written anywhere.
type Store struct{}

// New creates an inline store.
func New() object.ObjectStore {
	return Store{}
}

// Save encodes the reader as data:<contentType>;base64,<payload>.
func (Store) Save(ctx context.Context, owner string, fileName string, contentType string, r io.Reader) (object.Object, error) {
	if err := ctx.Err(); err != nil {
		return object.Object{}, err
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var b strings.Builder
	b.WriteString("data:")
	b.WriteString(contentType)
	b.WriteString(";base64,")
	counter := &object.CountingReader{R: r}
	enc := base64.NewEncoder(base64.StdEncoding, &b)
	if _, err := io.Copy(enc, counter); err != nil {
		return object.Object{}, fmt.Errorf("encode body: %w", err)
	}
	if err := enc.Close(); err != nil {
		return object.Object{}, fmt.Errorf("encode body: %w", err)
	}

	return object.Object{
		URL:         b.String(),
		SizeBytes:   counter.N,
		ContentType: contentType,
	}, nil
}
