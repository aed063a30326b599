package gcs

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"resume-booster/internal/shared/storage/object"
)

// Options configures the GCS store. Firebase Storage buckets are GCS buckets.
type Options struct {
	Bucket          string
	Prefix          string
	CredentialsFile string
	CredentialsJSON string
}

type writerFactory interface {
	NewWriter(ctx context.Context, bucket, name, contentType string) io.WriteCloser
}

type clientWriter struct {
	client *storage.Client
}

func (c clientWriter) NewWriter(ctx context.Context, bucket, name, contentType string) io.WriteCloser {
	w := c.client.Bucket(bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.ChunkSize = 0 // single request for small files
	return w
}

// Store implements ObjectStore on Google Cloud Storage.
type Store struct {
	writers writerFactory
	bucket  string
	prefix  string
}

// New creates a GCS client. Without explicit credentials, ADC is used.
func New(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("gcs bucket is required")
	}

	var clientOpts []option.ClientOption
	switch {
	case strings.TrimSpace(opts.CredentialsJSON) != "":
		creds, err := google.CredentialsFromJSON(ctx, []byte(opts.CredentialsJSON), storage.ScopeReadWrite)
		if err != nil {
			return nil, fmt.Errorf("parse gcs credentials: %w", err)
		}
		clientOpts = append(clientOpts, option.WithCredentials(creds))
	case strings.TrimSpace(opts.CredentialsFile) != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return newWithWriters(clientWriter{client: client}, opts.Bucket, opts.Prefix), nil
}

func newWithWriters(w writerFactory, bucket, prefix string) *Store {
	return &Store{
		writers: w,
		bucket:  strings.TrimSpace(bucket),
		prefix:  strings.Trim(strings.TrimSpace(prefix), "/"),
	}
}

// Save uploads the reader and returns the object's public URL.
func (s *Store) Save(ctx context.Context, owner string, fileName string, contentType string, r io.Reader) (object.Object, error) {
	key, err := object.NewKey(owner, fileName)
	if err != nil {
		return object.Object{}, err
	}
	if err := ctx.Err(); err != nil {
		return object.Object{}, err
	}

	name := key
	if s.prefix != "" {
		name = path.Join(s.prefix, key)
	}

	wc := s.writers.NewWriter(ctx, s.bucket, name, contentType)
	written, err := io.Copy(wc, r)
	if err != nil {
		_ = wc.Close()
		return object.Object{}, fmt.Errorf("gcs write bucket=%s object=%s: %w", s.bucket, name, err)
	}
	if err := wc.Close(); err != nil {
		return object.Object{}, fmt.Errorf("gcs close bucket=%s object=%s: %w", s.bucket, name, err)
	}

	return object.Object{
		Key:         key,
		URL:         PublicURL(s.bucket, name),
		SizeBytes:   written,
		ContentType: contentType,
	}, nil
}

// PublicURL builds the public URL for an object.
func PublicURL(bucket, name string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, name)
}

var _ object.ObjectStore = (*Store)(nil)
