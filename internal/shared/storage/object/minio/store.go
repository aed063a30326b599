package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"resume-booster/internal/shared/storage/object"
)

// Options configures the MinIO store.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL overrides the scheme://endpoint base used in returned URLs.
	PublicURL string
}

type putter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Store implements ObjectStore on an S3-compatible MinIO server.
type Store struct {
	client  putter
	bucket  string
	baseURL string
}

// New creates a MinIO-backed store.
func New(opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return newWithClient(client, opts), nil
}

func newWithClient(client putter, opts Options) *Store {
	base := strings.TrimRight(strings.TrimSpace(opts.PublicURL), "/")
	if base == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + opts.Endpoint
	}
	return &Store{client: client, bucket: opts.Bucket, baseURL: base}
}

// Save streams the reader into the bucket.
func (s *Store) Save(ctx context.Context, owner string, fileName string, contentType string, r io.Reader) (object.Object, error) {
	key, err := object.NewKey(owner, fileName)
	if err != nil {
		return object.Object{}, err
	}
	if err := ctx.Err(); err != nil {
		return object.Object{}, err
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, r, -1, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return object.Object{}, fmt.Errorf("minio put object bucket=%s key=%s: %w", s.bucket, key, err)
	}

	return object.Object{
		Key:         key,
		URL:         fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key),
		SizeBytes:   info.Size,
		ContentType: contentType,
	}, nil
}

var _ object.ObjectStore = (*Store)(nil)
