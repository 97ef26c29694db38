package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// SpecArchive keeps the original bytes of each upload in object storage,
// keyed by record id. The database holds the canonical JSON; the archive is
// the only place the pre-normalization bytes survive.
type SpecArchive struct {
	client *minio.Client
	bucket string
}

// NewSpecArchive creates the MinIO client and ensures the bucket exists.
func NewSpecArchive(cfg *ArchiveConfig) (*SpecArchive, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("archive config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	a := &SpecArchive{client: mc, bucket: cfg.Bucket}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		// tolerate a bucket that already exists
		exist, xerr := mc.BucketExists(ctx, a.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return a, nil
}

// Store writes the uploaded bytes under the record id.
func (a *SpecArchive) Store(ctx context.Context, id string, data []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, a.bucket, objectKey(id), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

// Fetch returns a reader over the archived bytes plus their content type.
func (a *SpecArchive) Fetch(ctx context.Context, id string) (io.ReadCloser, string, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, objectKey(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	// stat up front so missing objects surface here, not mid-stream
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, "", err
	}
	return obj, info.ContentType, nil
}

// Remove deletes the archived bytes for a record.
func (a *SpecArchive) Remove(ctx context.Context, id string) error {
	return a.client.RemoveObject(ctx, a.bucket, objectKey(id), minio.RemoveObjectOptions{})
}

func objectKey(id string) string {
	return "originals/" + id
}
