package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioOptions configures the object storage sharer
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Expiry    time.Duration
}

// MinioSharer uploads PDFs to a bucket and returns a presigned download link
type MinioSharer struct {
	client *minio.Client
	bucket string
	expiry time.Duration
	now    func() time.Time
}

// NewMinioSharer connects to the object store and creates the bucket if needed
func NewMinioSharer(ctx context.Context, opts MinioOptions) (*MinioSharer, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", opts.Bucket, err)
		}
	}

	expiry := opts.Expiry
	if expiry <= 0 {
		expiry = time.Hour
	}

	return &MinioSharer{client: client, bucket: opts.Bucket, expiry: expiry, now: time.Now}, nil
}

// Share uploads pdf under a time-prefixed object name and presigns a GET link
func (s *MinioSharer) Share(ctx context.Context, name string, pdf []byte) (ShareResult, error) {
	now := s.now().UTC()
	objectName := fmt.Sprintf("%s/%d-%s", now.Format("2006/01/02"), now.UnixNano(), name)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(pdf), int64(len(pdf)), minio.PutObjectOptions{
		ContentType: PDFContentType,
	})
	if err != nil {
		return ShareResult{}, fmt.Errorf("failed to upload pdf: %w", err)
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, s.expiry, nil)
	if err != nil {
		return ShareResult{}, fmt.Errorf("failed to presign pdf url: %w", err)
	}

	expiresAt := now.Add(s.expiry)
	return ShareResult{
		Name:      name,
		Location:  s.bucket + "/" + objectName,
		URL:       presigned.String(),
		ExpiresAt: &expiresAt,
		Message:   "PDF ready to download",
	}, nil
}
