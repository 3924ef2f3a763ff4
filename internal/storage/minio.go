package storage

import (
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ideaboard/ideaboard-api/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioUploader stores images in an S3-compatible bucket
type MinioUploader struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioUploader creates a client for the configured endpoint. No request is
// made until EnsureBucket or Upload is called.
func NewMinioUploader(cfg *config.Config) (*MinioUploader, error) {
	if strings.TrimSpace(cfg.MinioEndpoint) == "" {
		return nil, fmt.Errorf("minio endpoint is not configured")
	}
	if strings.TrimSpace(cfg.MinioBucket) == "" {
		return nil, fmt.Errorf("minio bucket is not configured")
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	publicURL := cfg.MinioPublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.MinioEndpoint, cfg.MinioBucket)
	}

	return &MinioUploader{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (u *MinioUploader) EnsureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", u.bucket, err)
	}
	if exists {
		return nil
	}
	if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", u.bucket, err)
	}
	return nil
}

// Upload puts the file under a dated, collision-free object name
func (u *MinioUploader) Upload(ctx context.Context, localPath string) (*UploadResult, error) {
	if localPath == "" {
		return nil, ErrNoFile
	}

	objectName := u.ObjectName(localPath, time.Now())
	_, err := u.client.FPutObject(ctx, u.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType(localPath),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filepath.Base(localPath), err)
	}

	return &UploadResult{URL: u.ObjectURL(objectName)}, nil
}

// ObjectName returns the bucket key used for a local file
func (u *MinioUploader) ObjectName(localPath string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	return path.Join("images", at.UTC().Format("2006/01/02"), uuid.NewString()+ext)
}

// ObjectURL returns the public URL of an object
func (u *MinioUploader) ObjectURL(objectName string) string {
	return u.publicURL + "/" + objectName
}

func contentType(localPath string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
