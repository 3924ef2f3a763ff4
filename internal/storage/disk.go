package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskUploader keeps images on the local filesystem under a directory the
// router serves statically. Used when no object store is configured.
type DiskUploader struct {
	dir     string
	baseURL string
}

func NewDiskUploader(dir, baseURL string) *DiskUploader {
	return &DiskUploader{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload copies the file into the served directory
func (u *DiskUploader) Upload(ctx context.Context, localPath string) (*UploadResult, error) {
	if localPath == "" {
		return nil, ErrNoFile
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(localPath), err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(localPath))
	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, fmt.Errorf("copy %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", name, err)
	}

	return &UploadResult{URL: u.baseURL + "/" + name}, nil
}
