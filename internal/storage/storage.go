// Package storage implements the image host: a local file goes in, a public URL comes out.
package storage

import (
	"context"
	"errors"
)

// ErrNoFile is returned when Upload is called without a path.
var ErrNoFile = errors.New("storage: no file to upload")

// UploadResult describes a hosted file
type UploadResult struct {
	URL string `json:"url"`
}

// Uploader hosts a local file and returns where it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (*UploadResult, error)
}
