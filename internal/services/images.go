package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ideaboard/ideaboard-api/internal/storage"
)

// ErrImageUpload marks a failure of the image host, as opposed to a
// validation or store failure.
var ErrImageUpload = errors.New("failed to upload image")

// uploadImages hosts each local file in order and returns the URLs.
func uploadImages(ctx context.Context, uploader storage.Uploader, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return []string{}, nil
	}
	if uploader == nil {
		return nil, fmt.Errorf("%w: no image host configured", ErrImageUpload)
	}

	urls := make([]string, 0, len(paths))
	for _, path := range paths {
		result, err := uploader.Upload(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
		}
		if result == nil || result.URL == "" {
			return nil, fmt.Errorf("%w: image host returned no url", ErrImageUpload)
		}
		urls = append(urls, result.URL)
	}
	return urls, nil
}
