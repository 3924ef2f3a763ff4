package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/ideaboard/ideaboard-api/internal/services"
	"github.com/ideaboard/ideaboard-api/internal/utils"
)

// saveUploads writes the files of a multipart field to dir and returns their
// paths. Requests that are not multipart carry no files.
func saveUploads(c *gin.Context, dir, field string, max int) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	files := form.File[field]
	if len(files) > max {
		return nil, services.ErrTooManyImages
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		path, err := utils.TempUploadPath(dir, file.Filename)
		if err != nil {
			removeUploads(paths)
			return nil, err
		}
		if err := c.SaveUploadedFile(file, path); err != nil {
			removeUploads(paths)
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// saveUpload saves the first file of a single-file field. Returns "" when absent.
func saveUpload(c *gin.Context, dir, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}

	path, err := utils.TempUploadPath(dir, file.Filename)
	if err != nil {
		return "", err
	}
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

func removeUploads(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("remove temp upload", "path", path, "err", err)
		}
	}
}
