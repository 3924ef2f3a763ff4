package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// TempUploadPath returns a unique path under dir for an uploaded file,
// keeping the original extension.
func TempUploadPath(dir, filename string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	return filepath.Join(dir, uuid.NewString()+ext), nil
}
