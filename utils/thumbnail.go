package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ThumbnailFilename maps an image filename to its thumbnail name. Thumbnails
// are always JPEG and share the image's stem, so no lookup table is needed to
// serve or delete them.
func ThumbnailFilename(imageFilename string) string {
	ext := filepath.Ext(imageFilename)
	return strings.TrimSuffix(imageFilename, ext) + ".jpg"
}

// GenerateThumbnail creates a JPEG thumbnail for the image, fitted within
// maxSize on the longest side, and returns the path it was saved to.
func GenerateThumbnail(originalImagePath, thumbnailDir string, maxSize int) (string, error) {
	if err := os.MkdirAll(thumbnailDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory %s: %w", thumbnailDir, err)
	}

	img, err := imaging.Open(originalImagePath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", originalImagePath, err)
	}

	thumb := imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)

	thumbnailSavePath := filepath.Join(thumbnailDir, ThumbnailFilename(filepath.Base(originalImagePath)))
	if err := imaging.Save(thumb, thumbnailSavePath, imaging.JPEGQuality(80)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail to %s: %w", thumbnailSavePath, err)
	}

	return thumbnailSavePath, nil
}
