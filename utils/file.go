package utils

import (
	"path/filepath"
	"strings"
)

// the slideshow only ever shows what guests can upload, so the accepted
// extension set matches the upload MIME filter exactly
var supportedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// IsImageFile checks if the filename has an accepted image extension
func IsImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return supportedImageExtensions[ext]
}

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// IsAllowedMimeType checks the declared upload MIME type against the accepted set
func IsAllowedMimeType(mimetype string) bool {
	return allowedMimeTypes[strings.ToLower(strings.TrimSpace(mimetype))]
}

// SidecarPath returns the metadata sidecar path for an image path, replacing
// the image extension with .json
func SidecarPath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	return strings.TrimSuffix(imagePath, ext) + ".json"
}
