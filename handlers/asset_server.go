package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AssetServer creates a handler to serve uploaded content from a specific
// subdirectory of the upload storage root. The route prefix must match the
// subDir, e.g.:
//
//	r.Get("/uploads/photos/*", AssetServer(cfg.UploadStoragePath, "photos"))
//	r.Get("/uploads/thumbs/*", AssetServer(cfg.UploadStoragePath, "thumbs"))
func AssetServer(baseStoragePath, subDir string) http.HandlerFunc {
	fullAssetDirPath := filepath.Join(baseStoragePath, subDir)
	fullAssetDirPath = filepath.Clean(fullAssetDirPath)
	log.Printf("Serving uploads for '/uploads/%s/*' from directory: %s", subDir, fullAssetDirPath)

	if !strings.HasPrefix(fullAssetDirPath, baseStoragePath) {
		log.Fatalf("FATAL: Upload subdirectory '%s' resolved outside storage path '%s'. Resolved path: '%s'", subDir, baseStoragePath, fullAssetDirPath)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		// e.g. for request /uploads/photos/image.jpg, extract "image.jpg"
		routePrefix := "/uploads/" + subDir + "/"
		relativePath := strings.TrimPrefix(r.URL.Path, routePrefix)

		if relativePath == "" || strings.Contains(relativePath, "..") {
			writeAPIError(w, http.StatusBadRequest, "Invalid photo path")
			return
		}

		requestedPath := filepath.Join(fullAssetDirPath, relativePath)
		cleanedPath := filepath.Clean(requestedPath)

		if !strings.HasPrefix(cleanedPath, fullAssetDirPath) {
			log.Printf("SECURITY: Attempted access outside upload directory: Request='%s', Resolved='%s', Allowed Base='%s'",
				r.URL.Path, cleanedPath, fullAssetDirPath)
			writeAPIError(w, http.StatusForbidden, "Forbidden")
			return
		}

		if _, err := os.Stat(cleanedPath); os.IsNotExist(err) {
			writeAPIError(w, http.StatusNotFound, "Photo not found")
			return
		} else if err != nil {
			log.Printf("Error stating upload file %s: %v", cleanedPath, err)
			writeAPIError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		// let the slideshow and browsers cache event photos for a day
		cacheDuration := 24 * time.Hour
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cacheDuration.Seconds())))
		w.Header().Set("Expires", time.Now().Add(cacheDuration).Format(http.TimeFormat))

		http.ServeFile(w, r, cleanedPath)
	}
}
