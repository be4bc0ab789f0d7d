package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultPhotosSubDir = "photos"
	DefaultThumbsSubDir = "thumbs"
)

const (
	defaultPort                = "3000"
	defaultAdminPassword       = "LucasAdmin" // TODO: require ADMIN_PASSWORD once the event kiosks get an env file
	defaultThumbnailMaxSize    = 480
	defaultThumbnailQueueSize  = 100
	defaultNumThumbnailWorkers = 2
)

type Config struct {
	// HTTP settings
	Port       string
	PublicHost string // host guests reach the server on, used for the default QR target

	// upload storage configuration
	UploadStoragePath string // primary root for uploaded content
	PhotosPath        string // full-calculated path for original images + sidecars
	ThumbsPath        string // full-calculated path for generated thumbnails

	// static front-end (slideshow, upload form, admin page)
	PublicDir string

	// admin authentication
	AdminPassword string

	// thumbnail generation settings
	ThumbnailMaxSize int

	// worker settings
	ThumbnailQueueSize  int
	NumThumbnailWorkers int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	uploadStorage := getEnvOrDefault("UPLOAD_STORAGE_PATH", filepath.Join(".", "uploads"))
	absUploadStorage, err := filepath.Abs(uploadStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for upload storage '%s': %w", uploadStorage, err)
	}

	photosSubDir := getEnvOrDefault("PHOTOS_SUBDIR", DefaultPhotosSubDir)
	absPhotosPath := filepath.Join(absUploadStorage, photosSubDir)

	thumbsSubDir := getEnvOrDefault("THUMBS_SUBDIR", DefaultThumbsSubDir)
	absThumbsPath := filepath.Join(absUploadStorage, thumbsSubDir)

	publicDir := getEnvOrDefault("PUBLIC_DIR", "public")
	absPublicDir, err := filepath.Abs(publicDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for public dir '%s': %w", publicDir, err)
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Printf("Warning: ADMIN_PASSWORD not set, using built-in default")
		adminPassword = defaultAdminPassword
	}

	cfg := Config{
		Port:                getEnvOrDefault("PORT", defaultPort),
		PublicHost:          getEnvOrDefault("PUBLIC_HOST", "localhost"),
		UploadStoragePath:   absUploadStorage,
		PhotosPath:          absPhotosPath,
		ThumbsPath:          absThumbsPath,
		PublicDir:           absPublicDir,
		AdminPassword:       adminPassword,
		ThumbnailMaxSize:    getEnvIntOrDefault("THUMBNAIL_MAX_SIZE", defaultThumbnailMaxSize),
		ThumbnailQueueSize:  getEnvIntOrDefault("THUMBNAIL_QUEUE_SIZE", defaultThumbnailQueueSize),
		NumThumbnailWorkers: getEnvIntOrDefault("NUM_THUMBNAIL_WORKERS", defaultNumThumbnailWorkers),
	}

	return cfg, nil
}
