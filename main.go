package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/camden-git/photowallbackend/config"
	"github.com/camden-git/photowallbackend/handlers"
	"github.com/camden-git/photowallbackend/photostore"
	"github.com/camden-git/photowallbackend/qr"
	"github.com/camden-git/photowallbackend/workers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.PhotosPath, cfg.ThumbsPath}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	store, err := photostore.NewStore(cfg.PhotosPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize photo store: %v", err)
	}

	adminAuth, err := handlers.NewAdminAuth(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize admin auth: %v", err)
	}

	log.Printf("Initializing thumbnail worker pool (Workers: %d, Queue Size: %d)...", cfg.NumThumbnailWorkers, cfg.ThumbnailQueueSize)
	thumbGen := workers.NewThumbnailGenerator(cfg.PhotosPath, cfg.ThumbsPath, cfg.ThumbnailMaxSize, cfg.ThumbnailQueueSize, cfg.NumThumbnailWorkers)
	defer thumbGen.Stop()

	defaultQRTarget := fmt.Sprintf("http://%s:%s/upload.html", cfg.PublicHost, cfg.Port)
	qrRegistry := qr.NewRegistry(defaultQRTarget)

	log.Printf("Storing photos in: %s", cfg.PhotosPath)
	log.Printf("Storing thumbnails in: %s", cfg.ThumbsPath)
	log.Printf("Thumbnail max size (longest side): %dpx", cfg.ThumbnailMaxSize)
	log.Printf("Default QR target: %s", defaultQRTarget)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	photoHandler := &handlers.PhotoHandler{Store: store, Thumbs: thumbGen, Auth: adminAuth}
	authHandler := &handlers.AuthHandler{Auth: adminAuth}
	qrHandler := &handlers.QRHandler{Registry: qrRegistry}

	r.Route("/api", func(r chi.Router) {
		r.Get("/photos", photoHandler.ListPhotos)
		r.Post("/upload", photoHandler.UploadPhoto)
		r.Get("/qr-url", qrHandler.GetURL)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/status", authHandler.Status)

			r.Group(func(r chi.Router) {
				r.Use(func(next http.Handler) http.Handler {
					return handlers.RequireAdmin(adminAuth, next)
				})
				r.Get("/photos/{id}", photoHandler.GetPhoto)
				r.Put("/photos/{id}", photoHandler.UpdatePhoto)
				r.Patch("/photos/{id}/visibility", photoHandler.SetPhotoVisibility)
				r.Delete("/photos/{id}", photoHandler.DeletePhoto)
				r.Post("/qr-url", qrHandler.SetURL)
			})
		})
	})

	photosSubDir := filepath.Base(cfg.PhotosPath)
	r.Get(fmt.Sprintf("/uploads/%s/*", photosSubDir), handlers.AssetServer(cfg.UploadStoragePath, photosSubDir))

	thumbsSubDir := filepath.Base(cfg.ThumbsPath)
	r.Get(fmt.Sprintf("/uploads/%s/*", thumbsSubDir), handlers.AssetServer(cfg.UploadStoragePath, thumbsSubDir))

	if _, err := os.Stat(cfg.PublicDir); err == nil {
		log.Printf("Serving front-end from: %s", cfg.PublicDir)
		r.Handle("/*", http.FileServer(http.Dir(cfg.PublicDir)))
	} else {
		log.Printf("Warning: public dir %s not found, front-end not served", cfg.PublicDir)
	}

	serverAddr := ":" + cfg.Port
	fmt.Printf("Photowall server starting on http://localhost:%s\n", cfg.Port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
