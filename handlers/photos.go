package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/camden-git/photowallbackend/models"
	"github.com/camden-git/photowallbackend/photostore"
	"github.com/camden-git/photowallbackend/utils"
	"github.com/camden-git/photowallbackend/workers"
	"github.com/go-chi/chi/v5"
)

// 10 MiB per upload, enforced before the file is accepted
const maxUploadSize = 10 << 20

// slack for the non-file multipart fields when capping the request body
const multipartOverhead = 512 << 10

type PhotoHandler struct {
	Store  *photostore.Store
	Thumbs *workers.ThumbnailGenerator
	Auth   *AdminAuth
}

// ListPhotos handles GET /api/photos. Hidden photos are included only when an
// admin session asks for showAll=true; anyone else always gets the public view.
func (ph *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	includeHidden := r.URL.Query().Get("showAll") == "true" && ph.Auth.IsAdmin(r)

	photos, err := ph.Store.List(includeHidden)
	if err != nil {
		log.Printf("Error listing photos: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Failed to load photos",
			"photos":  []models.PhotoSummary{},
		})
		return
	}

	summaries := make([]models.PhotoSummary, 0, len(photos))
	for i := range photos {
		summaries = append(summaries, photos[i].Summary())
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"photos":  summaries,
	})
}

// UploadPhoto handles POST /api/upload: a multipart form with the image under
// "photo" plus optional guestName and comment fields.
func (ph *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeAPIError(w, http.StatusBadRequest, "File too large. Maximum size is 10MB.")
			return
		}
		writeAPIError(w, http.StatusBadRequest, "Failed to parse upload form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	mimetype := header.Header.Get("Content-Type")
	if !utils.IsAllowedMimeType(mimetype) {
		writeAPIError(w, http.StatusBadRequest, "Invalid file type. Only JPEG, PNG, and GIF are allowed.")
		return
	}
	if !utils.IsImageFile(header.Filename) {
		writeAPIError(w, http.StatusBadRequest, "Invalid file extension. Only JPEG, PNG, and GIF are allowed.")
		return
	}
	if header.Size > maxUploadSize {
		writeAPIError(w, http.StatusBadRequest, "File too large. Maximum size is 10MB.")
		return
	}

	photo, err := ph.Store.Create(file, photostore.CreateInfo{
		OriginalName: header.Filename,
		GuestName:    r.FormValue("guestName"),
		Comment:      r.FormValue("comment"),
		Size:         header.Size,
		Mimetype:     mimetype,
	})
	if err != nil {
		log.Printf("Upload error: %v", err)
		writeAPIError(w, http.StatusInternalServerError, "Upload failed. Please try again.")
		return
	}

	if ph.Thumbs != nil {
		ph.Thumbs.QueueJob(workers.ThumbnailJob{Filename: photo.Filename})
	}

	log.Printf("Photo uploaded: %s by %s", photo.Filename, photo.GuestName)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Photo uploaded successfully!",
		"filename": photo.Filename,
		"id":       photo.ID,
	})
}

// GetPhoto handles GET /api/admin/photos/{id}, returning the full record.
func (ph *PhotoHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "id")

	photo, err := ph.Store.FindByID(photoID)
	if err != nil {
		ph.writeStoreError(w, photoID, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"photo":   photo,
	})
}

type updatePhotoPayload struct {
	GuestName *string `json:"guestName"`
	Comment   *string `json:"comment"`
}

// UpdatePhoto handles PUT /api/admin/photos/{id}. Only the fields present in
// the payload are touched.
func (ph *PhotoHandler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "id")

	var payload updatePhotoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	photo, err := ph.Store.Update(photoID, photostore.UpdateRequest{
		GuestName: payload.GuestName,
		Comment:   payload.Comment,
	})
	if err != nil {
		ph.writeStoreError(w, photoID, err)
		return
	}

	log.Printf("Photo metadata updated by admin: %s (ID: %s)", photo.Filename, photoID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Photo updated successfully",
		"photo": map[string]interface{}{
			"id":          photo.ID,
			"filename":    photo.Filename,
			"guestName":   photo.GuestName,
			"comment":     photo.Comment,
			"createdOn":   photo.CreatedOn,
			"lastUpdated": photo.LastUpdated,
			"visible":     photo.Visible,
		},
	})
}

type visibilityPayload struct {
	Visible *bool `json:"visible"`
}

// SetPhotoVisibility handles PATCH /api/admin/photos/{id}/visibility.
func (ph *PhotoHandler) SetPhotoVisibility(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "id")

	var payload visibilityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Visible == nil {
		writeAPIError(w, http.StatusBadRequest, "Visibility must be true or false")
		return
	}

	photo, err := ph.Store.SetVisibility(photoID, *payload.Visible)
	if err != nil {
		ph.writeStoreError(w, photoID, err)
		return
	}

	state := "hidden"
	message := "Photo hidden successfully"
	if photo.Visible {
		state = "shown"
		message = "Photo shown successfully"
	}
	log.Printf("Photo %s by admin: %s (ID: %s)", state, photo.Filename, photoID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
		"photo": map[string]interface{}{
			"id":          photo.ID,
			"filename":    photo.Filename,
			"visible":     photo.Visible,
			"lastUpdated": photo.LastUpdated,
		},
	})
}

// DeletePhoto handles DELETE /api/admin/photos/{id}, removing the image, its
// sidecar, and any generated thumbnail.
func (ph *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "id")

	deleted, err := ph.Store.Delete(photoID)
	if err != nil {
		ph.writeStoreError(w, photoID, err)
		return
	}

	if ph.Thumbs != nil {
		ph.Thumbs.RemoveThumbnail(deleted.Filename)
	}

	log.Printf("Photo deleted by admin: %s (ID: %s)", deleted.Filename, photoID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "Photo deleted successfully",
		"deletedPhoto": deleted,
	})
}

// writeStoreError maps store failures onto the API error envelope.
func (ph *PhotoHandler) writeStoreError(w http.ResponseWriter, photoID string, err error) {
	if errors.Is(err, photostore.ErrPhotoNotFound) {
		writeAPIError(w, http.StatusNotFound, "Photo not found")
		return
	}
	log.Printf("Error accessing photo %s: %v", photoID, err)
	writeAPIError(w, http.StatusInternalServerError, "Failed to access photo")
}
