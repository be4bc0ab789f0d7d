package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/camden-git/photowallbackend/qr"
)

type QRHandler struct {
	Registry *qr.Registry
}

// GetURL handles GET /api/qr-url. Readable by anyone so the display screen
// can render the code without a session.
func (qh *QRHandler) GetURL(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     qh.Registry.Get(),
	})
}

type setURLPayload struct {
	URL string `json:"url"`
}

// SetURL handles POST /api/admin/qr-url, replacing the upload URL guests scan.
func (qh *QRHandler) SetURL(w http.ResponseWriter, r *http.Request) {
	var payload setURLPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.URL == "" {
		writeAPIError(w, http.StatusBadRequest, "URL is required")
		return
	}

	newURL, err := qh.Registry.Set(payload.URL)
	if err != nil {
		if errors.Is(err, qr.ErrInvalidURL) {
			writeAPIError(w, http.StatusBadRequest, "Invalid URL format")
			return
		}
		writeAPIError(w, http.StatusInternalServerError, "Failed to update QR Code URL")
		return
	}

	log.Printf("QR Code URL updated to: %s", newURL)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "QR Code URL updated successfully",
		"url":     newURL,
	})
}
