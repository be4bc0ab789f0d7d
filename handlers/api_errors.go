package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// APIError is the standardized failure response body. Every endpoint reports
// failures as {"success":false,"message":...} so the front-end handles them
// uniformly.
type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

// writeAPIError writes the standardized failure envelope with the given HTTP
// status and message.
func writeAPIError(w http.ResponseWriter, httpStatus int, message string) {
	writeJSON(w, httpStatus, APIError{Success: false, Message: message})
}
