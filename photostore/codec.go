package photostore

import (
	"encoding/json"
	"os"
	"time"

	"github.com/camden-git/photowallbackend/models"
)

// sidecarRecord mirrors models.Photo with a pointer Visible so that sidecars
// written before the visibility feature existed still decode as visible.
type sidecarRecord struct {
	ID           string     `json:"id"`
	Filename     string     `json:"filename"`
	OriginalName string     `json:"originalName"`
	GuestName    string     `json:"guestName"`
	Comment      string     `json:"comment"`
	CreatedOn    time.Time  `json:"createdOn"`
	UploadTime   time.Time  `json:"uploadTime"`
	Size         int64      `json:"size"`
	Mimetype     string     `json:"mimetype"`
	Visible      *bool      `json:"visible"`
	LastUpdated  *time.Time `json:"lastUpdated,omitempty"`
	TakenAt      *int64     `json:"takenAt,omitempty"`
	Width        *int       `json:"width,omitempty"`
	Height       *int       `json:"height,omitempty"`
}

// EncodeMetadata serializes a photo record to the sidecar's on-disk form,
// pretty-printed so the files stay hand-editable during an event.
func EncodeMetadata(photo *models.Photo) ([]byte, error) {
	return json.MarshalIndent(photo, "", "  ")
}

// DecodeMetadata parses sidecar bytes into a photo record. Malformed input is
// not an error: the second return value reports whether the record had to be
// recovered with defaults so that a broken sidecar never takes down a listing.
func DecodeMetadata(data []byte, filename string) (models.Photo, bool) {
	var raw sidecarRecord
	if err := json.Unmarshal(data, &raw); err != nil || raw.ID == "" {
		return defaultRecord(filename), true
	}

	visible := true
	if raw.Visible != nil {
		visible = *raw.Visible
	}

	return models.Photo{
		ID:           raw.ID,
		Filename:     raw.Filename,
		OriginalName: raw.OriginalName,
		GuestName:    raw.GuestName,
		Comment:      raw.Comment,
		CreatedOn:    raw.CreatedOn,
		UploadTime:   raw.UploadTime,
		Size:         raw.Size,
		Mimetype:     raw.Mimetype,
		Visible:      visible,
		LastUpdated:  raw.LastUpdated,
		TakenAt:      raw.TakenAt,
		Width:        raw.Width,
		Height:       raw.Height,
	}, false
}

// DecodeMetadataFile reads and decodes the sidecar at path. A missing or
// unreadable sidecar yields a recovered default record, same as corrupt bytes.
func DecodeMetadataFile(path, filename string) (models.Photo, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultRecord(filename), true
	}
	return DecodeMetadata(data, filename)
}

// defaultRecord synthesizes a usable record for an image whose sidecar is
// missing or unparseable. The fallback id keeps such entries addressable
// without colliding with ids assigned at upload.
func defaultRecord(filename string) models.Photo {
	now := time.Now()
	return models.Photo{
		ID:           fallbackID(),
		Filename:     filename,
		OriginalName: filename,
		GuestName:    "Unknown",
		Comment:      "",
		CreatedOn:    now,
		UploadTime:   now,
		Size:         0,
		Mimetype:     "image/jpeg",
		Visible:      true,
	}
}
