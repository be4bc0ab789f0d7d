package models

import "time"

// Photo is the full metadata record stored in a JSON sidecar next to each
// uploaded image. The sidecar shares the image's base name with a .json
// extension; that pairing is the only link between image bytes and metadata.
type Photo struct {
	ID           string     `json:"id"`
	Filename     string     `json:"filename"`
	OriginalName string     `json:"originalName"`
	GuestName    string     `json:"guestName"`
	Comment      string     `json:"comment"`
	CreatedOn    time.Time  `json:"createdOn"`
	UploadTime   time.Time  `json:"uploadTime"`
	Size         int64      `json:"size"`
	Mimetype     string     `json:"mimetype"`
	Visible      bool       `json:"visible"`
	LastUpdated  *time.Time `json:"lastUpdated,omitempty"`

	// optional EXIF-derived fields, absent when extraction failed
	TakenAt *int64 `json:"takenAt,omitempty"`
	Width   *int   `json:"width,omitempty"`
	Height  *int   `json:"height,omitempty"`
}

// PhotoSummary is the listing shape returned to the slideshow and admin grid.
type PhotoSummary struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	GuestName string    `json:"guestName"`
	Comment   string    `json:"comment"`
	CreatedOn time.Time `json:"createdOn"`
	Visible   bool      `json:"visible"`
}

// Summary projects the record down to the fields exposed by photo listings.
func (p *Photo) Summary() PhotoSummary {
	return PhotoSummary{
		ID:        p.ID,
		Filename:  p.Filename,
		GuestName: p.GuestName,
		Comment:   p.Comment,
		CreatedOn: p.CreatedOn,
		Visible:   p.Visible,
	}
}

// DeletedPhoto identifies a record removed by an admin delete.
type DeletedPhoto struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}
