package photostore

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/camden-git/photowallbackend/models"
	"github.com/camden-git/photowallbackend/utils"
)

// ErrPhotoNotFound is returned by id-addressed operations when no image in the
// storage directory carries the requested id.
var ErrPhotoNotFound = errors.New("photo not found")

// maximum rename attempts when the deterministic filename is already taken
const maxFilenameAttempts = 100

// Store is a flat-file photo store: every image in dir is a record, joined
// with its JSON sidecar on each read. The directory listing is the index, so
// every operation re-scans storage and always reflects the current state.
// There is no locking; concurrent mutations of the same record are
// last-writer-wins, acceptable for single-admin event usage.
type Store struct {
	dir string
}

// NewStore creates a store over dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid photo directory '%s': %w", dir, err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory '%s': %w", absDir, err)
	}
	return &Store{dir: absDir}, nil
}

// Dir returns the absolute storage directory path.
func (s *Store) Dir() string {
	return s.dir
}

// listImageFiles enumerates the image files currently in the storage
// directory, skipping sidecars and anything without an accepted extension.
func (s *Store) listImageFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo directory '%s': %w", s.dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !utils.IsImageFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// readRecord joins an image file with its sidecar metadata. A missing or
// corrupt sidecar yields a recovered default record rather than an error.
func (s *Store) readRecord(filename string) models.Photo {
	sidecar := utils.SidecarPath(filepath.Join(s.dir, filename))
	photo, recovered := DecodeMetadataFile(sidecar, filename)
	if recovered {
		log.Printf("photostore: recovered default metadata for %s (sidecar missing or corrupt)", filename)
	}
	return photo
}

// List returns every photo in the storage directory, newest first. Hidden
// photos are excluded unless includeHidden is set.
func (s *Store) List(includeHidden bool) ([]models.Photo, error) {
	files, err := s.listImageFiles()
	if err != nil {
		return nil, err
	}

	photos := make([]models.Photo, 0, len(files))
	for _, filename := range files {
		photo := s.readRecord(filename)
		if !includeHidden && !photo.Visible {
			continue
		}
		photos = append(photos, photo)
	}

	sort.Slice(photos, func(i, j int) bool {
		return photos[i].CreatedOn.After(photos[j].CreatedOn)
	})

	return photos, nil
}

// CreateInfo carries the upload fields needed to persist a new photo.
type CreateInfo struct {
	OriginalName string
	GuestName    string
	Comment      string
	Size         int64
	Mimetype     string
}

// Create persists a new photo: the bytes are written under a temporary name,
// renamed to the deterministic display filename once the write succeeded, and
// only then is the metadata sidecar written. The returned record is the full
// stored state.
func (s *Store) Create(src io.Reader, info CreateInfo) (*models.Photo, error) {
	now := time.Now()
	ext := filepath.Ext(info.OriginalName)

	tempPath := filepath.Join(s.dir, tempFilename(ext))
	if err := s.writeImageFile(tempPath, src); err != nil {
		return nil, err
	}

	filename, err := s.commitFilename(tempPath, NewFilename(now, info.GuestName, ext))
	if err != nil {
		os.Remove(tempPath)
		return nil, err
	}
	finalPath := filepath.Join(s.dir, filename)

	guestName := strings.TrimSpace(info.GuestName)
	if guestName == "" {
		guestName = "Anonymous"
	}

	photo := &models.Photo{
		ID:           NewID(),
		Filename:     filename,
		OriginalName: info.OriginalName,
		GuestName:    guestName,
		Comment:      info.Comment,
		CreatedOn:    now,
		UploadTime:   now,
		Size:         info.Size,
		Mimetype:     info.Mimetype,
		Visible:      true,
	}

	// informational only; an undecodable image still uploads fine
	if imgInfo, err := utils.ExtractImageInfo(finalPath); err == nil {
		photo.TakenAt = imgInfo.TakenAt
		photo.Width = imgInfo.Width
		photo.Height = imgInfo.Height
	} else {
		log.Printf("photostore: could not extract image info for %s: %v", filename, err)
	}

	if err := s.writeSidecar(photo); err != nil {
		os.Remove(finalPath)
		return nil, err
	}

	return photo, nil
}

func (s *Store) writeImageFile(path string, src io.Reader) error {
	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file '%s': %w", path, err)
	}

	if _, err := io.Copy(outFile, src); err != nil {
		outFile.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write image data to '%s': %w", path, err)
	}

	if err := outFile.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to finalize image file '%s': %w", path, err)
	}
	return nil
}

// commitFilename renames the temp file to the wanted deterministic name,
// appending a numeric suffix when a same-second upload already claimed it.
// The sidecar path is derived from the stem alone, so a candidate is taken
// when either its image file or its sidecar exists: a .jpg and a .png from
// the same second must not share a stem or the second sidecar write would
// destroy the first photo's record.
func (s *Store) commitFilename(tempPath, wanted string) (string, error) {
	ext := filepath.Ext(wanted)
	stem := strings.TrimSuffix(wanted, ext)

	for i := 0; i < maxFilenameAttempts; i++ {
		candidate := wanted
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}
		finalPath := filepath.Join(s.dir, candidate)
		if _, err := os.Stat(finalPath); err == nil {
			continue
		}
		if _, err := os.Stat(utils.SidecarPath(finalPath)); err == nil {
			continue
		}
		if err := os.Rename(tempPath, finalPath); err != nil {
			return "", fmt.Errorf("failed to rename upload to '%s': %w", candidate, err)
		}
		return candidate, nil
	}
	return "", fmt.Errorf("could not find a free filename for '%s' after %d attempts", wanted, maxFilenameAttempts)
}

func (s *Store) writeSidecar(photo *models.Photo) error {
	data, err := EncodeMetadata(photo)
	if err != nil {
		return fmt.Errorf("failed to encode metadata for '%s': %w", photo.Filename, err)
	}
	sidecar := utils.SidecarPath(filepath.Join(s.dir, photo.Filename))
	if err := os.WriteFile(sidecar, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata sidecar '%s': %w", sidecar, err)
	}
	return nil
}

// FindByID locates a photo by its id with a linear scan over the storage
// directory. Fine at event scale (tens to low hundreds of photos).
func (s *Store) FindByID(id string) (*models.Photo, error) {
	files, err := s.listImageFiles()
	if err != nil {
		return nil, err
	}
	for _, filename := range files {
		photo := s.readRecord(filename)
		if photo.ID == id {
			return &photo, nil
		}
	}
	return nil, ErrPhotoNotFound
}

// UpdateRequest names the admin-editable metadata fields. Nil means leave the
// field untouched.
type UpdateRequest struct {
	GuestName *string
	Comment   *string
}

// Update applies the provided fields to the photo's metadata and stamps
// lastUpdated. An emptied guest name falls back to "Anonymous".
func (s *Store) Update(id string, req UpdateRequest) (*models.Photo, error) {
	photo, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.GuestName != nil {
		name := strings.TrimSpace(*req.GuestName)
		if name == "" {
			name = "Anonymous"
		}
		photo.GuestName = name
	}
	if req.Comment != nil {
		photo.Comment = strings.TrimSpace(*req.Comment)
	}

	now := time.Now()
	photo.LastUpdated = &now

	if err := s.writeSidecar(photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// SetVisibility toggles whether the photo appears in public listings and
// stamps lastUpdated.
func (s *Store) SetVisibility(id string, visible bool) (*models.Photo, error) {
	photo, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	photo.Visible = visible
	now := time.Now()
	photo.LastUpdated = &now

	if err := s.writeSidecar(photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// Delete removes the photo's image file and sidecar. Either file may already
// be gone; a missing file is not an error. No tombstone is kept.
func (s *Store) Delete(id string) (*models.DeletedPhoto, error) {
	photo, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	imagePath := filepath.Join(s.dir, photo.Filename)
	if err := os.Remove(imagePath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to delete image file '%s': %w", photo.Filename, err)
	}

	sidecar := utils.SidecarPath(imagePath)
	if err := os.Remove(sidecar); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to delete metadata sidecar for '%s': %w", photo.Filename, err)
	}

	return &models.DeletedPhoto{ID: photo.ID, Filename: photo.Filename}, nil
}
