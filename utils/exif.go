package utils

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// ImageInfo holds the informational fields extracted from an uploaded image:
// pixel dimensions from the decoded header and the EXIF capture time when the
// camera recorded one.
type ImageInfo struct {
	Width   *int
	Height  *int
	TakenAt *int64
}

// ExtractImageInfo reads dimensions and EXIF capture time from an image file.
// Phone uploads frequently lack EXIF data entirely; only the file open itself
// is treated as an error.
func ExtractImageInfo(filePath string) (*ImageInfo, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("exif: failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	info := &ImageInfo{}

	config, _, err := image.DecodeConfig(file)
	if err == nil {
		w, h := config.Width, config.Height
		info.Width = &w
		info.Height = &h
	} else {
		log.Printf("exif: could not decode dimensions of %s: %v", filePath, err)
	}

	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("exif: failed to seek file %s: %w", filePath, err)
	}

	exifData, err := exif.Decode(file)
	if err != nil {
		// not an error, the image simply has no usable EXIF block
		return info, nil
	}

	if dt, err := exifData.DateTime(); err == nil {
		ts := dt.Unix()
		info.TakenAt = &ts
	}

	return info, nil
}
