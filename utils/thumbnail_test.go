package utils

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func writeTestImage(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save test image: %v", err)
	}
}

func TestThumbnailFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"250614200509Alice.png", "250614200509Alice.jpg"},
		{"250614200509Bob.JPG", "250614200509Bob.jpg"},
		{"250614200509.gif", "250614200509.jpg"},
	}
	for _, tt := range tests {
		if got := ThumbnailFilename(tt.in); got != tt.want {
			t.Errorf("ThumbnailFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateThumbnail(t *testing.T) {
	dir := t.TempDir()
	originalPath := filepath.Join(dir, "original.png")
	writeTestImage(t, originalPath, 800, 600)

	thumbDir := filepath.Join(dir, "thumbs")
	thumbPath, err := GenerateThumbnail(originalPath, thumbDir, 200)
	if err != nil {
		t.Fatalf("GenerateThumbnail: %v", err)
	}

	if filepath.Base(thumbPath) != "original.jpg" {
		t.Errorf("thumbnail name = %s, want original.jpg", filepath.Base(thumbPath))
	}

	thumb, err := imaging.Open(thumbPath)
	if err != nil {
		t.Fatalf("open thumbnail: %v", err)
	}
	bounds := thumb.Bounds()
	if bounds.Dx() > 200 || bounds.Dy() > 200 {
		t.Errorf("thumbnail is %dx%d, want both sides <= 200", bounds.Dx(), bounds.Dy())
	}
	// aspect ratio preserved: 800x600 fitted into 200 is 200x150
	if bounds.Dx() != 200 || bounds.Dy() != 150 {
		t.Errorf("thumbnail is %dx%d, want 200x150", bounds.Dx(), bounds.Dy())
	}
}

func TestGenerateThumbnailUnreadableImage(t *testing.T) {
	dir := t.TempDir()
	if _, err := GenerateThumbnail(filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "thumbs"), 200); err == nil {
		t.Errorf("expected error for missing original")
	}
}
