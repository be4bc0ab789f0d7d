package workers

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
)

func writeTestImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 640, 480))
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save test image: %v", err)
	}
}

func setupGenerator(t *testing.T) (*ThumbnailGenerator, string, string) {
	t.Helper()
	photosDir := t.TempDir()
	thumbsDir := t.TempDir()
	gen := NewThumbnailGenerator(photosDir, thumbsDir, 200, 10, 1)
	t.Cleanup(gen.Stop)
	return gen, photosDir, thumbsDir
}

// waitForFile polls until the path exists or the deadline passes.
func waitForFile(t *testing.T, path string) bool {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

func TestQueueJobGeneratesThumbnail(t *testing.T) {
	gen, photosDir, thumbsDir := setupGenerator(t)

	writeTestImage(t, filepath.Join(photosDir, "250614200509Alice.png"))

	if !gen.QueueJob(ThumbnailJob{Filename: "250614200509Alice.png"}) {
		t.Fatalf("QueueJob rejected the job")
	}

	thumbPath := filepath.Join(thumbsDir, "250614200509Alice.jpg")
	if !waitForFile(t, thumbPath) {
		t.Fatalf("thumbnail %s was not generated", thumbPath)
	}

	thumb, err := imaging.Open(thumbPath)
	if err != nil {
		t.Fatalf("open thumbnail: %v", err)
	}
	if b := thumb.Bounds(); b.Dx() > 200 || b.Dy() > 200 {
		t.Errorf("thumbnail is %dx%d, want both sides <= 200", b.Dx(), b.Dy())
	}
}

func TestQueueJobDeduplicatesPending(t *testing.T) {
	photosDir := t.TempDir()
	gen := &ThumbnailGenerator{
		JobQueue:  make(chan ThumbnailJob, 10),
		PhotosDir: photosDir,
		ThumbsDir: t.TempDir(),
		MaxSize:   200,
		StopChan:  make(chan struct{}),
		Pending:   make(map[string]bool),
	}
	// no workers running, so queued jobs stay pending

	if !gen.QueueJob(ThumbnailJob{Filename: "a.jpg"}) {
		t.Fatalf("first QueueJob rejected")
	}
	if gen.QueueJob(ThumbnailJob{Filename: "a.jpg"}) {
		t.Errorf("duplicate job accepted while pending")
	}
	if !gen.QueueJob(ThumbnailJob{Filename: "b.jpg"}) {
		t.Errorf("job for a different photo rejected")
	}
}

func TestMissingOriginalSkipped(t *testing.T) {
	gen, _, thumbsDir := setupGenerator(t)

	gen.QueueJob(ThumbnailJob{Filename: "ghost.jpg"})

	// give the worker a moment; no thumbnail may appear
	time.Sleep(100 * time.Millisecond)
	if _, err := os.Stat(filepath.Join(thumbsDir, "ghost.jpg")); !os.IsNotExist(err) {
		t.Errorf("thumbnail generated for missing original")
	}
}

func TestRemoveThumbnail(t *testing.T) {
	gen, _, thumbsDir := setupGenerator(t)

	thumbPath := filepath.Join(thumbsDir, "250614200509Alice.jpg")
	if err := os.WriteFile(thumbPath, []byte("thumb"), 0644); err != nil {
		t.Fatalf("write thumb: %v", err)
	}

	gen.RemoveThumbnail("250614200509Alice.png")
	if _, err := os.Stat(thumbPath); !os.IsNotExist(err) {
		t.Errorf("thumbnail still present after RemoveThumbnail")
	}

	// removing a thumbnail that never existed must not blow up
	gen.RemoveThumbnail("never-generated.jpg")
}
