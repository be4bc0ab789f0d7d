package workers

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/camden-git/photowallbackend/utils"
)

// ThumbnailJob asks for a thumbnail of one uploaded photo, addressed by its
// display filename within the photos directory.
type ThumbnailJob struct {
	Filename string
}

// ThumbnailGenerator renders slideshow thumbnails in the background so uploads
// return immediately. Thumbnails are best-effort: a failed job is logged and
// the front-end falls back to the original image.
type ThumbnailGenerator struct {
	JobQueue  chan ThumbnailJob
	PhotosDir string
	ThumbsDir string
	MaxSize   int
	Wg        sync.WaitGroup
	StopChan  chan struct{}
	Pending   map[string]bool
	Mutex     sync.Mutex
}

func NewThumbnailGenerator(photosDir, thumbsDir string, maxSize, queueSize, numWorkers int) *ThumbnailGenerator {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}

	gen := &ThumbnailGenerator{
		JobQueue:  make(chan ThumbnailJob, queueSize),
		PhotosDir: photosDir,
		ThumbsDir: thumbsDir,
		MaxSize:   maxSize,
		StopChan:  make(chan struct{}),
		Pending:   make(map[string]bool),
	}

	gen.Wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go gen.worker(i)
	}
	log.Printf("started %d thumbnail worker(s) with queue size %d", numWorkers, queueSize)

	return gen
}

func (tg *ThumbnailGenerator) worker(id int) {
	defer tg.Wg.Done()
	for {
		select {
		case job, ok := <-tg.JobQueue:
			if !ok {
				log.Printf("thumbnail worker %d stopping: job queue closed", id)
				return
			}
			tg.processJob(job)
			tg.Mutex.Lock()
			delete(tg.Pending, job.Filename)
			tg.Mutex.Unlock()

		case <-tg.StopChan:
			log.Printf("thumbnail worker %d stopping: stop signal received", id)
			return
		}
	}
}

func (tg *ThumbnailGenerator) processJob(job ThumbnailJob) {
	originalPath := filepath.Join(tg.PhotosDir, job.Filename)
	if _, err := os.Stat(originalPath); os.IsNotExist(err) {
		// photo may have been deleted while the job sat in the queue
		log.Printf("original file %s not found, skipping thumbnail generation", job.Filename)
		return
	}

	thumbPath, err := utils.GenerateThumbnail(originalPath, tg.ThumbsDir, tg.MaxSize)
	if err != nil {
		log.Printf("ERROR generating thumbnail for %s: %v", job.Filename, err)
		return
	}

	log.Printf("generated thumbnail for %s at %s", job.Filename, thumbPath)
}

// QueueJob enqueues a thumbnail job unless one for the same photo is already
// pending or the queue is full. Returns whether the job was accepted.
func (tg *ThumbnailGenerator) QueueJob(job ThumbnailJob) bool {
	tg.Mutex.Lock()
	if tg.Pending[job.Filename] {
		tg.Mutex.Unlock()
		return false
	}

	tg.Pending[job.Filename] = true
	tg.Mutex.Unlock()

	select {
	case tg.JobQueue <- job:
		return true
	default:
		log.Printf("WARNING: thumbnail job queue full, dropping job for %s", job.Filename)
		tg.Mutex.Lock()
		delete(tg.Pending, job.Filename)
		tg.Mutex.Unlock()
		return false
	}
}

// RemoveThumbnail deletes the thumbnail for a photo after the photo itself was
// removed. A thumbnail that was never generated is not an error.
func (tg *ThumbnailGenerator) RemoveThumbnail(filename string) {
	thumbPath := filepath.Join(tg.ThumbsDir, utils.ThumbnailFilename(filename))
	if err := os.Remove(thumbPath); err != nil && !os.IsNotExist(err) {
		log.Printf("ERROR removing thumbnail for %s: %v", filename, err)
	}
}

func (tg *ThumbnailGenerator) Stop() {
	log.Println("stopping thumbnail generator...")
	close(tg.StopChan)
	tg.Wg.Wait()
	log.Println("all thumbnail workers stopped")
}
