package downloader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"ddgscraper/pkg/duckduckgo"
	scrapererrors "ddgscraper/pkg/errors"
	"ddgscraper/pkg/logger"
	"ddgscraper/pkg/storage"
	"ddgscraper/pkg/ui"
)

// timestampLayout renders as YYYYMMDD_HHMMSS
const timestampLayout = "20060102_150405"

// ImageFetcher fetches a single image
type ImageFetcher interface {
	DownloadImage(ctx context.Context, imageURL string) (*duckduckgo.Image, error)
}

// ImageStorage persists image bytes below the output root
type ImageStorage interface {
	EnsureDir(subdir string) (string, error)
	Save(r io.Reader, subdir, filename string, progress storage.ProgressFunc) (string, error)
}

// ProgressReporter creates a progress bar per file
type ProgressReporter interface {
	Track(label string, total int64) ui.Progress
}

// Downloader saves images one at a time and owns the per-query file index
type Downloader struct {
	client   ImageFetcher
	storage  ImageStorage
	progress ProgressReporter
	logger   logger.Logger
	now      func() time.Time

	idx int
}

// New creates a Downloader. progress and log may be nil.
func New(client ImageFetcher, store ImageStorage, progress ProgressReporter, log logger.Logger) *Downloader {
	if log == nil {
		log = logger.GetLogger()
	}
	if progress == nil {
		progress = ui.NewReporter(io.Discard, true)
	}

	return &Downloader{
		client:   client,
		storage:  store,
		progress: progress,
		logger:   log,
		now:      time.Now,
	}
}

// ResetCount restarts file numbering at 0 for the next query
func (d *Downloader) ResetCount() {
	d.idx = 0
}

// Count returns the number of files saved since the last reset
func (d *Downloader) Count() int {
	return d.idx
}

// Download fetches imageURL into <root>/<subdir>. It reports whether a file
// was saved; the error is set only for filesystem failures, which must abort
// the run. Network errors and unsupported content types just return false.
func (d *Downloader) Download(ctx context.Context, imageURL, subdir string) (bool, error) {
	if _, err := d.storage.EnsureDir(subdir); err != nil {
		return false, err
	}

	img, err := d.client.DownloadImage(ctx, imageURL)
	if err != nil {
		d.logger.WithError(err).WithField("url", imageURL).Warn("downloading failed")
		return false, nil
	}

	filename, ok := FileName(img.ContentType, d.idx, d.now())
	if !ok {
		err := &scrapererrors.Error{
			Type:    scrapererrors.ErrorTypeContentType,
			Message: fmt.Sprintf("unsupported content type %q", img.ContentType),
			Code:    img.StatusCode,
		}
		d.logger.WithError(err).WithField("url", imageURL).Debug("unsupported content type")
		return false, nil
	}

	bar := d.progress.Track(fmt.Sprintf("downloading image from url: %s", imageURL), int64(len(img.Data)))
	path, err := d.storage.Save(bytes.NewReader(img.Data), subdir, filename, bar.Update)
	bar.Done()
	if err != nil {
		d.logger.WithError(err).WithField("url", imageURL).Error("failed to save image")
		return false, err
	}

	d.idx++
	d.logger.InfoWithFields("saved file", map[string]interface{}{
		"path": path,
		"size": len(img.Data),
	})

	return true, nil
}

// FileName derives {idx}_{YYYYMMDD_HHMMSS}.{ext} from the declared content
// type. Only image/jpeg and image/png are accepted, matched exactly.
func FileName(contentType string, idx int, now time.Time) (string, bool) {
	var ext string
	switch contentType {
	case "image/jpeg":
		ext = "jpg"
	case "image/png":
		ext = "png"
	default:
		return "", false
	}
	return fmt.Sprintf("%d_%s.%s", idx, now.Format(timestampLayout), ext), true
}
