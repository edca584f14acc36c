package storage

import (
	"io"
	"os"
	"path/filepath"

	scrapererrors "ddgscraper/pkg/errors"
)

// chunkSize is the write granularity used for progress reporting
const chunkSize = 32 * 1024

// ProgressFunc is called after each chunk with the bytes written so far
type ProgressFunc func(written int64)

// Manager owns the output root and the per-query subdirectories below it
type Manager struct {
	outputDir string
}

// NewManager creates a storage manager for outputDir. It does not touch the
// filesystem; call ResetOutputRoot before the first save.
func NewManager(outputDir string) *Manager {
	return &Manager{outputDir: outputDir}
}

// ResetOutputRoot deletes everything under the output root and recreates it
// empty. Prior content is lost for good.
func (m *Manager) ResetOutputRoot() error {
	if err := os.RemoveAll(m.outputDir); err != nil {
		return scrapererrors.Wrap(scrapererrors.ErrorTypeFilesystem, err, "failed to remove output directory")
	}
	if err := os.MkdirAll(m.outputDir, 0755); err != nil {
		return scrapererrors.Wrap(scrapererrors.ErrorTypeFilesystem, err, "failed to create output directory")
	}
	return nil
}

// EnsureDir creates <root>/<subdir> if missing and returns its path.
// subdir must stay below the root; "..", absolute and empty names are rejected.
func (m *Manager) EnsureDir(subdir string) (string, error) {
	if !filepath.IsLocal(subdir) {
		return "", scrapererrors.New(scrapererrors.ErrorTypeFilesystem, "query directory escapes the output root: "+subdir)
	}
	dir := filepath.Join(m.outputDir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", scrapererrors.Wrap(scrapererrors.ErrorTypeFilesystem, err, "failed to create query directory")
	}
	return dir, nil
}

// Save writes r to <root>/<subdir>/<filename> through a temporary file and
// returns the final path. progress may be nil.
func (m *Manager) Save(r io.Reader, subdir, filename string, progress ProgressFunc) (string, error) {
	dir, err := m.EnsureDir(subdir)
	if err != nil {
		return "", err
	}

	filePath := filepath.Join(dir, filename)
	tempFile := filePath + ".tmp"

	out, err := os.Create(tempFile)
	if err != nil {
		return "", scrapererrors.Wrap(scrapererrors.ErrorTypeFilesystem, err, "failed to create temporary file")
	}

	// Wrapping both ends keeps io.CopyBuffer from bypassing the chunked writes
	w := &progressWriter{w: out, progress: progress}
	_, err = io.CopyBuffer(w, struct{ io.Reader }{r}, make([]byte, chunkSize))
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return "", scrapererrors.Wrap(scrapererrors.ErrorTypeFilesystem, err, "failed to save image data")
	}
	if closeErr != nil {
		os.Remove(tempFile)
		return "", scrapererrors.Wrap(scrapererrors.ErrorTypeFilesystem, closeErr, "failed to close file")
	}

	if err := os.Rename(tempFile, filePath); err != nil {
		os.Remove(tempFile)
		return "", scrapererrors.Wrap(scrapererrors.ErrorTypeFilesystem, err, "failed to rename temporary file")
	}

	return filePath, nil
}

// GetOutputDir returns the output root path
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}

type progressWriter struct {
	w        io.Writer
	written  int64
	progress ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	if p.progress != nil {
		p.progress(p.written)
	}
	return n, err
}
