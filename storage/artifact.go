package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactName returns the artifact file name for a video ID.
func ArtifactName(videoID string) string {
	return fmt.Sprintf("transcript_%s.txt", videoID)
}

// Writer persists flattened transcripts as plain-text artifacts, one
// file per video. Writes go through a temp file in the target directory
// followed by a rename, so a reader never observes a partial artifact.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir. An empty dir means the
// current directory.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir}
}

// Path returns the artifact path for a video ID.
func (w *Writer) Path(videoID string) string {
	return filepath.Join(w.dir, ArtifactName(videoID))
}

// Write persists text as the artifact for videoID and returns the final
// path. The artifact contains exactly text, no header or footer.
func (w *Writer) Write(videoID, text string) (string, error) {
	if videoID == "" {
		return "", &StorageError{Op: "write", Err: ErrInvalidInput}
	}

	path := w.Path(videoID)
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", &StorageError{Op: "write", Path: path, Err: fmt.Errorf("create directory: %w", err)}
	}

	tmpFile, err := os.CreateTemp(w.dir, ".ytscribe-*.tmp")
	if err != nil {
		return "", &StorageError{Op: "write", Path: path, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.WriteString(text); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", &StorageError{Op: "write", Path: path, Err: fmt.Errorf("sync: %w", err)}
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", &StorageError{Op: "write", Path: path, Err: fmt.Errorf("close: %w", err)}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Best effort cleanup
		return "", &StorageError{Op: "write", Path: path, Err: fmt.Errorf("rename: %w", err)}
	}

	return path, nil
}

// Read returns the artifact text for videoID. A missing artifact is
// reported as ErrNotFound.
func (w *Writer) Read(videoID string) (string, error) {
	path := w.Path(videoID)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &StorageError{Op: "read", Path: path, Err: ErrNotFound}
		}
		return "", &StorageError{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}
