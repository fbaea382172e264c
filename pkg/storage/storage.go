package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a handle has no blob behind it.
var ErrNotFound = errors.New("blob not found")

// Store persists binary blobs under opaque handles. Handles are generated by
// the caller and never derived from user input.
type Store interface {
	// Write persists the reader's content under the handle and returns the
	// number of bytes written.
	Write(handle string, r io.Reader) (int64, error)
	// Open returns the blob content and its size, or ErrNotFound.
	Open(handle string) (io.ReadCloser, int64, error)
	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(handle string) error
	// Exists reports whether a blob is present for the handle.
	Exists(handle string) bool
}

// DiskStore keeps blobs as flat files inside a single directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the uploads directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// path rejects handles that could escape the uploads directory.
func (s *DiskStore) path(handle string) (string, error) {
	if handle == "" || strings.ContainsAny(handle, "/\\") || strings.Contains(handle, "..") {
		return "", fmt.Errorf("invalid blob handle %q", handle)
	}
	return filepath.Join(s.dir, handle), nil
}

func (s *DiskStore) Write(handle string, r io.Reader) (int64, error) {
	p, err := s.path(handle)
	if err != nil {
		return 0, err
	}
	f, err := os.Create(p)
	if err != nil {
		return 0, fmt.Errorf("create blob: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(p)
		return 0, fmt.Errorf("write blob: %w", err)
	}
	return n, nil
}

func (s *DiskStore) Open(handle string) (io.ReadCloser, int64, error) {
	p, err := s.path(handle)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("open blob: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat blob: %w", err)
	}
	return f, info.Size(), nil
}

func (s *DiskStore) Delete(handle string) error {
	p, err := s.path(handle)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

func (s *DiskStore) Exists(handle string) bool {
	p, err := s.path(handle)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}
