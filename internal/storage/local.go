package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// LocalStore implements Store on the local filesystem. It exists for
// development without Drive credentials: folder IDs map to subdirectories
// under the base path.
type LocalStore struct {
	basePath string
	baseURL  string
}

// NewLocalStore creates a filesystem-backed store.
func NewLocalStore(cfg Config) (*LocalStore, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./uploads"
	}

	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStore{
		basePath: cfg.BasePath,
		baseURL:  cfg.BaseURL,
	}, nil
}

// GetFolder checks the folder directory exists.
func (s *LocalStore) GetFolder(ctx context.Context, folderID string) (*Folder, error) {
	dir := filepath.Join(s.basePath, folderID)

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: folder %s", ErrNotFound, folderID)
		}
		return nil, fmt.Errorf("failed to stat folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a folder", ErrNotFound, folderID)
	}

	return &Folder{ID: folderID, Name: filepath.Base(dir)}, nil
}

// CreateFile writes the object under the folder directory.
func (s *LocalStore) CreateFile(ctx context.Context, folderID string, meta FileMetadata, content io.Reader) (*Object, error) {
	dir := filepath.Join(s.basePath, folderID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: folder %s", ErrNotFound, folderID)
	}

	// Object names must be plain file names; anything carrying a separator or
	// a dot segment could land outside the base path.
	if meta.Name == "" || meta.Name == "." || meta.Name == ".." || meta.Name != filepath.Base(meta.Name) {
		return nil, fmt.Errorf("invalid object name: %q", meta.Name)
	}

	fullPath := filepath.Join(dir, meta.Name)
	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	obj := &Object{
		ID:   filepath.Join(folderID, meta.Name),
		Name: meta.Name,
	}
	if s.baseURL != "" {
		obj.ViewLink = fmt.Sprintf("%s/%s/%s", s.baseURL, folderID, url.PathEscape(meta.Name))
	}
	return obj, nil
}
