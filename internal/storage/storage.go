package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Folder describes the destination folder as reported by the remote service.
type Folder struct {
	ID      string
	Name    string
	DriveID string // non-empty when the folder lives on a shared drive
}

// Object is a stored file as reported by the remote service.
type Object struct {
	ID       string
	Name     string
	ViewLink string
}

// FileMetadata is what the caller controls about a stored object.
type FileMetadata struct {
	Name        string
	Description string
	MimeType    string
}

// Store is the narrow capability the upload path needs from the remote storage
// service: confirm the destination folder, create one object in it.
type Store interface {
	// GetFolder confirms the folder exists and is reachable.
	GetFolder(ctx context.Context, folderID string) (*Folder, error)

	// CreateFile stores one object under the folder and returns its identity.
	CreateFile(ctx context.Context, folderID string, meta FileMetadata, content io.Reader) (*Object, error)
}

// Remote failure taxonomy. Implementations wrap these so callers can classify
// with errors.Is without knowing the backend.
var (
	ErrNotFound        = errors.New("storage: not found")
	ErrForbidden       = errors.New("storage: permission denied")
	ErrUnauthenticated = errors.New("storage: invalid or expired credentials")
)

// Config holds storage configuration.
type Config struct {
	Type               string // drive, local
	BasePath           string // For local storage
	BaseURL            string // Public URL base for local storage
	ServiceAccountJSON string // Inline credential blob, takes priority
	ServiceAccountFile string // Credential file path
}

// NewStore creates a storage backend based on configuration.
func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Type {
	case "drive":
		return NewDriveStore(ctx, cfg)
	case "local":
		return NewLocalStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
