package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveStore implements Store against the Google Drive v3 API using a service
// account. Shared drives are supported on every call.
type DriveStore struct {
	svc *drive.Service
}

// NewDriveStore creates a Drive-backed store from service-account credentials.
func NewDriveStore(ctx context.Context, cfg Config) (*DriveStore, error) {
	data, err := LoadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := drive.NewService(ctx,
		option.WithCredentialsJSON(data),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveStore{svc: svc}, nil
}

// NewDriveStoreFromService wraps an existing drive service. Used by diagnostics
// that share one authenticated client across several checks.
func NewDriveStoreFromService(svc *drive.Service) *DriveStore {
	return &DriveStore{svc: svc}
}

// GetFolder fetches the folder metadata.
func (s *DriveStore) GetFolder(ctx context.Context, folderID string) (*Folder, error) {
	f, err := s.svc.Files.Get(folderID).
		SupportsAllDrives(true).
		Fields("id", "name", "driveId").
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapDriveError(err)
	}

	return &Folder{ID: f.Id, Name: f.Name, DriveID: f.DriveId}, nil
}

// CreateFile uploads one object into the folder. The SDK handles chunking for
// large payloads; we only pass the declared content type through.
func (s *DriveStore) CreateFile(ctx context.Context, folderID string, meta FileMetadata, content io.Reader) (*Object, error) {
	f := &drive.File{
		Name:        meta.Name,
		Parents:     []string{folderID},
		Description: meta.Description,
	}

	call := s.svc.Files.Create(f).
		SupportsAllDrives(true).
		Fields("id", "name", "webViewLink").
		Context(ctx)

	if meta.MimeType != "" {
		call = call.Media(content, googleapi.ContentType(meta.MimeType))
	} else {
		call = call.Media(content)
	}

	created, err := call.Do()
	if err != nil {
		return nil, mapDriveError(err)
	}

	return &Object{ID: created.Id, Name: created.Name, ViewLink: created.WebViewLink}, nil
}

// mapDriveError folds googleapi status codes into the package taxonomy.
func mapDriveError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrForbidden, err)
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", ErrUnauthenticated, err)
		}
	}
	return err
}
