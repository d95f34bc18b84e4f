package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"capsule_backend/internal/logger"
	"capsule_backend/internal/services/dto"
	"capsule_backend/internal/storage"
	"capsule_backend/pkg/apperrors"
)

// UploadService accepts one guest batch and forwards every file to the remote
// storage folder.
type UploadService interface {
	// UploadBatch validates the request, checks the destination folder once,
	// then uploads each file independently. It returns a report when at least
	// one file succeeded and an *apperrors.AppError otherwise.
	UploadBatch(ctx context.Context, req *dto.UploadRequest) (*dto.BatchReport, error)
}

// UploadConfig carries the request-path limits and the destination folder.
type UploadConfig struct {
	FolderID    string
	MaxFileMB   int
	MaxFiles    int
	CallTimeout time.Duration // applied to every remote call
}

// allowedTypes is the declared-MIME allow-list. A missing declared type passes.
var allowedTypes = map[string]struct{}{
	"image/jpeg": {}, "image/png": {}, "image/gif": {}, "image/webp": {}, "image/bmp": {},
	"video/mp4": {}, "video/avi": {}, "video/mov": {}, "video/wmv": {}, "video/quicktime": {},
	"application/pdf": {}, "text/plain": {}, "application/zip": {},
}

const bytesPerMB = 1024 * 1024

type uploadService struct {
	store storage.Store
	cfg   UploadConfig
	now   func() time.Time
}

// NewUploadService builds the batch upload service.
func NewUploadService(store storage.Store, cfg UploadConfig) UploadService {
	if cfg.MaxFileMB <= 0 {
		cfg.MaxFileMB = 500
	}
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = 10
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 10 * time.Minute
	}
	return &uploadService{store: store, cfg: cfg, now: time.Now}
}

func (s *uploadService) UploadBatch(ctx context.Context, req *dto.UploadRequest) (*dto.BatchReport, error) {
	log := logger.FromContext(ctx)
	total := len(req.Files)
	log.Info("starting upload batch", "guest", req.GuestName, "files", total)

	// Input validation is fail-fast: the first violation rejects the whole
	// batch before any remote call.
	if total == 0 {
		return nil, apperrors.NewBadRequestError("No file was selected.")
	}
	if total > s.cfg.MaxFiles {
		return nil, apperrors.NewLimitExceededError(
			fmt.Sprintf("A maximum of %d files per upload is allowed.", s.cfg.MaxFiles))
	}
	if !req.Consent {
		return nil, apperrors.NewConsentRequiredError("Consent must be accepted before uploading.")
	}

	batchTime := s.now()
	remoteNames := make([]string, total)
	var totalBytes int64

	for i, f := range req.Files {
		if len(f.Content) == 0 {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("Empty file: %s", f.OriginalName))
		}
		if sizeMB := float64(len(f.Content)) / bytesPerMB; sizeMB > float64(s.cfg.MaxFileMB) {
			return nil, apperrors.NewLimitExceededError(
				fmt.Sprintf("File '%s' exceeds %dMB", f.OriginalName, s.cfg.MaxFileMB))
		}
		if f.ContentType != "" {
			if _, ok := allowedTypes[f.ContentType]; !ok {
				return nil, apperrors.NewBadRequestError(
					fmt.Sprintf("File type not allowed: %s", f.OriginalName))
			}
		}
		totalBytes += int64(len(f.Content))
		remoteNames[i] = BuildRemoteName(batchTime, req.GuestName, i+1, f.OriginalName)
	}

	// The cumulative cap intentionally scales with the file count, so a batch
	// of individually-valid files is never rejected for its total size.
	totalMB := float64(totalBytes) / bytesPerMB
	maxTotalMB := float64(s.cfg.MaxFileMB * total)
	if totalMB > maxTotalMB {
		return nil, apperrors.NewLimitExceededError(
			fmt.Sprintf("Batch size (%.1fMB) exceeds the limit (%.0fMB)", totalMB, maxTotalMB))
	}

	log.Info("batch validated", "total_mb", fmt.Sprintf("%.2f", totalMB))

	// One folder precheck per batch, never per file.
	folder, err := s.getFolder(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("destination folder found", "folder", folder.Name)

	report := &dto.BatchReport{TotalCount: total, TotalBytes: totalBytes}

	for i, f := range req.Files {
		obj, err := s.createFile(ctx, storage.FileMetadata{
			Name:     remoteNames[i],
			MimeType: f.ContentType,
			Description: fmt.Sprintf("Time capsule upload\nGuest: %s\nMessage: %s\nFile %d of %d",
				req.GuestName, req.Message, i+1, total),
		}, f.Content)
		if err != nil {
			// Fail-soft: record the failure and keep going so one bad file
			// never sinks the rest of the batch.
			log.Error("file upload failed", "file", f.OriginalName, "error", err)
			report.Failed = append(report.Failed, dto.FailedFile{
				OriginalName: f.OriginalName,
				Error:        remoteErrorMessage(err),
			})
			continue
		}

		log.Info("file uploaded", "file", f.OriginalName, "id", obj.ID)
		report.Uploaded = append(report.Uploaded, dto.UploadedFile{
			ID:           obj.ID,
			Name:         obj.Name,
			OriginalName: f.OriginalName,
			ViewLink:     obj.ViewLink,
			SizeBytes:    int64(len(f.Content)),
		})
	}

	report.SuccessCount = len(report.Uploaded)
	report.FailureCount = len(report.Failed)

	if report.SuccessCount == 0 {
		log.Error("all uploads in batch failed", "files", total)
		return nil, apperrors.New(apperrors.CodeBatchFailed, "upload",
			"All file uploads failed", http.StatusInternalServerError).
			WithDetails(report.Failed)
	}

	if report.FailureCount > 0 {
		log.Warn("partial upload", "succeeded", report.SuccessCount, "total", total)
	} else {
		log.Info("upload complete", "succeeded", report.SuccessCount, "total", total)
	}

	return report, nil
}

// getFolder runs the precheck under the per-call timeout and classifies its
// failure: a missing folder is a configuration problem, permission and
// credential failures keep their storage code, anything else is a generic
// external failure.
func (s *uploadService) getFolder(ctx context.Context) (*storage.Folder, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	folder, err := s.store.GetFolder(callCtx, s.cfg.FolderID)
	if err != nil {
		if apperrors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NewConfigurationError(err,
				"Configuration error: the storage folder was not found or is not accessible.")
		}
		msg := fmt.Sprintf("Failed to access the storage folder: %s", remoteErrorMessage(err))
		switch {
		case apperrors.Is(err, storage.ErrForbidden):
			return nil, apperrors.Wrap(err, apperrors.CodeForbidden, "storage", msg, http.StatusInternalServerError)
		case apperrors.Is(err, storage.ErrUnauthenticated):
			return nil, apperrors.Wrap(err, apperrors.CodeUnauthenticated, "storage", msg, http.StatusInternalServerError)
		default:
			return nil, apperrors.NewExternalServiceError(err, msg)
		}
	}
	return folder, nil
}

func (s *uploadService) createFile(ctx context.Context, meta storage.FileMetadata, content []byte) (*storage.Object, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()
	return s.store.CreateFile(callCtx, s.cfg.FolderID, meta, bytes.NewReader(content))
}

// remoteErrorMessage maps the storage failure taxonomy onto operator-facing
// text without leaking credential material.
func remoteErrorMessage(err error) string {
	switch {
	case apperrors.Is(err, storage.ErrNotFound):
		return "the folder or object was not found"
	case apperrors.Is(err, storage.ErrForbidden):
		return "the service account does not have access to the folder"
	case apperrors.Is(err, storage.ErrUnauthenticated):
		return "credentials are invalid or expired"
	case apperrors.Is(err, context.DeadlineExceeded):
		return "the storage service did not respond in time"
	default:
		return err.Error()
	}
}
