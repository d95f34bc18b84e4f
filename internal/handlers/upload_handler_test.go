package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"capsule_backend/internal/handlers"
	"capsule_backend/internal/services"
	"capsule_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	folderErr error
	createErr error
	created   int
}

func (f *fakeStore) GetFolder(ctx context.Context, folderID string) (*storage.Folder, error) {
	if f.folderErr != nil {
		return nil, f.folderErr
	}
	return &storage.Folder{ID: folderID, Name: "Capsule"}, nil
}

func (f *fakeStore) CreateFile(ctx context.Context, folderID string, meta storage.FileMetadata, content io.Reader) (*storage.Object, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	return &storage.Object{
		ID:       fmt.Sprintf("id-%d", f.created),
		Name:     meta.Name,
		ViewLink: "https://drive.example/view/" + meta.Name,
	}, nil
}

func newTestRouter(t *testing.T, store storage.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.NewUploadService(store, services.UploadConfig{
		FolderID:    "folder-123",
		MaxFileMB:   500,
		MaxFiles:    10,
		CallTimeout: time.Minute,
	})

	router := gin.New()
	router.LoadHTMLGlob("../../web/templates/*")
	handlers.NewUploadHandler(svc, 500).RegisterRoutes(router)
	return router
}

// addFilePart attaches a file part with an explicit content type, which
// multipart.Writer.CreateFormFile cannot do.
func addFilePart(t *testing.T, w *multipart.Writer, filename, contentType string, data []byte) {
	t.Helper()
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
}

func postUpload(t *testing.T, router *gin.Engine, build func(w *multipart.Writer)) *httptest.ResponseRecorder {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	build(writer)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRootRedirectsToUploadForm(t *testing.T) {
	router := newTestRouter(t, &fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/upload", rec.Header().Get("Location"))
}

func TestFormRendersWithSizeLimit(t *testing.T) {
	router := newTestRouter(t, &fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/upload", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "500MB")
}

func TestUploadHappyPathRendersResultPage(t *testing.T) {
	store := &fakeStore{}
	router := newTestRouter(t, store)

	rec := postUpload(t, router, func(w *multipart.Writer) {
		_ = w.WriteField("name", "Ana")
		_ = w.WriteField("message", "hello future")
		_ = w.WriteField("consent", "on")
		addFilePart(t, w, "pic.png", "image/png", []byte("png-bytes"))
		addFilePart(t, w, "note.txt", "text/plain", []byte("dear future"))
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, store.created)
	body := rec.Body.String()
	assert.Contains(t, body, "2 of 2 file(s) uploaded")
	assert.Contains(t, body, "pic.png")
	assert.Contains(t, body, "Ana")
}

func TestUploadWithoutConsentIsRejected(t *testing.T) {
	store := &fakeStore{}
	router := newTestRouter(t, store)

	rec := postUpload(t, router, func(w *multipart.Writer) {
		addFilePart(t, w, "pic.png", "image/png", []byte("png-bytes"))
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONSENT_REQUIRED")
	assert.Zero(t, store.created)
}

func TestUploadWithoutFilesIsRejected(t *testing.T) {
	router := newTestRouter(t, &fakeStore{})

	rec := postUpload(t, router, func(w *multipart.Writer) {
		_ = w.WriteField("consent", "on")
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No file was selected")
}

func TestUploadDisallowedTypeIsRejected(t *testing.T) {
	router := newTestRouter(t, &fakeStore{})

	rec := postUpload(t, router, func(w *multipart.Writer) {
		_ = w.WriteField("consent", "on")
		addFilePart(t, w, "evil.exe", "application/x-msdownload", []byte("mz"))
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadAllFailuresReturnsServerError(t *testing.T) {
	store := &fakeStore{createErr: storage.ErrForbidden}
	router := newTestRouter(t, store)

	rec := postUpload(t, router, func(w *multipart.Writer) {
		_ = w.WriteField("consent", "on")
		addFilePart(t, w, "pic.png", "image/png", []byte("png-bytes"))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "BATCH_FAILED")
}

func TestUploadFolderMissingReturnsConfigurationError(t *testing.T) {
	store := &fakeStore{folderErr: fmt.Errorf("%w: gone", storage.ErrNotFound)}
	router := newTestRouter(t, store)

	rec := postUpload(t, router, func(w *multipart.Writer) {
		_ = w.WriteField("consent", "on")
		addFilePart(t, w, "pic.png", "image/png", []byte("png-bytes"))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONFIGURATION_ERROR")
	assert.Zero(t, store.created)
}

func TestUploadPartialFailureStillRendersSuccessPage(t *testing.T) {
	store := &firstCallFailsStore{}
	router := newTestRouter(t, store)

	rec := postUpload(t, router, func(w *multipart.Writer) {
		_ = w.WriteField("consent", "on")
		addFilePart(t, w, "a.png", "image/png", []byte("a"))
		addFilePart(t, w, "b.png", "image/png", []byte("b"))
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "1 of 2 file(s) uploaded")
	assert.Contains(t, body, "Failed:")
	assert.Contains(t, body, "a.png")
}

type firstCallFailsStore struct {
	calls int
}

func (f *firstCallFailsStore) GetFolder(ctx context.Context, folderID string) (*storage.Folder, error) {
	return &storage.Folder{ID: folderID, Name: "Capsule"}, nil
}

func (f *firstCallFailsStore) CreateFile(ctx context.Context, folderID string, meta storage.FileMetadata, content io.Reader) (*storage.Object, error) {
	f.calls++
	if f.calls == 1 {
		return nil, storage.ErrForbidden
	}
	return &storage.Object{ID: "id-2", Name: meta.Name}, nil
}
