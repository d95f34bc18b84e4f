package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"capsule_backend/internal/services"
	"capsule_backend/internal/services/dto"
	"capsule_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// UploadHandler serves the guest upload form and the batch upload endpoint.
type UploadHandler struct {
	service services.UploadService
	maxMB   int
}

func NewUploadHandler(service services.UploadService, maxMB int) *UploadHandler {
	return &UploadHandler{service: service, maxMB: maxMB}
}

// RegisterRoutes mounts the public upload surface on the engine root.
func (h *UploadHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Root)
	r.GET("/upload", h.Form)
	r.POST("/upload", h.Upload)
}

// Root godoc
// @Summary Redirect to the upload form
// @Tags upload
// @Success 302
// @Router / [get]
func (h *UploadHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/upload")
}

// Form godoc
// @Summary Render the upload form
// @Tags upload
// @Produce html
// @Success 200
// @Router /upload [get]
func (h *UploadHandler) Form(c *gin.Context) {
	c.HTML(http.StatusOK, "upload.html", gin.H{
		"maxMB": h.maxMB,
	})
}

// Upload godoc
// @Summary Upload a batch of time-capsule files
// @Description Accepts 1-10 files plus guest name, message and consent, and forwards each file to the configured Drive folder. Partial failures are reported alongside successes.
// @Tags upload
// @Accept multipart/form-data
// @Produce html
// @Param files formData file true "Files to upload (repeat the field for multiple files)"
// @Param name formData string false "Guest display name" default(Guest)
// @Param message formData string false "Message stored with the files"
// @Param consent formData boolean true "Consent checkbox"
// @Success 200 {string} string "Rendered result page"
// @Failure 400 {object} apperrors.ErrorResponse "No files, missing consent, empty file or disallowed type"
// @Failure 413 {object} apperrors.ErrorResponse "Too many files, file or batch too large"
// @Failure 500 {object} apperrors.ErrorResponse "Storage misconfiguration or all uploads failed"
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form."))
		return
	}

	guestName := c.DefaultPostForm("name", services.DefaultGuestName)
	if guestName == "" {
		guestName = services.DefaultGuestName
	}

	req := &dto.UploadRequest{
		GuestName: guestName,
		Message:   c.PostForm("message"),
		Consent:   parseCheckbox(c.PostForm("consent")),
	}

	for _, fh := range form.File["files"] {
		content, err := readPart(fh)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError(
				fmt.Sprintf("Failed to read file: %s", fh.Filename)))
			return
		}
		req.Files = append(req.Files, dto.FileItem{
			Content:      content,
			OriginalName: fh.Filename,
			ContentType:  fh.Header.Get("Content-Type"),
		})
	}

	report, err := h.service.UploadBatch(c.Request.Context(), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "upload.html", gin.H{
		"maxMB":     h.maxMB,
		"ok":        true,
		"guestName": guestName,
		"report":    report,
	})
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// parseCheckbox accepts the values browsers and form libraries send for a
// ticked checkbox.
func parseCheckbox(v string) bool {
	switch v {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
