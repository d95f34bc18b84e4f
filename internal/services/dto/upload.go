package dto

// FileItem is one multipart file part, fully read into memory.
type FileItem struct {
	Content      []byte
	OriginalName string
	ContentType  string // client-declared, untrusted
}

// UploadRequest is one guest batch as received by the upload endpoint.
type UploadRequest struct {
	GuestName string
	Message   string
	Consent   bool
	Files     []FileItem
}

// UploadedFile is the per-file success outcome.
type UploadedFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OriginalName string `json:"originalName"`
	ViewLink     string `json:"viewLink,omitempty"`
	SizeBytes    int64  `json:"sizeBytes"`
}

// FailedFile is the per-file failure outcome.
type FailedFile struct {
	OriginalName string `json:"originalName"`
	Error        string `json:"error"`
}

// BatchReport aggregates the batch outcome. SuccessCount+FailureCount always
// equals TotalCount once the upload loop has run.
type BatchReport struct {
	Uploaded     []UploadedFile `json:"uploaded"`
	Failed       []FailedFile   `json:"failed,omitempty"`
	SuccessCount int            `json:"successCount"`
	FailureCount int            `json:"failureCount"`
	TotalCount   int            `json:"totalCount"`
	TotalBytes   int64          `json:"totalBytes"`
}
