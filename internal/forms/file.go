package forms

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

const (
	MiB = 1 << 20

	MaxAttachmentSize     int64 = 10 * MiB
	MaxProfilePictureSize int64 = 5 * MiB
	MaxImageSize          int64 = 5 * MiB
)

var (
	ImageTypes      = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}
	AttachmentTypes = []string{
		".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx", ".txt", ".zip",
		".jpg", ".jpeg", ".png", ".webp", ".gif",
	}
)

// CheckFile rejects a file larger than limit or whose extension is not in
// accepted. A file of exactly limit bytes is accepted. An empty accepted list
// allows any type.
func CheckFile(name string, size, limit int64, accepted []string) error {
	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if size > limit {
		return fmt.Errorf("file must be at most %s", humanSize(limit))
	}
	if len(accepted) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range accepted {
		if ext == a {
			return nil
		}
	}
	return fmt.Errorf("file type %q is not allowed", ext)
}

func humanSize(n int64) string {
	if n%MiB == 0 {
		return fmt.Sprintf("%dMB", n/MiB)
	}
	return fmt.Sprintf("%d bytes", n)
}

// CheckUpload runs CheckFile on an upload part and reports a failure as a
// field error keyed by the part's form field.
func CheckUpload(f client.File, limit int64, accepted []string) error {
	if f.Reader == nil {
		return apperror.Validation(map[string]string{f.Field: "file is required"})
	}
	if err := CheckFile(f.Name, f.Size, limit, accepted); err != nil {
		return apperror.Validation(map[string]string{f.Field: err.Error()})
	}
	return nil
}

// OpenUpload opens a multipart file header as an upload part. A nil header
// yields an empty part, which CheckUpload reports as missing.
func OpenUpload(fh *multipart.FileHeader, field string) (client.File, io.Closer, error) {
	if fh == nil {
		return client.File{Field: field}, io.NopCloser(nil), nil
	}
	f, err := fh.Open()
	if err != nil {
		return client.File{}, nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	return client.File{Field: field, Name: fh.Filename, Size: fh.Size, Reader: f}, f, nil
}
