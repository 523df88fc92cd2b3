package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/places-service/pkg/util"
)

// allowed maps acceptable image extensions.
var allowed = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// Stager writes incoming image attachments to the upload directory
// under a generated name, before any business logic runs.
type Stager struct {
	dir      string
	maxBytes int64
}

// NewStager builds a stager rooted at dir.
func NewStager(dir string, maxBytes int64) *Stager {
	return &Stager{dir: dir, maxBytes: maxBytes}
}

// StagedFile is the handle for a staged image. The caller that consumes
// it owns cleanup: Remove must be invoked on any failure path after
// staging succeeded.
type StagedFile struct {
	Path string
}

// Remove deletes the staged file. Safe to call more than once.
func (f *StagedFile) Remove() error {
	if f == nil || f.Path == "" {
		return nil
	}
	err := os.Remove(f.Path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Stage persists the attachment and returns its handle. A nil header
// means the request did not carry the required image field.
func (s *Stager) Stage(header *multipart.FileHeader) (*StagedFile, error) {
	if header == nil {
		return nil, apperrors.NewValidationError("an image file is required", nil)
	}
	if s.maxBytes > 0 && header.Size > s.maxBytes {
		return nil, apperrors.NewValidationError("image exceeds the maximum allowed size", nil)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowed[ext]; !ok {
		return nil, apperrors.NewValidationError("image must be a png or jpeg file", nil)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create staged file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write staged file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("close staged file: %w", err)
	}

	return &StagedFile{Path: path}, nil
}
