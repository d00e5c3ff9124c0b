package files

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-tailor-backend/internal/extract"
	"resume-tailor-backend/internal/shared/storage/object"
	"resume-tailor-backend/internal/shared/util"
)

const storageBucket = "resumes"

// Service coordinates upload validation, text extraction, object storage and
// persistence of uploaded resume files.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// UploadInput carries the raw bytes and metadata of an uploaded file.
type UploadInput struct {
	Filename string
	MimeType string
	Data     []byte
}

// UploadResult describes a stored file.
type UploadResult struct {
	FileID      string
	Filename    string
	SizeBytes   int64
	TextContent string
}

// Upload validates the file type, extracts plain text, writes the original
// bytes to the object store and persists the record.
func (s *Service) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	if len(in.Data) == 0 {
		return UploadResult{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}
	if !extract.SupportedType(in.MimeType) && !supportedExtension(in.Filename) {
		return UploadResult{}, fmt.Errorf("%w: unsupported file type", ErrInvalidInput)
	}

	text, err := extract.Text(in.Data, in.MimeType, in.Filename)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			return UploadResult{}, fmt.Errorf("%w: unsupported file type", ErrInvalidInput)
		}
		return UploadResult{}, fmt.Errorf("extract text: %w", err)
	}

	fileID := uuid.NewString()
	safeName, err := util.SanitizeFileName(in.Filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	storagePath := fileID + storageExtension(safeName)
	if _, err := s.Store.Upload(ctx, storageBucket, storagePath, in.Data, in.MimeType); err != nil {
		return UploadResult{}, fmt.Errorf("store file: %w", err)
	}

	file := StoredFile{
		ID:          fileID,
		Filename:    safeName,
		SizeBytes:   int64(len(in.Data)),
		MimeType:    in.MimeType,
		StoragePath: storagePath,
		TextContent: text,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, file); err != nil {
		return UploadResult{}, fmt.Errorf("persist file: %w", err)
	}

	return UploadResult{
		FileID:      file.ID,
		Filename:    file.Filename,
		SizeBytes:   file.SizeBytes,
		TextContent: file.TextContent,
	}, nil
}

// Get returns the stored file record for the given ID.
func (s *Service) Get(ctx context.Context, fileID string) (StoredFile, error) {
	if strings.TrimSpace(fileID) == "" {
		return StoredFile{}, fmt.Errorf("%w: file id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, fileID)
}

func supportedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".docx", ".doc", ".txt":
		return true
	}
	return false
}

func storageExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".bin"
	}
	return ext
}
