package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fintrack-backend/application/ports"
	"fintrack-backend/domain"
	apperrors "fintrack-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// allowedFileTypes maps accepted extensions to their content types.
var allowedFileTypes = map[string]string{
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"csv":  "text/csv",
	"json": "application/json",
	"txt":  "text/plain",
}

const defaultPreviewRows = 10

// FileService validates and stores receipt/attachment uploads and notifies
// on each successful upload.
type FileService struct {
	store         ports.ObjectStore
	notifications *NotificationService
	presignExpiry time.Duration
	logger        *zap.Logger
}

// NewFileService creates a file service.
func NewFileService(store ports.ObjectStore, notifications *NotificationService, presignExpiry time.Duration, logger *zap.Logger) *FileService {
	return &FileService{
		store:         store,
		notifications: notifications,
		presignExpiry: presignExpiry,
		logger:        logger,
	}
}

// SupportedFileTypes lists the accepted extensions.
func (s *FileService) SupportedFileTypes() []string {
	types := make([]string, 0, len(allowedFileTypes))
	for ext := range allowedFileTypes {
		types = append(types, ext)
	}
	return types
}

// ValidateFileType reports whether the filename's extension is accepted.
func (s *FileService) ValidateFileType(filename string) bool {
	_, ok := allowedFileTypes[extension(filename)]
	return ok
}

// ContentType resolves the content type for a filename.
func (s *FileService) ContentType(filename string) string {
	if ct, ok := allowedFileTypes[extension(filename)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// GenerateKey builds a collision-safe object key that still carries the
// original filename: YYYYMMDD_HHMMSS_{uuid8}_{name}.
func (s *FileService) GenerateKey(originalFilename string) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	nonce := uuid.New().String()[:8]
	return fmt.Sprintf("%s_%s_%s", timestamp, nonce, originalFilename)
}

// Upload validates, stores, and announces a new object. The notification
// legs are best effort; their outcome rides along in the returned result.
func (s *FileService) Upload(ctx context.Context, filename string, content []byte, uploadedBy string) (*domain.UploadResult, *SendResult, error) {
	if filename == "" {
		return nil, nil, apperrors.NewValidationError("no filename provided").WithCode("INVALID_FILE")
	}
	if !s.ValidateFileType(filename) {
		supported := strings.Join(s.SupportedFileTypes(), ", ")
		return nil, nil, apperrors.NewValidationError(
			fmt.Sprintf("file type not supported, allowed: %s", supported),
		).WithCode("INVALID_FILE_TYPE")
	}
	if len(content) == 0 {
		return nil, nil, apperrors.NewValidationError("file is empty").WithCode("EMPTY_FILE")
	}

	key := s.GenerateKey(filename)
	contentType := s.ContentType(filename)

	if err := s.store.Put(ctx, key, contentType, content); err != nil {
		return nil, nil, err
	}

	result := &domain.UploadResult{
		Key:              key,
		OriginalFilename: filename,
		SizeBytes:        int64(len(content)),
		ContentType:      contentType,
		UploadedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	var fanout *SendResult
	if s.notifications != nil {
		var sendErr error
		fanout, sendErr = s.notifications.Send(ctx, "New File Uploaded", map[string]string{
			"file_name":   result.OriginalFilename,
			"file_key":    result.Key,
			"file_size":   fmt.Sprintf("%d bytes", result.SizeBytes),
			"uploaded_by": uploadedBy,
			"uploaded_at": result.UploadedAt,
		}, nil)
		if sendErr != nil {
			s.logger.Warn("upload notification was not sent",
				zap.String("key", key),
				zap.Error(sendErr),
			)
		}
	}

	return result, fanout, nil
}

// List returns bucket objects with the original filename parsed out of each
// generated key.
func (s *FileService) List(ctx context.Context) ([]domain.StoredObject, error) {
	objects, err := s.store.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range objects {
		objects[i].OriginalFilename = OriginalFilename(objects[i].Key)
	}
	return objects, nil
}

// Download reads an object's content.
func (s *FileService) Download(ctx context.Context, key string) ([]byte, string, error) {
	content, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}
	return content, s.ContentType(key), nil
}

// PresignURL returns a temporary download URL for a key.
func (s *FileService) PresignURL(ctx context.Context, key string) (string, error) {
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", apperrors.NewNotFoundError("file")
	}
	return s.store.PresignGet(ctx, key, s.presignExpiry)
}

// Delete removes an object, reporting not found for unknown keys.
func (s *FileService) Delete(ctx context.Context, key string) error {
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFoundError("file")
	}
	return s.store.Delete(ctx, key)
}

// PreviewCSV parses the head of a stored CSV object.
func (s *FileService) PreviewCSV(ctx context.Context, key string, maxRows int) (*domain.CSVPreview, error) {
	if extension(key) != "csv" {
		return nil, apperrors.NewValidationError("file is not a CSV file")
	}
	if maxRows <= 0 {
		maxRows = defaultPreviewRows
	}

	content, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewValidationError("failed to parse CSV content").WithCause(err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewValidationError("CSV file is empty")
	}

	sample := rows[1:]
	if len(sample) > maxRows {
		sample = sample[:maxRows]
	}

	return &domain.CSVPreview{
		Key:         key,
		Headers:     rows[0],
		SampleRows:  sample,
		PreviewRows: len(sample),
		TotalRows:   len(rows) - 1,
	}, nil
}

// OriginalFilename strips the timestamp and nonce prefix off a generated
// object key. Keys that were not generated by this service pass through.
func OriginalFilename(key string) string {
	parts := strings.SplitN(key, "_", 4)
	if len(parts) == 4 {
		return parts[3]
	}
	return key
}

func extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
