package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"fintrack-backend/domain"
	apperrors "fintrack-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockObjectStore is a testify mock for ports.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key, contentType string, body []byte) error {
	args := m.Called(ctx, key, contentType, body)
	return args.Error(0)
}

func (m *MockObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockObjectStore) List(ctx context.Context, prefix string) ([]domain.StoredObject, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoredObject), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func newFileService(store *MockObjectStore) *FileService {
	return NewFileService(store, nil, 15*time.Minute, zap.NewNop())
}

func TestFileService_GenerateKey_Format(t *testing.T) {
	service := newFileService(new(MockObjectStore))

	key := service.GenerateKey("receipt.pdf")

	// YYYYMMDD_HHMMSS_{8 hex chars}_{original name}
	assert.Regexp(t, regexp.MustCompile(`^\d{8}_\d{6}_[0-9a-f]{8}_receipt\.pdf$`), key)
	assert.Equal(t, "receipt.pdf", OriginalFilename(key))
}

func TestFileService_ValidateFileType(t *testing.T) {
	service := newFileService(new(MockObjectStore))

	assert.True(t, service.ValidateFileType("statement.CSV"))
	assert.True(t, service.ValidateFileType("receipt.jpeg"))
	assert.False(t, service.ValidateFileType("malware.exe"))
	assert.False(t, service.ValidateFileType("noextension"))
}

func TestFileService_Upload_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStore := new(MockObjectStore)
	service := newFileService(mockStore)

	content := []byte("%PDF-1.4 fake")
	mockStore.On("Put", ctx, mock.AnythingOfType("string"), "application/pdf", content).Return(nil)

	// Act
	result, fanout, err := service.Upload(ctx, "receipt.pdf", content, "user123")

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, fanout)
	assert.Equal(t, "receipt.pdf", result.OriginalFilename)
	assert.Equal(t, int64(len(content)), result.SizeBytes)
	assert.Equal(t, "application/pdf", result.ContentType)
	mockStore.AssertExpectations(t)
}

func TestFileService_Upload_SucceedsWhenFanoutFails(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStore := new(MockObjectStore)
	notifications := newNotificationService(new(MockTopicPublisher), new(MockMessageQueue), new(MockIdentityProvider), false)
	service := NewFileService(mockStore, notifications, time.Hour, zap.NewNop())

	content := []byte("%PDF-1.4 fake")
	mockStore.On("Put", ctx, mock.AnythingOfType("string"), "application/pdf", content).Return(nil)

	// Act
	result, fanout, err := service.Upload(ctx, "receipt.pdf", content, "user123")

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, fanout)
	assert.Equal(t, "receipt.pdf", result.OriginalFilename)
	mockStore.AssertExpectations(t)
}

func TestFileService_Upload_RejectsUnsupportedType(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockObjectStore)
	service := newFileService(mockStore)

	_, _, err := service.Upload(ctx, "script.sh", []byte("#!/bin/sh"), "user123")

	assert.Error(t, err)
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, "INVALID_FILE_TYPE", appErr.Code)
	mockStore.AssertNotCalled(t, "Put")
}

func TestFileService_Upload_RejectsEmptyContent(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockObjectStore)
	service := newFileService(mockStore)

	_, _, err := service.Upload(ctx, "receipt.pdf", nil, "user123")

	assert.Error(t, err)
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, "EMPTY_FILE", appErr.Code)
	mockStore.AssertNotCalled(t, "Put")
}

func TestFileService_List_ParsesOriginalFilenames(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockObjectStore)
	service := newFileService(mockStore)

	mockStore.On("List", ctx, "").Return([]domain.StoredObject{
		{Key: "20240301_120000_ab12cd34_receipt.pdf"},
		{Key: "legacy-object.txt"},
	}, nil)

	objects, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, "receipt.pdf", objects[0].OriginalFilename)
	assert.Equal(t, "legacy-object.txt", objects[1].OriginalFilename)
}

func TestFileService_PresignURL_MissingKeyIsNotFound(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockObjectStore)
	service := newFileService(mockStore)

	mockStore.On("Exists", ctx, "missing.pdf").Return(false, nil)

	_, err := service.PresignURL(ctx, "missing.pdf")

	assert.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	mockStore.AssertNotCalled(t, "PresignGet")
}

func TestFileService_Delete_MissingKeyIsNotFound(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockObjectStore)
	service := newFileService(mockStore)

	mockStore.On("Exists", ctx, "missing.pdf").Return(false, nil)

	err := service.Delete(ctx, "missing.pdf")

	assert.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	mockStore.AssertNotCalled(t, "Delete")
}

func TestFileService_PreviewCSV(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockObjectStore)
	service := newFileService(mockStore)

	csvContent := []byte("date,amount,category\n2024-03-01,12.00,groceries\n2024-03-02,7.50,coffee\n2024-03-03,99.00,travel\n")
	mockStore.On("Get", ctx, "data.csv").Return(csvContent, nil)

	preview, err := service.PreviewCSV(ctx, "data.csv", 2)

	assert.NoError(t, err)
	assert.Equal(t, []string{"date", "amount", "category"}, preview.Headers)
	assert.Len(t, preview.SampleRows, 2)
	assert.Equal(t, 2, preview.PreviewRows)
	assert.Equal(t, 3, preview.TotalRows)
}

func TestFileService_PreviewCSV_RejectsNonCSV(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockObjectStore)
	service := newFileService(mockStore)

	_, err := service.PreviewCSV(ctx, "receipt.pdf", 5)

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	mockStore.AssertNotCalled(t, "Get")
}
