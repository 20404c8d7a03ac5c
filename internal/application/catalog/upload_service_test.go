package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/shared"
)

type fakeImageStorage struct {
	url  string
	err  error
	kind string
}

func (f *fakeImageStorage) UploadImage(_ context.Context, _ uuid.UUID, kind string, _ []byte, _ string) (string, error) {
	f.kind = kind
	return f.url, f.err
}

func TestUploadService_UploadImage(t *testing.T) {
	ctx := context.Background()
	storage := &fakeImageStorage{url: "https://cdn.example.com/img/abc.jpg"}
	svc := NewUploadService(storage, zap.NewNop())

	result, err := svc.UploadImage(ctx, uuid.New(), "hotel", []byte("fake-jpeg"), "image/jpeg")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/img/abc.jpg", result.URL)
	assert.Equal(t, "hotel", storage.kind)
}

func TestUploadService_UploadImage_StorageError(t *testing.T) {
	ctx := context.Background()
	storage := &fakeImageStorage{err: errors.New("bucket unavailable")}
	svc := NewUploadService(storage, zap.NewNop())

	result, err := svc.UploadImage(ctx, uuid.New(), "hotel", []byte("fake-jpeg"), "image/jpeg")

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "UPLOAD_FAILED", domainErr.Code)
}

func TestUploadService_UploadImage_NoStorageConfigured(t *testing.T) {
	ctx := context.Background()
	svc := NewUploadService(nil, zap.NewNop())

	result, err := svc.UploadImage(ctx, uuid.New(), "hotel", []byte("fake-jpeg"), "image/jpeg")

	require.Error(t, err)
	assert.Nil(t, result)
}
