package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/shared"
)

// ImageStorage stores uploaded catalog and branding images
type ImageStorage interface {
	UploadImage(ctx context.Context, orgID uuid.UUID, kind string, data []byte, contentType string) (string, error)
}

// UploadService handles image uploads for catalog entries and org branding
type UploadService struct {
	storage ImageStorage
	logger  *zap.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(storage ImageStorage, logger *zap.Logger) *UploadService {
	return &UploadService{
		storage: storage,
		logger:  logger,
	}
}

// UploadImage stores an image and returns its public URL. kind groups images
// under a storage prefix (hotel, package, activity, transport, branding).
func (s *UploadService) UploadImage(ctx context.Context, orgID uuid.UUID, kind string, data []byte, contentType string) (*UploadImageResult, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_UNAVAILABLE", "Image storage is not configured")
	}

	url, err := s.storage.UploadImage(ctx, orgID, kind, data, contentType)
	if err != nil {
		s.logger.Error("failed to upload image",
			zap.Error(err),
			zap.String("organization_id", orgID.String()),
			zap.String("kind", kind))
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to upload image")
	}

	return &UploadImageResult{URL: url}, nil
}

// normalizePrice clamps negative amounts to zero
func normalizePrice(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// dedupe returns the ids with duplicates removed, order preserved
func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
