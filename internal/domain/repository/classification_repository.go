package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/entity"
)

// ClassificationRepository defines the interface for classification history
type ClassificationRepository interface {
	// Create stores a classification record
	Create(ctx context.Context, c *entity.Classification) error

	// GetByID retrieves a record by its ID, or nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Classification, error)

	// List retrieves records newest first with the total count
	List(ctx context.Context, limit, offset int) ([]*entity.Classification, int64, error)

	// CountByLabel returns the number of records per label name
	CountByLabel(ctx context.Context) (map[string]int64, error)
}
