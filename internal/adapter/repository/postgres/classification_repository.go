package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/entity"
	"github.com/Wajihx/News-Article-Classifier/internal/domain/repository"
)

type classificationRepository struct {
	db *gorm.DB
}

// NewClassificationRepository creates a new classification repository
func NewClassificationRepository(db *gorm.DB) repository.ClassificationRepository {
	return &classificationRepository{db: db}
}

func (r *classificationRepository) Create(ctx context.Context, c *entity.Classification) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *classificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Classification, error) {
	var c entity.Classification
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *classificationRepository) List(ctx context.Context, limit, offset int) ([]*entity.Classification, int64, error) {
	var records []*entity.Classification
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Classification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *classificationRepository) CountByLabel(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Label string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Classification{}).
		Select("label, count(*) as count").
		Group("label").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Label] = row.Count
	}
	return counts, nil
}
