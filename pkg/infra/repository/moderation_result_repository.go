package repository

import (
	"context"

	"github.com/veilmatch/moderation/pkg/domain/moderation"
	"gorm.io/gorm"
)

type moderationResultRepository struct {
	db *gorm.DB
}

func NewModerationResultRepository(db *gorm.DB) moderation.Repository {
	return &moderationResultRepository{db: db}
}

func (r *moderationResultRepository) Create(ctx context.Context, result *moderation.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *moderationResultRepository) Update(ctx context.Context, result *moderation.Result) error {
	return r.db.WithContext(ctx).Save(result).Error
}

func (r *moderationResultRepository) GetByContentID(ctx context.Context, contentID string) ([]moderation.Result, error) {
	var results []moderation.Result
	err := r.db.WithContext(ctx).
		Model(&moderation.Result{}).
		Where("content_id = ?", contentID).
		Order("created_at desc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
