package postgres

import (
	"context"
	"time"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type generationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) *generationRepository {
	return &generationRepository{db: db}
}

// Create stores the generation together with its assignments
func (r *generationRepository) Create(ctx context.Context, generation *domain.Generation) error {
	return r.db.WithContext(ctx).Create(generation).Error
}

func (r *generationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Generation, error) {
	var generation domain.Generation
	err := r.db.WithContext(ctx).
		Preload("Assignments").
		Preload("Assignments.Member").
		First(&generation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &generation, nil
}

// DeleteOlderThan prunes generations that were never recorded as a game
func (r *generationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recorded := tx.Model(&domain.Game{}).Select("generation_id")

		var ids []uuid.UUID
		err := tx.Model(&domain.Generation{}).
			Where("created_at < ? AND id NOT IN (?)", cutoff, recorded).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		err = tx.Where("generation_id IN ?", ids).
			Delete(&domain.GenerationAssignment{}).Error
		if err != nil {
			return err
		}

		result := tx.Where("id IN ?", ids).Delete(&domain.Generation{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}
