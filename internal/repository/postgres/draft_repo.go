package postgres

import (
	"context"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type draftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) *draftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) GetByTeamID(ctx context.Context, teamID uuid.UUID) (*domain.TeamBuilderDraft, error) {
	var draft domain.TeamBuilderDraft
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) Upsert(ctx context.Context, draft *domain.TeamBuilderDraft) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at", "updated_by"}),
		}).
		Create(draft).Error
}
