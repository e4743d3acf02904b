package postgres

import (
	"context"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *gameRepository {
	return &gameRepository{db: db}
}

// Create inserts the game and its participants in one transaction
func (r *gameRepository) Create(ctx context.Context, game *domain.Game) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(game).Error
	})
}

func (r *gameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Preload("Participants.Member").
		First(&game, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) ListByTeam(ctx context.Context, teamID uuid.UUID, limit, offset int) ([]*domain.Game, error) {
	var games []*domain.Game
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Preload("Participants.Member").
		Where("team_id = ?", teamID).
		Order("played_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Game{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}

func (r *gameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", id).Delete(&domain.GameParticipant{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Game{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// MemberStats counts games and wins per member, best record first
func (r *gameRepository) MemberStats(ctx context.Context, teamID uuid.UUID) ([]*domain.MemberStats, error) {
	var stats []*domain.MemberStats
	err := r.db.WithContext(ctx).
		Table("game_participants AS gp").
		Select(`gp.member_id AS member_id,
			m.nickname AS nickname,
			COUNT(*) AS games,
			SUM(CASE WHEN gp.team = g.winning_team THEN 1 ELSE 0 END) AS wins`).
		Joins("JOIN games g ON g.id = gp.game_id").
		Joins("JOIN members m ON m.id = gp.member_id").
		Where("g.team_id = ?", teamID).
		Group("gp.member_id, m.nickname").
		Order("wins DESC, games DESC, m.nickname").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
