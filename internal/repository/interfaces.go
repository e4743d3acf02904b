package repository

import (
	"context"
	"time"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/google/uuid"
)

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	GetByName(ctx context.Context, name string) (*domain.Team, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Member, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GenerationRepository interface {
	Create(ctx context.Context, generation *domain.Generation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Generation, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID, limit, offset int) ([]*domain.Game, error)
	CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MemberStats(ctx context.Context, teamID uuid.UUID) ([]*domain.MemberStats, error)
}

type DraftRepository interface {
	GetByTeamID(ctx context.Context, teamID uuid.UUID) (*domain.TeamBuilderDraft, error)
	Upsert(ctx context.Context, draft *domain.TeamBuilderDraft) error
}

type Repositories struct {
	Team       TeamRepository
	Member     MemberRepository
	Generation GenerationRepository
	Game       GameRepository
	Draft      DraftRepository
}
