package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamService struct {
	teamRepo repository.TeamRepository
}

func NewTeamService(teamRepo repository.TeamRepository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

func (s *TeamService) Create(ctx context.Context, name string) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrTeamNameRequired
	}

	team := &domain.Team{
		ID:   uuid.New(),
		Name: name,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeamNameExists
		}
		return nil, err
	}
	return team, nil
}

func (s *TeamService) Get(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	return getTeam(ctx, s.teamRepo, id)
}

// getTeam maps a missing row to ErrTeamNotFound
func getTeam(ctx context.Context, teamRepo repository.TeamRepository, id uuid.UUID) (*domain.Team, error) {
	team, err := teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}
