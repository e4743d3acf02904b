package service

import (
	"context"
	"errors"
	"time"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// GamesPageSize is the number of games returned per history page
const GamesPageSize = 20

type GameService struct {
	teamRepo       repository.TeamRepository
	generationRepo repository.GenerationRepository
	gameRepo       repository.GameRepository
	events         *notifier
	log            *logrus.Logger
}

func NewGameService(
	teamRepo repository.TeamRepository,
	generationRepo repository.GenerationRepository,
	gameRepo repository.GameRepository,
	events *notifier,
	logger *logrus.Logger,
) *GameService {
	return &GameService{
		teamRepo:       teamRepo,
		generationRepo: generationRepo,
		gameRepo:       gameRepo,
		events:         events,
		log:            logger,
	}
}

// GamePage is one page of a team's game history, newest first
type GamePage struct {
	Games    []*domain.Game `json:"games"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int64          `json:"total"`
	HasMore  bool           `json:"hasMore"`
}

// PlayerStats is a member's record with its win rate
type PlayerStats struct {
	domain.MemberStats
	WinRate float64 `json:"winRate"`
}

// RecordWin stores the result of a generation. Each generation can be recorded once.
func (s *GameService) RecordWin(ctx context.Context, teamID, generationID uuid.UUID, winner domain.Side) (*domain.Game, error) {
	if !winner.IsValid() {
		return nil, domain.ErrInvalidSide
	}

	generation, err := getGeneration(ctx, s.generationRepo, teamID, generationID)
	if err != nil {
		return nil, err
	}

	game := &domain.Game{
		ID:           uuid.New(),
		TeamID:       teamID,
		GenerationID: generation.ID,
		WinningTeam:  winner,
		PlayedAt:     time.Now(),
	}
	for _, a := range generation.Assignments {
		game.Participants = append(game.Participants, domain.GameParticipant{
			ID:       uuid.New(),
			GameID:   game.ID,
			MemberID: a.MemberID,
			Team:     a.Team,
			Position: a.Position,
		})
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGameAlreadyRecorded
		}
		return nil, err
	}

	for i := range game.Participants {
		for _, a := range generation.Assignments {
			if a.MemberID == game.Participants[i].MemberID {
				game.Participants[i].Member = a.Member
			}
		}
	}

	s.log.WithFields(logrus.Fields{
		"team_id":       teamID,
		"game_id":       game.ID,
		"generation_id": generationID,
		"winner":        winner,
	}).Info("[GameService.RecordWin] game recorded")

	s.events.publish(teamID, domain.EventGameRecorded, game)
	return game, nil
}

// Undo deletes a recorded game
func (s *GameService) Undo(ctx context.Context, teamID, gameID uuid.UUID) error {
	if _, err := s.Get(ctx, teamID, gameID); err != nil {
		return err
	}

	if err := s.gameRepo.Delete(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGameNotFound
		}
		return err
	}

	s.events.publish(teamID, domain.EventGameDeleted, map[string]uuid.UUID{"id": gameID})
	return nil
}

func (s *GameService) Get(ctx context.Context, teamID, gameID uuid.UUID) (*domain.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if game.TeamID != teamID {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// List returns one page of history. Pages start at 1; lower values mean the first page.
func (s *GameService) List(ctx context.Context, teamID uuid.UUID, page int) (*GamePage, error) {
	if _, err := getTeam(ctx, s.teamRepo, teamID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * GamesPageSize

	var (
		games []*domain.Game
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		games, err = s.gameRepo.ListByTeam(gctx, teamID, GamesPageSize, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.gameRepo.CountByTeam(gctx, teamID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if games == nil {
		games = []*domain.Game{}
	}
	return &GamePage{
		Games:    games,
		Page:     page,
		PageSize: GamesPageSize,
		Total:    total,
		HasMore:  int64(offset+len(games)) < total,
	}, nil
}

// Stats returns every member's record, best record first
func (s *GameService) Stats(ctx context.Context, teamID uuid.UUID) ([]PlayerStats, error) {
	if _, err := getTeam(ctx, s.teamRepo, teamID); err != nil {
		return nil, err
	}

	stats, err := s.gameRepo.MemberStats(ctx, teamID)
	if err != nil {
		return nil, err
	}

	out := make([]PlayerStats, 0, len(stats))
	for _, st := range stats {
		out = append(out, PlayerStats{MemberStats: *st, WinRate: st.WinRate()})
	}
	return out, nil
}
