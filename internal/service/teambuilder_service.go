package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dom/scrim-team-builder/internal/config"
	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/repository"
	"github.com/dom/scrim-team-builder/internal/teambuilder"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TeamBuilderService struct {
	teamRepo       repository.TeamRepository
	memberRepo     repository.MemberRepository
	generationRepo repository.GenerationRepository
	draftRepo      repository.DraftRepository
	engine         *teambuilder.Engine
	retention      time.Duration
	events         *notifier
	log            *logrus.Logger
}

func NewTeamBuilderService(
	teamRepo repository.TeamRepository,
	memberRepo repository.MemberRepository,
	generationRepo repository.GenerationRepository,
	draftRepo repository.DraftRepository,
	cfg *config.Config,
	events *notifier,
	logger *logrus.Logger,
) *TeamBuilderService {
	return &TeamBuilderService{
		teamRepo:       teamRepo,
		memberRepo:     memberRepo,
		generationRepo: generationRepo,
		draftRepo:      draftRepo,
		engine:         teambuilder.New(cfg.EngineOptions()...),
		retention:      cfg.GenerationRetention,
		events:         events,
		log:            logger,
	}
}

// GenerateInput is the selection to split into two teams
type GenerateInput struct {
	PlayerIDs   []uuid.UUID
	Constraints map[uuid.UUID]domain.PlayerConstraint
	Groups      map[string][]uuid.UUID
}

// Generate assigns the selected members to sides and roles and stores the result.
// Engine errors are wrapped so errors.Is matches the teambuilder sentinels.
func (s *TeamBuilderService) Generate(ctx context.Context, teamID uuid.UUID, input GenerateInput) (*domain.Generation, error) {
	if _, err := getTeam(ctx, s.teamRepo, teamID); err != nil {
		return nil, err
	}
	if len(input.PlayerIDs) != teambuilder.PlayerCount {
		return nil, fmt.Errorf("%w: got %d", teambuilder.ErrInvalidInputSize, len(input.PlayerIDs))
	}

	members, err := s.loadMembers(ctx, teamID, input.PlayerIDs)
	if err != nil {
		return nil, err
	}

	players := make([]teambuilder.Player, 0, len(input.PlayerIDs))
	for _, id := range input.PlayerIDs {
		player := teambuilder.Player{ID: id, Nickname: members[id].Nickname}
		if c, ok := input.Constraints[id]; ok && c.FixedPosition {
			player.FixedPosition = true
			player.AllowedPositions = c.SelectedPositions
		}
		players = append(players, player)
	}

	result, err := s.engine.Assign(players, input.Groups)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"team_id":  teamID,
			"strategy": s.engine.Strategy(),
		}).WithError(err).Info("[TeamBuilderService.Generate] no assignment")
		return nil, fmt.Errorf("generate teams: %w", err)
	}

	generation := &domain.Generation{
		ID:       uuid.New(),
		TeamID:   teamID,
		Strategy: string(result.Strategy),
		Attempts: result.Attempts,
	}
	for _, a := range result.Assignments() {
		generation.Assignments = append(generation.Assignments, domain.GenerationAssignment{
			ID:           uuid.New(),
			GenerationID: generation.ID,
			MemberID:     a.Player.ID,
			Team:         a.Side,
			Position:     a.Role,
		})
	}

	if err := s.generationRepo.Create(ctx, generation); err != nil {
		return nil, err
	}

	for i := range generation.Assignments {
		generation.Assignments[i].Member = members[generation.Assignments[i].MemberID]
	}

	s.log.WithFields(logrus.Fields{
		"team_id":       teamID,
		"generation_id": generation.ID,
		"attempts":      generation.Attempts,
	}).Debug("[TeamBuilderService.Generate] teams generated")

	s.events.publish(teamID, domain.EventTeamsGenerated, generation)
	return generation, nil
}

// GenerateFromDraft runs Generate on the team's stored draft, cleaned against the current roster
func (s *TeamBuilderService) GenerateFromDraft(ctx context.Context, teamID uuid.UUID) (*domain.Generation, error) {
	if _, err := getTeam(ctx, s.teamRepo, teamID); err != nil {
		return nil, err
	}

	state := domain.NewTeamBuilderState(time.Now())
	draft, err := s.draftRepo.GetByTeamID(ctx, teamID)
	switch {
	case err == nil:
		if state, err = draft.DecodeState(); err != nil {
			return nil, err
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	roster, err := rosterIDs(ctx, s.memberRepo, teamID)
	if err != nil {
		return nil, err
	}
	state = state.Sanitize(roster)

	constraints := make(map[uuid.UUID]domain.PlayerConstraint, len(state.PlayerConstraints))
	for id, c := range state.PlayerConstraints {
		constraints[id] = domain.PlayerConstraint{
			FixedPosition:     c.FixedPosition,
			SelectedPositions: c.AllowedPositions(),
		}
	}

	return s.Generate(ctx, teamID, GenerateInput{
		PlayerIDs:   state.SelectedPlayerIDs,
		Constraints: constraints,
		Groups:      state.Groups,
	})
}

func (s *TeamBuilderService) GetGeneration(ctx context.Context, teamID, generationID uuid.UUID) (*domain.Generation, error) {
	return getGeneration(ctx, s.generationRepo, teamID, generationID)
}

// Prune deletes unrecorded generations older than the configured retention
func (s *TeamBuilderService) Prune(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	deleted, err := s.generationRepo.DeleteOlderThan(ctx, time.Now().Add(-s.retention))
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.log.WithField("deleted", deleted).Info("[TeamBuilderService.Prune] pruned generations")
	}
	return deleted, nil
}

// loadMembers requires every id to be a member of teamID
func (s *TeamBuilderService) loadMembers(ctx context.Context, teamID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*domain.Member, error) {
	found, err := s.memberRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	members := make(map[uuid.UUID]*domain.Member, len(found))
	for _, m := range found {
		if m.TeamID == teamID {
			members[m.ID] = m
		}
	}
	for _, id := range ids {
		if _, ok := members[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, id)
		}
	}
	return members, nil
}

func getGeneration(ctx context.Context, generationRepo repository.GenerationRepository, teamID, generationID uuid.UUID) (*domain.Generation, error) {
	generation, err := generationRepo.GetByID(ctx, generationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenerationNotFound
		}
		return nil, err
	}
	if generation.TeamID != teamID {
		return nil, ErrGenerationNotFound
	}
	return generation, nil
}

func rosterIDs(ctx context.Context, memberRepo repository.MemberRepository, teamID uuid.UUID) (map[uuid.UUID]bool, error) {
	members, err := memberRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	ids := make(map[uuid.UUID]bool, len(members))
	for _, m := range members {
		ids[m.ID] = true
	}
	return ids, nil
}
