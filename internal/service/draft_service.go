package service

import (
	"context"
	"errors"
	"time"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DraftService struct {
	teamRepo   repository.TeamRepository
	memberRepo repository.MemberRepository
	draftRepo  repository.DraftRepository
	events     *notifier
}

func NewDraftService(teamRepo repository.TeamRepository, memberRepo repository.MemberRepository, draftRepo repository.DraftRepository, events *notifier) *DraftService {
	return &DraftService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		draftRepo:  draftRepo,
		events:     events,
	}
}

// Get returns the team's draft state, an empty one when nothing was saved yet
func (s *DraftService) Get(ctx context.Context, teamID uuid.UUID) (*domain.TeamBuilderState, error) {
	if _, err := getTeam(ctx, s.teamRepo, teamID); err != nil {
		return nil, err
	}

	draft, err := s.draftRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewTeamBuilderState(time.Now()), nil
		}
		return nil, err
	}
	return draft.DecodeState()
}

// Save stores state after cleaning it against the roster.
// A state older than the stored one is rejected with ErrStaleDraft and an
// unchanged state is not written again. The stored state is returned.
func (s *DraftService) Save(ctx context.Context, teamID uuid.UUID, state *domain.TeamBuilderState, updatedBy string) (*domain.TeamBuilderState, error) {
	if _, err := getTeam(ctx, s.teamRepo, teamID); err != nil {
		return nil, err
	}
	if state.Version != domain.TeamBuilderStateVersion {
		return nil, domain.ErrUnsupportedStateVersion
	}
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now()
	}

	roster, err := rosterIDs(ctx, s.memberRepo, teamID)
	if err != nil {
		return nil, err
	}
	clean := state.Sanitize(roster)
	if err := clean.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.draftRepo.GetByTeamID(ctx, teamID)
	switch {
	case err == nil:
		if clean.UpdatedAt.Before(existing.UpdatedAt) {
			return nil, ErrStaleDraft
		}
		if current, decodeErr := existing.DecodeState(); decodeErr == nil && current.Equal(clean) {
			return current, nil
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	draft := &domain.TeamBuilderDraft{TeamID: teamID, UpdatedBy: updatedBy}
	if err := draft.EncodeState(clean); err != nil {
		return nil, err
	}
	if err := s.draftRepo.Upsert(ctx, draft); err != nil {
		return nil, err
	}

	s.events.publish(teamID, domain.EventDraftUpdated, clean)
	return clean, nil
}
