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

type MemberService struct {
	teamRepo   repository.TeamRepository
	memberRepo repository.MemberRepository
	events     *notifier
}

func NewMemberService(teamRepo repository.TeamRepository, memberRepo repository.MemberRepository, events *notifier) *MemberService {
	return &MemberService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		events:     events,
	}
}

// MemberInput carries the editable member fields
type MemberInput struct {
	Nickname     string
	LolID        string
	MainPosition *domain.Role
}

func (s *MemberService) List(ctx context.Context, teamID uuid.UUID) ([]*domain.Member, error) {
	if _, err := getTeam(ctx, s.teamRepo, teamID); err != nil {
		return nil, err
	}
	return s.memberRepo.ListByTeam(ctx, teamID)
}

func (s *MemberService) Create(ctx context.Context, teamID uuid.UUID, input MemberInput) (*domain.Member, error) {
	if _, err := getTeam(ctx, s.teamRepo, teamID); err != nil {
		return nil, err
	}

	member := &domain.Member{
		ID:     uuid.New(),
		TeamID: teamID,
	}
	input.apply(member)
	if err := member.Validate(); err != nil {
		return nil, err
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	s.events.publish(teamID, domain.EventMemberCreated, member)
	return member, nil
}

func (s *MemberService) Update(ctx context.Context, teamID, memberID uuid.UUID, input MemberInput) (*domain.Member, error) {
	member, err := s.get(ctx, teamID, memberID)
	if err != nil {
		return nil, err
	}

	input.apply(member)
	if err := member.Validate(); err != nil {
		return nil, err
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	s.events.publish(teamID, domain.EventMemberUpdated, member)
	return member, nil
}

func (s *MemberService) Delete(ctx context.Context, teamID, memberID uuid.UUID) error {
	if _, err := s.get(ctx, teamID, memberID); err != nil {
		return err
	}

	if err := s.memberRepo.Delete(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	s.events.publish(teamID, domain.EventMemberDeleted, map[string]uuid.UUID{"id": memberID})
	return nil
}

// get loads a member and hides members of other teams
func (s *MemberService) get(ctx context.Context, teamID, memberID uuid.UUID) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if member.TeamID != teamID {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

func (in MemberInput) apply(m *domain.Member) {
	m.Nickname = strings.TrimSpace(in.Nickname)
	m.LolID = strings.TrimSpace(in.LolID)
	m.MainPosition = in.MainPosition
}
