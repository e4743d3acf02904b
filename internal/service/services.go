package service

import (
	"errors"

	"github.com/dom/scrim-team-builder/internal/config"
	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrTeamNameExists      = errors.New("team name already exists")
	ErrMemberNotFound      = errors.New("member not found")
	ErrGenerationNotFound  = errors.New("generation not found")
	ErrGameNotFound        = errors.New("game not found")
	ErrGameAlreadyRecorded = errors.New("result already recorded for this generation")
	ErrStaleDraft          = errors.New("draft was updated more recently")
)

// Publisher notifies clients watching a team that something changed
type Publisher interface {
	Publish(teamID uuid.UUID, eventType domain.EventType, payload interface{})
}

type Services struct {
	Team        *TeamService
	Member      *MemberService
	TeamBuilder *TeamBuilderService
	Game        *GameService
	Draft       *DraftService
}

// NewServices wires the services. publisher may be nil.
func NewServices(repos *repository.Repositories, cfg *config.Config, publisher Publisher, logger *logrus.Logger) *Services {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	events := &notifier{publisher: publisher, log: logger}

	return &Services{
		Team:        NewTeamService(repos.Team),
		Member:      NewMemberService(repos.Team, repos.Member, events),
		TeamBuilder: NewTeamBuilderService(repos.Team, repos.Member, repos.Generation, repos.Draft, cfg, events, logger),
		Game:        NewGameService(repos.Team, repos.Generation, repos.Game, events, logger),
		Draft:       NewDraftService(repos.Team, repos.Member, repos.Draft, events),
	}
}

// notifier tolerates a missing publisher so services work without a hub
type notifier struct {
	publisher Publisher
	log       *logrus.Logger
}

func (n *notifier) publish(teamID uuid.UUID, eventType domain.EventType, payload interface{}) {
	if n == nil || n.publisher == nil {
		return
	}
	n.log.WithFields(logrus.Fields{
		"team_id": teamID,
		"type":    eventType,
	}).Debug("[service.publish] notifying team")
	n.publisher.Publish(teamID, eventType, payload)
}
