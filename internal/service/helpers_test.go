package service_test

import (
	"sync"
	"testing"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/repository/postgres"
	"github.com/dom/scrim-team-builder/internal/service"
	"github.com/dom/scrim-team-builder/internal/testutil"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type publishedEvent struct {
	TeamID  uuid.UUID
	Type    domain.EventType
	Payload interface{}
}

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(teamID uuid.UUID, eventType domain.EventType, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{TeamID: teamID, Type: eventType, Payload: payload})
}

func (p *recordingPublisher) Types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]domain.EventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

func newServices(t *testing.T) (*service.Services, *gorm.DB, *recordingPublisher) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	publisher := &recordingPublisher{}
	services := service.NewServices(repos, testutil.TestConfig(), publisher, testutil.TestLogger())
	return services, testDB.DB, publisher
}
