package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamBuilder creates test teams with a builder pattern
type TeamBuilder struct {
	name string
}

// NewTeamBuilder creates a new TeamBuilder with a unique name
func NewTeamBuilder() *TeamBuilder {
	return &TeamBuilder{
		name: fmt.Sprintf("team_%s", uuid.New().String()[:8]),
	}
}

// WithName sets the team name
func (b *TeamBuilder) WithName(name string) *TeamBuilder {
	b.name = name
	return b
}

// Build creates the team in the database
func (b *TeamBuilder) Build(t *testing.T, db *gorm.DB) *domain.Team {
	t.Helper()

	team := &domain.Team{
		ID:        uuid.New(),
		Name:      b.name,
		CreatedAt: time.Now(),
	}

	if err := db.Create(team).Error; err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	return team
}

// MemberBuilder creates test members with a builder pattern
type MemberBuilder struct {
	team         *domain.Team
	nickname     string
	lolID        string
	mainPosition *domain.Role
}

// NewMemberBuilder creates a new MemberBuilder with default values
func NewMemberBuilder() *MemberBuilder {
	suffix := uuid.New().String()[:8]
	return &MemberBuilder{
		nickname: fmt.Sprintf("player_%s", suffix),
		lolID:    fmt.Sprintf("player_%s#KR1", suffix),
	}
}

// WithTeam sets the owning team
func (b *MemberBuilder) WithTeam(team *domain.Team) *MemberBuilder {
	b.team = team
	return b
}

// WithNickname sets the nickname
func (b *MemberBuilder) WithNickname(nickname string) *MemberBuilder {
	b.nickname = nickname
	return b
}

// WithMainPosition sets the main position
func (b *MemberBuilder) WithMainPosition(role domain.Role) *MemberBuilder {
	b.mainPosition = &role
	return b
}

// Build creates the member in the database, creating a team when none was set
func (b *MemberBuilder) Build(t *testing.T, db *gorm.DB) *domain.Member {
	t.Helper()

	if b.team == nil {
		b.team = NewTeamBuilder().Build(t, db)
	}

	member := &domain.Member{
		ID:           uuid.New(),
		TeamID:       b.team.ID,
		Nickname:     b.nickname,
		LolID:        b.lolID,
		MainPosition: b.mainPosition,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create member: %v", err)
	}

	return member
}

// SeedRoster creates count members on team, one main position each in role order
func SeedRoster(t *testing.T, db *gorm.DB, team *domain.Team, count int) []*domain.Member {
	t.Helper()

	members := make([]*domain.Member, count)
	for i := 0; i < count; i++ {
		members[i] = NewMemberBuilder().
			WithTeam(team).
			WithNickname(fmt.Sprintf("Player%02d", i+1)).
			WithMainPosition(domain.AllRoles[i%domain.RoleCount]).
			Build(t, db)
	}
	return members
}

// MemberIDs returns the ids of members in order
func MemberIDs(members []*domain.Member) []uuid.UUID {
	ids := make([]uuid.UUID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return ids
}

// GenerationBuilder stores a fixed generation without running the engine
type GenerationBuilder struct {
	team    *domain.Team
	members []*domain.Member
	created time.Time
}

// NewGenerationBuilder places members blue then red, each side in role order
func NewGenerationBuilder(team *domain.Team, members []*domain.Member) *GenerationBuilder {
	return &GenerationBuilder{
		team:    team,
		members: members,
		created: time.Now(),
	}
}

// WithCreatedAt backdates the generation
func (b *GenerationBuilder) WithCreatedAt(created time.Time) *GenerationBuilder {
	b.created = created
	return b
}

// Build creates the generation and its assignments in the database
func (b *GenerationBuilder) Build(t *testing.T, db *gorm.DB) *domain.Generation {
	t.Helper()

	if len(b.members) != 10 {
		t.Fatalf("generation needs 10 members, got %d", len(b.members))
	}

	generation := &domain.Generation{
		ID:        uuid.New(),
		TeamID:    b.team.ID,
		Strategy:  "exhaustive",
		Attempts:  1,
		CreatedAt: b.created,
	}
	for i, m := range b.members {
		side := domain.SideBlue
		if i >= domain.RoleCount {
			side = domain.SideRed
		}
		generation.Assignments = append(generation.Assignments, domain.GenerationAssignment{
			ID:           uuid.New(),
			GenerationID: generation.ID,
			MemberID:     m.ID,
			Team:         side,
			Position:     domain.AllRoles[i%domain.RoleCount],
		})
	}

	if err := db.Create(generation).Error; err != nil {
		t.Fatalf("failed to create generation: %v", err)
	}

	return generation
}

// CreateGame records winner for generation directly in the database
func CreateGame(t *testing.T, db *gorm.DB, generation *domain.Generation, winner domain.Side, playedAt time.Time) *domain.Game {
	t.Helper()

	game := &domain.Game{
		ID:           uuid.New(),
		TeamID:       generation.TeamID,
		GenerationID: generation.ID,
		WinningTeam:  winner,
		PlayedAt:     playedAt,
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

	if err := db.Create(game).Error; err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	return game
}

// CreateJSONRequest creates an HTTP request with a JSON body
func CreateJSONRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return req
}

// Do sends req and fails the test on transport errors
func Do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
