package domain

import (
	"time"

	"github.com/google/uuid"
)

// Game is a recorded scrim result
type Game struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TeamID       uuid.UUID `json:"teamId" gorm:"type:uuid;not null;index"`
	GenerationID uuid.UUID `json:"generationId" gorm:"type:uuid;not null;uniqueIndex"`
	WinningTeam  Side      `json:"winningTeam" gorm:"type:varchar(10);not null"`
	PlayedAt     time.Time `json:"playedAt" gorm:"not null;index"`

	// Relations
	Participants []GameParticipant `json:"participants,omitempty" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Game) TableName() string {
	return "games"
}

// GameParticipant is a member's side and position in a recorded game
type GameParticipant struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GameID   uuid.UUID `json:"gameId" gorm:"type:uuid;not null;index"`
	MemberID uuid.UUID `json:"memberId" gorm:"type:uuid;not null;index"`
	Team     Side      `json:"team" gorm:"type:varchar(10);not null"`
	Position Role      `json:"position" gorm:"type:varchar(10);not null"`

	Member *Member `json:"member,omitempty" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (GameParticipant) TableName() string {
	return "game_participants"
}

// Won reports whether the participant was on the winning side
func (p *GameParticipant) Won(g *Game) bool {
	return p.Team == g.WinningTeam
}

// MemberStats aggregates a member's recorded games
type MemberStats struct {
	MemberID uuid.UUID `json:"memberId"`
	Nickname string    `json:"nickname"`
	Games    int       `json:"games"`
	Wins     int       `json:"wins"`
}

// WinRate returns wins over games, 0 when no games were played
func (s MemberStats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}
