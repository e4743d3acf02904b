package domain

import (
	"time"

	"github.com/google/uuid"
)

// Team is a scrim workspace that owns a roster, its games and its team builder draft
type Team struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the table name for GORM
func (Team) TableName() string {
	return "teams"
}

// Member is a player on a team's roster
type Member struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TeamID       uuid.UUID `json:"teamId" gorm:"type:uuid;not null;index"`
	Nickname     string    `json:"nickname" gorm:"size:100;not null"`
	LolID        string    `json:"lolId" gorm:"size:100"`
	MainPosition *Role     `json:"mainPosition" gorm:"type:varchar(10)"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Team *Team `json:"-" gorm:"foreignKey:TeamID"`
}

// TableName returns the table name for GORM
func (Member) TableName() string {
	return "members"
}

// Validate checks required fields
func (m *Member) Validate() error {
	if m.Nickname == "" {
		return ErrNicknameRequired
	}
	if m.MainPosition != nil && !m.MainPosition.IsValid() {
		return ErrInvalidRole
	}
	return nil
}
