package domain

import (
	"time"

	"github.com/google/uuid"
)

// Generation is a stored team assignment produced by the team builder.
// A game result is always recorded against a generation.
type Generation struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TeamID    uuid.UUID `json:"teamId" gorm:"type:uuid;not null;index"`
	Strategy  string    `json:"strategy" gorm:"type:varchar(20);not null"`
	Attempts  int       `json:"attempts" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Assignments []GenerationAssignment `json:"assignments,omitempty" gorm:"foreignKey:GenerationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Generation) TableName() string {
	return "generations"
}

// Side returns the assignments for one side ordered as stored
func (g *Generation) Side(side Side) []GenerationAssignment {
	var out []GenerationAssignment
	for _, a := range g.Assignments {
		if a.Team == side {
			out = append(out, a)
		}
	}
	return out
}

// GenerationAssignment is a member's side and role within a generation
type GenerationAssignment struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GenerationID uuid.UUID `json:"generationId" gorm:"type:uuid;not null;index"`
	MemberID     uuid.UUID `json:"memberId" gorm:"type:uuid;not null"`
	Team         Side      `json:"team" gorm:"type:varchar(10);not null"`
	Position     Role      `json:"position" gorm:"type:varchar(10);not null"`

	Member *Member `json:"member,omitempty" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (GenerationAssignment) TableName() string {
	return "generation_assignments"
}
