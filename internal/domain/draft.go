package domain

import (
	"encoding/json"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TeamBuilderStateVersion is the only state layout currently understood
const TeamBuilderStateVersion = 1

// MaxSelectedPlayers is the number of players a generation needs
const MaxSelectedPlayers = 10

// Group size bounds for premade groups
const (
	MinGroupSize = 2
	MaxGroupSize = 5
)

// TeamBuilderDraft stores the shared, in-progress team builder selection for a team
type TeamBuilderDraft struct {
	TeamID    uuid.UUID      `json:"teamId" gorm:"type:uuid;primary_key"`
	State     datatypes.JSON `json:"state" gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"not null;autoUpdateTime:false"`
	UpdatedBy string         `json:"updatedBy" gorm:"size:64"`
}

// TableName returns the table name for GORM
func (TeamBuilderDraft) TableName() string {
	return "team_builder_drafts"
}

// DecodeState unmarshals the stored state
func (d *TeamBuilderDraft) DecodeState() (*TeamBuilderState, error) {
	var state TeamBuilderState
	if err := json.Unmarshal(d.State, &state); err != nil {
		return nil, err
	}
	if state.Version != TeamBuilderStateVersion {
		return nil, ErrUnsupportedStateVersion
	}
	return &state, nil
}

// EncodeState marshals state into the draft and stamps UpdatedAt from the state
func (d *TeamBuilderDraft) EncodeState(state *TeamBuilderState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	d.State = datatypes.JSON(raw)
	d.UpdatedAt = state.UpdatedAt
	return nil
}

// PlayerConstraint is the fixed-position setting of one selected player
type PlayerConstraint struct {
	FixedPosition     bool   `json:"fixedPosition"`
	SelectedPositions []Role `json:"selectedPositions,omitempty"`
}

// TeamBuilderState is the selection the team builder generates from
type TeamBuilderState struct {
	Version           int                            `json:"version"`
	SelectedPlayerIDs []uuid.UUID                    `json:"selectedPlayerIds"`
	PlayerConstraints map[uuid.UUID]PlayerConstraint `json:"playerConstraints"`
	Groups            map[string][]uuid.UUID         `json:"groups"`
	UpdatedAt         time.Time                      `json:"updatedAt"`
}

// NewTeamBuilderState returns an empty state stamped with now
func NewTeamBuilderState(now time.Time) *TeamBuilderState {
	return &TeamBuilderState{
		Version:           TeamBuilderStateVersion,
		SelectedPlayerIDs: []uuid.UUID{},
		PlayerConstraints: map[uuid.UUID]PlayerConstraint{},
		Groups:            map[string][]uuid.UUID{},
		UpdatedAt:         now,
	}
}

// Validate rejects states that cannot be stored
func (s *TeamBuilderState) Validate() error {
	if s.Version != TeamBuilderStateVersion {
		return ErrUnsupportedStateVersion
	}
	if len(s.SelectedPlayerIDs) > MaxSelectedPlayers {
		return ErrTooManyPlayers
	}
	for _, members := range s.Groups {
		if len(members) > MaxGroupSize {
			return ErrGroupTooLarge
		}
	}
	return nil
}

// Sanitize drops everything that does not refer to a known member.
// Constraints and groups only survive for selected players, groups that
// fall under two members are removed, and fixed positions are deduplicated
// and capped at MaxFixedPositions.
func (s *TeamBuilderState) Sanitize(validMemberIDs map[uuid.UUID]bool) *TeamBuilderState {
	out := &TeamBuilderState{
		Version:           s.Version,
		SelectedPlayerIDs: []uuid.UUID{},
		PlayerConstraints: map[uuid.UUID]PlayerConstraint{},
		Groups:            map[string][]uuid.UUID{},
		UpdatedAt:         s.UpdatedAt,
	}

	selected := make(map[uuid.UUID]bool)
	for _, id := range s.SelectedPlayerIDs {
		if !validMemberIDs[id] || selected[id] {
			continue
		}
		selected[id] = true
		out.SelectedPlayerIDs = append(out.SelectedPlayerIDs, id)
	}

	for id, c := range s.PlayerConstraints {
		if !selected[id] {
			continue
		}
		out.PlayerConstraints[id] = normalizeConstraint(c)
	}

	for groupID, members := range s.Groups {
		kept := uniqueIDs(members, selected)
		if len(kept) >= MinGroupSize {
			out.Groups[groupID] = kept
		}
	}

	return out
}

// Equal compares two states ignoring ordering and UpdatedAt
func (s *TeamBuilderState) Equal(other *TeamBuilderState) bool {
	if s == nil || other == nil {
		return s == other
	}
	return reflect.DeepEqual(s.normalized(), other.normalized())
}

func (s *TeamBuilderState) normalized() *TeamBuilderState {
	out := &TeamBuilderState{
		Version:           s.Version,
		SelectedPlayerIDs: sortedIDs(s.SelectedPlayerIDs),
		PlayerConstraints: map[uuid.UUID]PlayerConstraint{},
		Groups:            map[string][]uuid.UUID{},
	}
	for id, c := range s.PlayerConstraints {
		c = normalizeConstraint(c)
		sort.Slice(c.SelectedPositions, func(i, j int) bool {
			return c.SelectedPositions[i] < c.SelectedPositions[j]
		})
		out.PlayerConstraints[id] = c
	}
	for groupID, members := range s.Groups {
		out.Groups[groupID] = sortedIDs(members)
	}
	return out
}

// AllowedPositions returns the effective allowed roles, nil when the player is free
func (c PlayerConstraint) AllowedPositions() []Role {
	if !c.FixedPosition {
		return nil
	}
	return normalizeConstraint(c).SelectedPositions
}

func normalizeConstraint(c PlayerConstraint) PlayerConstraint {
	out := PlayerConstraint{FixedPosition: c.FixedPosition}
	if !c.FixedPosition {
		return out
	}
	seen := make(map[Role]bool)
	for _, r := range c.SelectedPositions {
		if !r.IsValid() || seen[r] {
			continue
		}
		seen[r] = true
		out.SelectedPositions = append(out.SelectedPositions, r)
		if len(out.SelectedPositions) == MaxFixedPositions {
			break
		}
	}
	return out
}

func uniqueIDs(ids []uuid.UUID, allowed map[uuid.UUID]bool) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, id := range ids {
		if !allowed[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func sortedIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
