package domain

import "strings"

// Role represents a League of Legends position
type Role string

const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMid     Role = "MID"
	RoleADC     Role = "ADC"
	RoleSupport Role = "SUPPORT"
)

// AllRoles contains all valid roles in order
var AllRoles = []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}

// RoleCount is the number of players on a complete team
const RoleCount = 5

// MaxFixedPositions is the largest allowed-position set a fixed player may carry.
// Allowing all five would be the same as not fixing the player at all.
const MaxFixedPositions = 4

// IsValid checks if a role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a user-friendly display name for the role
func (r Role) DisplayName() string {
	switch r {
	case RoleTop:
		return "Top"
	case RoleJungle:
		return "Jungle"
	case RoleMid:
		return "Mid"
	case RoleADC:
		return "ADC"
	case RoleSupport:
		return "Support"
	default:
		return string(r)
	}
}

// Index returns the role's position in AllRoles, or -1 for unknown roles
func (r Role) Index() int {
	for i, role := range AllRoles {
		if role == r {
			return i
		}
	}
	return -1
}

// ParseRole accepts any casing and returns ErrInvalidRole for unknown values
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Side is one of the two teams in a game
type Side string

const (
	SideBlue Side = "BLUE"
	SideRed  Side = "RED"
)

// IsValid checks if a side is valid
func (s Side) IsValid() bool {
	return s == SideBlue || s == SideRed
}

// ParseSide accepts any casing and returns ErrInvalidSide for unknown values
func ParseSide(s string) (Side, error) {
	side := Side(strings.ToUpper(strings.TrimSpace(s)))
	if !side.IsValid() {
		return "", ErrInvalidSide
	}
	return side, nil
}
