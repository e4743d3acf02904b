package domain

import "errors"

// Validation errors
var (
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidSide      = errors.New("invalid side")
	ErrNicknameRequired = errors.New("nickname is required")
	ErrTeamNameRequired = errors.New("team name is required")
)

// Team builder state errors
var (
	ErrUnsupportedStateVersion = errors.New("unsupported team builder state version")
	ErrGroupTooLarge           = errors.New("group must contain at most 5 players")
	ErrTooManyPlayers          = errors.New("at most 10 players can be selected")
)
