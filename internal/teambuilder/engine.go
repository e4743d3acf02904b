// Package teambuilder splits ten selected players into two five-player
// teams and gives every player one of the five lane roles, honoring
// premade groups and per-player fixed positions.
//
// The engine is a pure function of its input and a random source. It keeps
// no state between calls and a single Engine may be shared by goroutines.
package teambuilder

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/google/uuid"
)

const (
	// PlayerCount is the exact number of players a generation needs
	PlayerCount = 2 * TeamSize
	// TeamSize is the number of players on each side
	TeamSize = domain.RoleCount
	// DefaultMaxAttempts caps partition + role assignment tries per call
	DefaultMaxAttempts = 1000
)

var (
	ErrInvalidInputSize = errors.New("exactly 10 players are required")
	ErrDuplicatePlayer  = errors.New("player listed more than once")
	ErrInvalidPosition  = errors.New("allowed position is not a valid role")
	ErrUnsatisfiable    = errors.New("no team assignment satisfies the constraints")
)

// Strategy selects how players are partitioned into two teams
type Strategy string

const (
	// StrategyExhaustive tries every group-respecting 5/5 split in random order.
	// It only reports ErrUnsatisfiable when no assignment exists.
	StrategyExhaustive Strategy = "exhaustive"
	// StrategyGreedy shuffles units and fills the first team greedily.
	// A single attempt can miss a split that exists; retries compensate.
	StrategyGreedy Strategy = "greedy"
)

// ParseStrategy accepts any casing; empty selects the exhaustive strategy
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyExhaustive:
		return StrategyExhaustive, nil
	case StrategyGreedy:
		return StrategyGreedy, nil
	}
	return "", fmt.Errorf("unknown team builder strategy %q", s)
}

// Player is one selected player as seen by the engine
type Player struct {
	ID       uuid.UUID
	Nickname string
	// FixedPosition restricts the player to AllowedPositions. A fixed player
	// without allowed positions is treated as free.
	FixedPosition    bool
	AllowedPositions []domain.Role
}

func (p Player) constrained() bool {
	return p.FixedPosition && len(p.AllowedPositions) > 0
}

// Lineup maps every role of one side to its player
type Lineup map[domain.Role]Player

// Result is a complete assignment of both sides
type Result struct {
	Blue     Lineup
	Red      Lineup
	Strategy Strategy
	// Attempts is the number of partitions tried, including the successful one
	Attempts int
}

// Assignment is a flattened view of one player's placement
type Assignment struct {
	Player Player
	Side   domain.Side
	Role   domain.Role
}

// Assignments lists blue then red, each in role order
func (r *Result) Assignments() []Assignment {
	out := make([]Assignment, 0, PlayerCount)
	for _, side := range []struct {
		side   domain.Side
		lineup Lineup
	}{{domain.SideBlue, r.Blue}, {domain.SideRed, r.Red}} {
		for _, role := range domain.AllRoles {
			out = append(out, Assignment{Player: side.lineup[role], Side: side.side, Role: role})
		}
	}
	return out
}

// Placement returns the side and role of a player
func (r *Result) Placement(id uuid.UUID) (domain.Side, domain.Role, bool) {
	for _, a := range r.Assignments() {
		if a.Player.ID == id {
			return a.Side, a.Role, true
		}
	}
	return "", "", false
}

// Engine runs team assignments. The zero value is not usable; call New.
type Engine struct {
	maxAttempts int
	strategy    Strategy
	seed        *uint64
}

// Option configures an Engine
type Option func(*Engine)

// WithMaxAttempts overrides DefaultMaxAttempts. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// WithStrategy selects the partition strategy
func WithStrategy(s Strategy) Option {
	return func(e *Engine) {
		if s != "" {
			e.strategy = s
		}
	}
}

// WithSeed makes every call draw from the same deterministic sequence
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = &seed
	}
}

// New creates an engine with the exhaustive strategy and DefaultMaxAttempts
func New(opts ...Option) *Engine {
	e := &Engine{
		maxAttempts: DefaultMaxAttempts,
		strategy:    StrategyExhaustive,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strategy returns the configured partition strategy
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// MaxAttempts returns the configured attempt cap
func (e *Engine) MaxAttempts() int {
	return e.maxAttempts
}

// Assign uses a default engine
func Assign(players []Player, groups map[string][]uuid.UUID) (*Result, error) {
	return New().Assign(players, groups)
}

// Assign partitions players into Blue and Red and assigns roles.
// Group members that are not among players are ignored; groups sharing a
// player are merged.
func (e *Engine) Assign(players []Player, groups map[string][]uuid.UUID) (*Result, error) {
	if len(players) != PlayerCount {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidInputSize, len(players))
	}
	if err := validatePlayers(players); err != nil {
		return nil, err
	}

	rng := e.newRand()
	units := formUnits(players, groups)

	var res *Result
	var attempts int
	switch e.strategy {
	case StrategyGreedy:
		res, attempts = e.assignGreedy(rng, units)
	default:
		res, attempts = e.assignExhaustive(rng, units)
	}
	if res == nil {
		return nil, fmt.Errorf("%w after %d attempts", ErrUnsatisfiable, attempts)
	}
	res.Strategy = e.strategy
	res.Attempts = attempts
	return res, nil
}

func (e *Engine) newRand() *rand.Rand {
	if e.seed != nil {
		return rand.New(rand.NewPCG(*e.seed, *e.seed^0x9e3779b97f4a7c15))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func validatePlayers(players []Player) error {
	seen := make(map[uuid.UUID]bool, len(players))
	for _, p := range players {
		if seen[p.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = true

		if !p.FixedPosition {
			continue
		}
		for _, r := range p.AllowedPositions {
			if !r.IsValid() {
				return fmt.Errorf("%w: %q for player %s", ErrInvalidPosition, r, p.ID)
			}
		}
	}
	return nil
}

// sides builds a result from two staffed teams, picking which one plays blue
func sides(rng *rand.Rand, a, b Lineup) *Result {
	if rng.IntN(2) == 0 {
		return &Result{Blue: a, Red: b}
	}
	return &Result{Blue: b, Red: a}
}
