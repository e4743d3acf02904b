package teambuilder

import (
	"math/rand/v2"
	"sort"

	"github.com/dom/scrim-team-builder/internal/domain"
)

// assignPositions gives each of the TeamSize players a distinct role.
// Fixed players are placed first, most constrained first, by backtracking;
// free players then fill the open roles in random order. Returns nil when
// the fixed positions cannot all be honored.
func assignPositions(rng *rand.Rand, team []Player) Lineup {
	if len(team) != TeamSize {
		return nil
	}

	var fixed, free []Player
	for _, p := range team {
		if p.constrained() {
			fixed = append(fixed, p)
		} else {
			free = append(free, p)
		}
	}

	// Shuffle before the stable sort so equally constrained players vary
	rng.Shuffle(len(fixed), func(i, j int) {
		fixed[i], fixed[j] = fixed[j], fixed[i]
	})
	sort.SliceStable(fixed, func(i, j int) bool {
		return len(fixed[i].AllowedPositions) < len(fixed[j].AllowedPositions)
	})

	lineup := make(Lineup, TeamSize)
	if !placeFixed(rng, fixed, 0, lineup) {
		return nil
	}

	var open []domain.Role
	for _, role := range domain.AllRoles {
		if _, taken := lineup[role]; !taken {
			open = append(open, role)
		}
	}
	if len(open) != len(free) {
		return nil
	}

	rng.Shuffle(len(free), func(i, j int) {
		free[i], free[j] = free[j], free[i]
	})
	for i, role := range open {
		lineup[role] = free[i]
	}
	return lineup
}

// placeFixed puts fixed[i:] into free allowed roles, undoing on dead ends
func placeFixed(rng *rand.Rand, fixed []Player, i int, lineup Lineup) bool {
	if i == len(fixed) {
		return true
	}

	p := fixed[i]
	candidates := make([]domain.Role, len(p.AllowedPositions))
	copy(candidates, p.AllowedPositions)
	rng.Shuffle(len(candidates), func(a, b int) {
		candidates[a], candidates[b] = candidates[b], candidates[a]
	})

	for _, role := range candidates {
		if _, taken := lineup[role]; taken {
			continue
		}
		lineup[role] = p
		if placeFixed(rng, fixed, i+1, lineup) {
			return true
		}
		delete(lineup, role)
	}
	return false
}
