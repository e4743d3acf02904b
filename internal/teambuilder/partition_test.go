package teambuilder

import (
	"math/rand/v2"
	"testing"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func players(n int) []Player {
	out := make([]Player, n)
	for i := range out {
		out[i] = Player{ID: uuid.New()}
	}
	return out
}

func TestFormUnits(t *testing.T) {
	ps := players(10)

	units := formUnits(ps, map[string][]uuid.UUID{
		"b":     {ps[4].ID, ps[5].ID},
		"a":     {ps[1].ID, ps[2].ID, uuid.New()},
		"empty": {uuid.New()},
	})

	require.Len(t, units, 8)
	assert.Equal(t, PlayerCount, size(units))
	assert.Equal(t, unit{ps[0]}, units[0])
	assert.Equal(t, unit{ps[1], ps[2]}, units[1])
	assert.Equal(t, unit{ps[3]}, units[2])
	assert.Equal(t, unit{ps[4], ps[5]}, units[3])
}

func TestEnumerateSplits(t *testing.T) {
	ps := players(10)

	t.Run("singletons", func(t *testing.T) {
		splits := enumerateSplits(formUnits(ps, nil))
		// C(9,4): the first player is pinned to the first team
		assert.Len(t, splits, 126)
		for _, s := range splits {
			a, b := s.teams(formUnits(ps, nil))
			assert.Len(t, a, TeamSize)
			assert.Len(t, b, TeamSize)
			assert.True(t, s[0])
		}
	})

	t.Run("group of five", func(t *testing.T) {
		units := formUnits(ps, map[string][]uuid.UUID{"g": {ps[5].ID, ps[6].ID, ps[7].ID, ps[8].ID, ps[9].ID}})
		splits := enumerateSplits(units)
		require.Len(t, splits, 1)
	})

	t.Run("oversized unit", func(t *testing.T) {
		units := formUnits(ps, map[string][]uuid.UUID{"g": {ps[0].ID, ps[1].ID, ps[2].ID, ps[3].ID, ps[4].ID, ps[5].ID}})
		assert.Empty(t, enumerateSplits(units))
	})
}

func TestAssignPositions(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	t.Run("wrong team size", func(t *testing.T) {
		assert.Nil(t, assignPositions(rng, players(4)))
	})

	t.Run("colliding single roles", func(t *testing.T) {
		team := players(5)
		team[0].FixedPosition, team[0].AllowedPositions = true, []domain.Role{domain.RoleMid}
		team[1].FixedPosition, team[1].AllowedPositions = true, []domain.Role{domain.RoleMid}
		assert.Nil(t, assignPositions(rng, team))
	})

	t.Run("most constrained placed first", func(t *testing.T) {
		team := players(5)
		team[0].FixedPosition, team[0].AllowedPositions = true, []domain.Role{domain.RoleTop, domain.RoleMid}
		team[1].FixedPosition, team[1].AllowedPositions = true, []domain.Role{domain.RoleTop}
		for i := 0; i < 50; i++ {
			lineup := assignPositions(rng, team)
			require.NotNil(t, lineup)
			assert.Equal(t, team[1].ID, lineup[domain.RoleTop].ID)
			assert.Equal(t, team[0].ID, lineup[domain.RoleMid].ID)
		}
	})
}
