package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/service"
	"github.com/dom/scrim-team-builder/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftService(t *testing.T) {
	services, db, publisher := newServices(t)
	ctx := context.Background()

	team := testutil.NewTeamBuilder().Build(t, db)
	roster := testutil.SeedRoster(t, db, team, 6)
	ids := testutil.MemberIDs(roster)

	t.Run("empty draft", func(t *testing.T) {
		state, err := services.Draft.Get(ctx, team.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TeamBuilderStateVersion, state.Version)
		assert.Empty(t, state.SelectedPlayerIDs)
	})

	base := time.Now().Add(-time.Minute).Truncate(time.Millisecond)
	stranger := uuid.New()

	state := domain.NewTeamBuilderState(base)
	state.SelectedPlayerIDs = []uuid.UUID{ids[0], ids[1], ids[1], ids[2], stranger}
	state.PlayerConstraints[ids[0]] = domain.PlayerConstraint{
		FixedPosition:     true,
		SelectedPositions: []domain.Role{domain.RoleTop, domain.RoleTop, "BOT", domain.RoleMid},
	}
	state.PlayerConstraints[ids[4]] = domain.PlayerConstraint{FixedPosition: true, SelectedPositions: []domain.Role{domain.RoleADC}}
	state.Groups["duo"] = []uuid.UUID{ids[0], ids[1]}
	state.Groups["broken"] = []uuid.UUID{ids[2], stranger}

	saved, err := services.Draft.Save(ctx, team.ID, state, "alice")
	require.NoError(t, err)

	t.Run("sanitized on save", func(t *testing.T) {
		assert.Equal(t, []uuid.UUID{ids[0], ids[1], ids[2]}, saved.SelectedPlayerIDs)
		assert.Equal(t, []domain.Role{domain.RoleTop, domain.RoleMid}, saved.PlayerConstraints[ids[0]].SelectedPositions)
		assert.NotContains(t, saved.PlayerConstraints, ids[4])
		assert.Contains(t, saved.Groups, "duo")
		assert.NotContains(t, saved.Groups, "broken")

		stored, err := services.Draft.Get(ctx, team.ID)
		require.NoError(t, err)
		assert.True(t, stored.Equal(saved))
	})

	t.Run("stale write rejected", func(t *testing.T) {
		older := domain.NewTeamBuilderState(base.Add(-time.Second))
		older.SelectedPlayerIDs = []uuid.UUID{ids[5]}
		_, err := services.Draft.Save(ctx, team.ID, older, "bob")
		assert.ErrorIs(t, err, service.ErrStaleDraft)
	})

	t.Run("unchanged state is not republished", func(t *testing.T) {
		before := len(publisher.Types())
		same := *saved
		same.UpdatedAt = base.Add(time.Second)
		_, err := services.Draft.Save(ctx, team.ID, &same, "alice")
		require.NoError(t, err)
		assert.Len(t, publisher.Types(), before)
	})

	t.Run("newer write wins", func(t *testing.T) {
		newer := domain.NewTeamBuilderState(base.Add(2 * time.Second))
		newer.SelectedPlayerIDs = []uuid.UUID{ids[5]}
		_, err := services.Draft.Save(ctx, team.ID, newer, "bob")
		require.NoError(t, err)

		stored, err := services.Draft.Get(ctx, team.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{ids[5]}, stored.SelectedPlayerIDs)
	})

	t.Run("invalid states", func(t *testing.T) {
		tooBig := domain.NewTeamBuilderState(time.Now())
		tooBig.Groups["six"] = ids
		tooBig.SelectedPlayerIDs = ids

		wrongVersion := domain.NewTeamBuilderState(time.Now())
		wrongVersion.Version = 2

		tests := []struct {
			name    string
			teamID  uuid.UUID
			state   *domain.TeamBuilderState
			wantErr error
		}{
			{"group over five", team.ID, tooBig, domain.ErrGroupTooLarge},
			{"unknown version", team.ID, wrongVersion, domain.ErrUnsupportedStateVersion},
			{"unknown team", uuid.New(), domain.NewTeamBuilderState(time.Now()), service.ErrTeamNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := services.Draft.Save(ctx, tt.teamID, tt.state, "x")
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})

	assert.Contains(t, publisher.Types(), domain.EventDraftUpdated)
}
