package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/service"
	"github.com/dom/scrim-team-builder/internal/teambuilder"
	"github.com/dom/scrim-team-builder/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamBuilderService_Generate(t *testing.T) {
	services, db, publisher := newServices(t)
	ctx := context.Background()

	team := testutil.NewTeamBuilder().Build(t, db)
	roster := testutil.SeedRoster(t, db, team, 12)
	ids := testutil.MemberIDs(roster[:10])

	t.Run("unconstrained", func(t *testing.T) {
		generation, err := services.TeamBuilder.Generate(ctx, team.ID, service.GenerateInput{PlayerIDs: ids})
		require.NoError(t, err)
		testutil.AssertValidGeneration(t, generation)
		assert.Equal(t, string(teambuilder.StrategyExhaustive), generation.Strategy)
		for _, a := range generation.Assignments {
			require.NotNil(t, a.Member)
			assert.Equal(t, a.MemberID, a.Member.ID)
		}

		stored, err := services.TeamBuilder.GetGeneration(ctx, team.ID, generation.ID)
		require.NoError(t, err)
		testutil.AssertValidGeneration(t, stored)
	})

	t.Run("constraints and groups", func(t *testing.T) {
		input := service.GenerateInput{
			PlayerIDs: ids,
			Constraints: map[uuid.UUID]domain.PlayerConstraint{
				ids[0]: {FixedPosition: true, SelectedPositions: []domain.Role{domain.RoleMid}},
				ids[1]: {FixedPosition: true, SelectedPositions: []domain.Role{domain.RoleSupport, domain.RoleADC}},
			},
			Groups: map[string][]uuid.UUID{"duo": {ids[0], ids[1]}},
		}

		for i := 0; i < 20; i++ {
			generation, err := services.TeamBuilder.Generate(ctx, team.ID, input)
			require.NoError(t, err)
			testutil.AssertValidGeneration(t, generation)

			side0, role0, ok := testutil.PlacementOf(generation, ids[0])
			require.True(t, ok)
			side1, role1, ok := testutil.PlacementOf(generation, ids[1])
			require.True(t, ok)
			assert.Equal(t, domain.RoleMid, role0)
			assert.Contains(t, []domain.Role{domain.RoleSupport, domain.RoleADC}, role1)
			assert.Equal(t, side0, side1)
		}
	})

	t.Run("errors", func(t *testing.T) {
		outsider := testutil.NewMemberBuilder().Build(t, db)
		withOutsider := append(append([]uuid.UUID{}, ids[:9]...), outsider.ID)

		tests := []struct {
			name    string
			teamID  uuid.UUID
			input   service.GenerateInput
			wantErr error
		}{
			{"nine players", team.ID, service.GenerateInput{PlayerIDs: ids[:9]}, teambuilder.ErrInvalidInputSize},
			{"eleven players", team.ID, service.GenerateInput{PlayerIDs: testutil.MemberIDs(roster[:11])}, teambuilder.ErrInvalidInputSize},
			{"member of another team", team.ID, service.GenerateInput{PlayerIDs: withOutsider}, service.ErrMemberNotFound},
			{"unknown team", uuid.New(), service.GenerateInput{PlayerIDs: ids}, service.ErrTeamNotFound},
			{
				"two fixed mids grouped",
				team.ID,
				service.GenerateInput{
					PlayerIDs: ids,
					Constraints: map[uuid.UUID]domain.PlayerConstraint{
						ids[0]: {FixedPosition: true, SelectedPositions: []domain.Role{domain.RoleMid}},
						ids[1]: {FixedPosition: true, SelectedPositions: []domain.Role{domain.RoleMid}},
					},
					Groups: map[string][]uuid.UUID{"g": {ids[0], ids[1]}},
				},
				teambuilder.ErrUnsatisfiable,
			},
			{
				"invalid position",
				team.ID,
				service.GenerateInput{
					PlayerIDs: ids,
					Constraints: map[uuid.UUID]domain.PlayerConstraint{
						ids[0]: {FixedPosition: true, SelectedPositions: []domain.Role{"BOT"}},
					},
				},
				teambuilder.ErrInvalidPosition,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := services.TeamBuilder.Generate(ctx, tt.teamID, tt.input)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})

	t.Run("generation of another team is hidden", func(t *testing.T) {
		generation, err := services.TeamBuilder.Generate(ctx, team.ID, service.GenerateInput{PlayerIDs: ids})
		require.NoError(t, err)
		_, err = services.TeamBuilder.GetGeneration(ctx, uuid.New(), generation.ID)
		assert.ErrorIs(t, err, service.ErrGenerationNotFound)
		_, err = services.TeamBuilder.GetGeneration(ctx, team.ID, uuid.New())
		assert.ErrorIs(t, err, service.ErrGenerationNotFound)
	})

	for _, eventType := range publisher.Types() {
		assert.Equal(t, domain.EventTeamsGenerated, eventType)
	}
	assert.NotEmpty(t, publisher.Types())
}

func TestTeamBuilderService_GenerateFromDraft(t *testing.T) {
	services, db, _ := newServices(t)
	ctx := context.Background()

	team := testutil.NewTeamBuilder().Build(t, db)
	roster := testutil.SeedRoster(t, db, team, 10)
	ids := testutil.MemberIDs(roster)

	t.Run("no draft", func(t *testing.T) {
		_, err := services.TeamBuilder.GenerateFromDraft(ctx, team.ID)
		assert.ErrorIs(t, err, teambuilder.ErrInvalidInputSize)
	})

	state := domain.NewTeamBuilderState(time.Now())
	state.SelectedPlayerIDs = ids
	state.PlayerConstraints[ids[3]] = domain.PlayerConstraint{
		FixedPosition:     true,
		SelectedPositions: []domain.Role{domain.RoleJungle},
	}
	state.Groups["trio"] = []uuid.UUID{ids[3], ids[4], ids[5]}
	_, err := services.Draft.Save(ctx, team.ID, state, "tester")
	require.NoError(t, err)

	t.Run("uses stored selection", func(t *testing.T) {
		generation, err := services.TeamBuilder.GenerateFromDraft(ctx, team.ID)
		require.NoError(t, err)
		testutil.AssertValidGeneration(t, generation)

		side, role, _ := testutil.PlacementOf(generation, ids[3])
		assert.Equal(t, domain.RoleJungle, role)
		for _, id := range ids[4:6] {
			s, _, _ := testutil.PlacementOf(generation, id)
			assert.Equal(t, side, s)
		}
	})

	t.Run("deleted member shrinks the selection", func(t *testing.T) {
		require.NoError(t, services.Member.Delete(ctx, team.ID, ids[9]))
		_, err := services.TeamBuilder.GenerateFromDraft(ctx, team.ID)
		assert.ErrorIs(t, err, teambuilder.ErrInvalidInputSize)
	})
}

func TestTeamBuilderService_Prune(t *testing.T) {
	services, db, _ := newServices(t)
	ctx := context.Background()

	team := testutil.NewTeamBuilder().Build(t, db)
	roster := testutil.SeedRoster(t, db, team, 10)

	old := testutil.NewGenerationBuilder(team, roster).WithCreatedAt(time.Now().Add(-48 * time.Hour)).Build(t, db)
	recorded := testutil.NewGenerationBuilder(team, roster).WithCreatedAt(time.Now().Add(-48 * time.Hour)).Build(t, db)
	fresh := testutil.NewGenerationBuilder(team, roster).Build(t, db)
	testutil.CreateGame(t, db, recorded, domain.SideBlue, time.Now())

	deleted, err := services.TeamBuilder.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = services.TeamBuilder.GetGeneration(ctx, team.ID, old.ID)
	assert.ErrorIs(t, err, service.ErrGenerationNotFound)
	for _, id := range []uuid.UUID{recorded.ID, fresh.ID} {
		_, err = services.TeamBuilder.GetGeneration(ctx, team.ID, id)
		assert.NoError(t, err)
	}
}
