package service_test

import (
	"context"
	"testing"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamService(t *testing.T) {
	services, _, _ := newServices(t)
	ctx := context.Background()

	team, err := services.Team.Create(ctx, "  Scrim Squad ")
	require.NoError(t, err)
	assert.Equal(t, "Scrim Squad", team.Name)

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty name", "   ", domain.ErrTeamNameRequired},
		{"duplicate name", "Scrim Squad", service.ErrTeamNameExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.Team.Create(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("get", func(t *testing.T) {
		found, err := services.Team.Get(ctx, team.ID)
		require.NoError(t, err)
		assert.Equal(t, team.Name, found.Name)
	})

	t.Run("get unknown", func(t *testing.T) {
		_, err := services.Team.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrTeamNotFound)
	})
}
