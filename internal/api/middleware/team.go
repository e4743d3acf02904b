package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/dom/scrim-team-builder/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	TeamIDKey contextKey = "teamID"
)

// TeamScope resolves the {teamId} URL parameter and rejects unknown teams
func TeamScope(teamService *service.TeamService, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			teamID, err := uuid.Parse(chi.URLParam(r, "teamId"))
			if err != nil {
				http.Error(w, "Invalid team ID", http.StatusBadRequest)
				return
			}

			if _, err := teamService.Get(r.Context(), teamID); err != nil {
				if errors.Is(err, service.ErrTeamNotFound) {
					http.Error(w, "Team not found", http.StatusNotFound)
					return
				}
				logger.WithError(err).WithField("team_id", teamID).Error("[middleware.TeamScope] failed to load team")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), TeamIDKey, teamID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetTeamID(ctx context.Context) (uuid.UUID, bool) {
	teamID, ok := ctx.Value(TeamIDKey).(uuid.UUID)
	return teamID, ok
}
