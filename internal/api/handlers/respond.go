package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/service"
	"github.com/dom/scrim-team-builder/internal/teambuilder"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UnsatisfiableMessage is the body returned when no assignment satisfies the constraints
const UnsatisfiableMessage = "Failed to generate valid teams with current constraints"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func urlUUID(r *http.Request, key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, key))
	return id, err == nil
}

// writeError maps service, domain and engine errors onto status codes
func writeError(w http.ResponseWriter, log *logrus.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		http.Error(w, "Team not found", http.StatusNotFound)
	case errors.Is(err, service.ErrMemberNotFound):
		http.Error(w, "Member not found", http.StatusNotFound)
	case errors.Is(err, service.ErrGenerationNotFound):
		http.Error(w, "Generation not found", http.StatusNotFound)
	case errors.Is(err, service.ErrGameNotFound):
		http.Error(w, "Game not found", http.StatusNotFound)

	case errors.Is(err, service.ErrTeamNameExists):
		http.Error(w, "Team name already exists", http.StatusConflict)
	case errors.Is(err, service.ErrGameAlreadyRecorded):
		http.Error(w, "Result already recorded for this generation", http.StatusConflict)
	case errors.Is(err, service.ErrStaleDraft):
		http.Error(w, "Draft was updated by someone else", http.StatusConflict)

	case errors.Is(err, teambuilder.ErrUnsatisfiable):
		http.Error(w, UnsatisfiableMessage, http.StatusUnprocessableEntity)
	case errors.Is(err, teambuilder.ErrInvalidInputSize):
		http.Error(w, "Exactly 10 players must be selected", http.StatusBadRequest)
	case errors.Is(err, teambuilder.ErrDuplicatePlayer),
		errors.Is(err, teambuilder.ErrInvalidPosition),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidSide),
		errors.Is(err, domain.ErrNicknameRequired),
		errors.Is(err, domain.ErrTeamNameRequired),
		errors.Is(err, domain.ErrUnsupportedStateVersion),
		errors.Is(err, domain.ErrGroupTooLarge),
		errors.Is(err, domain.ErrTooManyPlayers):
		http.Error(w, err.Error(), http.StatusBadRequest)

	default:
		log.WithError(err).Errorf("[handlers.%s] unexpected error", op)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
