package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dom/scrim-team-builder/internal/api/middleware"
	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/service"
	"github.com/sirupsen/logrus"
)

// UpdatedByHeader optionally identifies the browser session that saved a draft
const UpdatedByHeader = "X-Updated-By"

type DraftHandler struct {
	draftService *service.DraftService
	log          *logrus.Logger
}

func NewDraftHandler(draftService *service.DraftService, logger *logrus.Logger) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
		log:          logger,
	}
}

func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())

	state, err := h.draftService.Get(r.Context(), teamID)
	if err != nil {
		writeError(w, h.log, "DraftHandler.Get", err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())

	var state domain.TeamBuilderState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updatedBy := strings.TrimSpace(r.Header.Get(UpdatedByHeader))
	if len(updatedBy) > 64 {
		updatedBy = updatedBy[:64]
	}

	saved, err := h.draftService.Save(r.Context(), teamID, &state, updatedBy)
	if err != nil {
		writeError(w, h.log, "DraftHandler.Save", err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}
