package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dom/scrim-team-builder/internal/api/middleware"
	"github.com/dom/scrim-team-builder/internal/service"
	"github.com/sirupsen/logrus"
)

type TeamHandler struct {
	teamService *service.TeamService
	log         *logrus.Logger
}

func NewTeamHandler(teamService *service.TeamService, logger *logrus.Logger) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		log:         logger,
	}
}

type CreateTeamRequest struct {
	Name string `json:"name"`
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.teamService.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, h.log, "TeamHandler.Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, team)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())

	team, err := h.teamService.Get(r.Context(), teamID)
	if err != nil {
		writeError(w, h.log, "TeamHandler.Get", err)
		return
	}

	writeJSON(w, http.StatusOK, team)
}
