package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dom/scrim-team-builder/internal/api/middleware"
	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/service"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type GameHandler struct {
	gameService *service.GameService
	log         *logrus.Logger
}

func NewGameHandler(gameService *service.GameService, logger *logrus.Logger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		log:         logger,
	}
}

type RecordGameRequest struct {
	GenerationID uuid.UUID `json:"generationId"`
	WinningTeam  string    `json:"winningTeam"`
}

func (h *GameHandler) Record(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())

	var req RecordGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	winner, err := domain.ParseSide(req.WinningTeam)
	if err != nil {
		writeError(w, h.log, "GameHandler.Record", err)
		return
	}

	game, err := h.gameService.RecordWin(r.Context(), teamID, req.GenerationID, winner)
	if err != nil {
		writeError(w, h.log, "GameHandler.Record", err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "Invalid page", http.StatusBadRequest)
			return
		}
		page = parsed
	}

	games, err := h.gameService.List(r.Context(), teamID, page)
	if err != nil {
		writeError(w, h.log, "GameHandler.List", err)
		return
	}

	writeJSON(w, http.StatusOK, games)
}

func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())
	gameID, ok := urlUUID(r, "gameId")
	if !ok {
		http.Error(w, "Invalid game ID", http.StatusBadRequest)
		return
	}

	game, err := h.gameService.Get(r.Context(), teamID, gameID)
	if err != nil {
		writeError(w, h.log, "GameHandler.Get", err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// Delete undoes a recorded result
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())
	gameID, ok := urlUUID(r, "gameId")
	if !ok {
		http.Error(w, "Invalid game ID", http.StatusBadRequest)
		return
	}

	if err := h.gameService.Undo(r.Context(), teamID, gameID); err != nil {
		writeError(w, h.log, "GameHandler.Delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())

	stats, err := h.gameService.Stats(r.Context(), teamID)
	if err != nil {
		writeError(w, h.log, "GameHandler.Stats", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
