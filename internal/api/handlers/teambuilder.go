package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/dom/scrim-team-builder/internal/api/middleware"
	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/service"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type TeamBuilderHandler struct {
	teamBuilderService *service.TeamBuilderService
	log                *logrus.Logger
}

func NewTeamBuilderHandler(teamBuilderService *service.TeamBuilderService, logger *logrus.Logger) *TeamBuilderHandler {
	return &TeamBuilderHandler{
		teamBuilderService: teamBuilderService,
		log:                logger,
	}
}

type ConstraintRequest struct {
	FixedPosition     bool     `json:"fixedPosition"`
	SelectedPositions []string `json:"selectedPositions"`
}

type GenerateRequest struct {
	Players     []uuid.UUID                     `json:"players"`
	Constraints map[uuid.UUID]ConstraintRequest `json:"constraints"`
	Groups      map[string][]uuid.UUID          `json:"groups"`
}

type SlotResponse struct {
	Position domain.Role `json:"position"`
	MemberID uuid.UUID   `json:"memberId"`
	Nickname string      `json:"nickname"`
}

type GenerationResponse struct {
	ID        uuid.UUID      `json:"id"`
	Strategy  string         `json:"strategy"`
	Attempts  int            `json:"attempts"`
	CreatedAt time.Time      `json:"createdAt"`
	Blue      []SlotResponse `json:"blue"`
	Red       []SlotResponse `json:"red"`
}

func newGenerationResponse(g *domain.Generation) GenerationResponse {
	return GenerationResponse{
		ID:        g.ID,
		Strategy:  g.Strategy,
		Attempts:  g.Attempts,
		CreatedAt: g.CreatedAt,
		Blue:      slots(g.Side(domain.SideBlue)),
		Red:       slots(g.Side(domain.SideRed)),
	}
}

func slots(assignments []domain.GenerationAssignment) []SlotResponse {
	out := make([]SlotResponse, 0, len(assignments))
	for _, a := range assignments {
		slot := SlotResponse{Position: a.Position, MemberID: a.MemberID}
		if a.Member != nil {
			slot.Nickname = a.Member.Nickname
		}
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Position.Index() < out[j].Position.Index()
	})
	return out
}

func (h *TeamBuilderHandler) Generate(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	input := service.GenerateInput{
		PlayerIDs:   req.Players,
		Constraints: make(map[uuid.UUID]domain.PlayerConstraint, len(req.Constraints)),
		Groups:      req.Groups,
	}
	for id, c := range req.Constraints {
		constraint := domain.PlayerConstraint{FixedPosition: c.FixedPosition}
		for _, p := range c.SelectedPositions {
			constraint.SelectedPositions = append(constraint.SelectedPositions, domain.Role(strings.ToUpper(strings.TrimSpace(p))))
		}
		input.Constraints[id] = constraint
	}

	generation, err := h.teamBuilderService.Generate(r.Context(), teamID, input)
	if err != nil {
		writeError(w, h.log, "TeamBuilderHandler.Generate", err)
		return
	}

	writeJSON(w, http.StatusOK, newGenerationResponse(generation))
}

func (h *TeamBuilderHandler) GenerateFromDraft(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())

	generation, err := h.teamBuilderService.GenerateFromDraft(r.Context(), teamID)
	if err != nil {
		writeError(w, h.log, "TeamBuilderHandler.GenerateFromDraft", err)
		return
	}

	writeJSON(w, http.StatusOK, newGenerationResponse(generation))
}

func (h *TeamBuilderHandler) GetGeneration(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())
	generationID, ok := urlUUID(r, "generationId")
	if !ok {
		http.Error(w, "Invalid generation ID", http.StatusBadRequest)
		return
	}

	generation, err := h.teamBuilderService.GetGeneration(r.Context(), teamID, generationID)
	if err != nil {
		writeError(w, h.log, "TeamBuilderHandler.GetGeneration", err)
		return
	}

	writeJSON(w, http.StatusOK, newGenerationResponse(generation))
}
