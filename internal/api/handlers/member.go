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

type MemberHandler struct {
	memberService *service.MemberService
	log           *logrus.Logger
}

func NewMemberHandler(memberService *service.MemberService, logger *logrus.Logger) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		log:           logger,
	}
}

type MemberRequest struct {
	Nickname     string  `json:"nickname"`
	LolID        string  `json:"lolId"`
	MainPosition *string `json:"mainPosition"`
}

func (req MemberRequest) input() (service.MemberInput, error) {
	in := service.MemberInput{Nickname: req.Nickname, LolID: req.LolID}
	if req.MainPosition != nil && strings.TrimSpace(*req.MainPosition) != "" {
		role, err := domain.ParseRole(*req.MainPosition)
		if err != nil {
			return in, err
		}
		in.MainPosition = &role
	}
	return in, nil
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())

	members, err := h.memberService.List(r.Context(), teamID)
	if err != nil {
		writeError(w, h.log, "MemberHandler.List", err)
		return
	}
	if members == nil {
		members = []*domain.Member{}
	}

	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())

	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	input, err := req.input()
	if err != nil {
		writeError(w, h.log, "MemberHandler.Create", err)
		return
	}

	member, err := h.memberService.Create(r.Context(), teamID, input)
	if err != nil {
		writeError(w, h.log, "MemberHandler.Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())
	memberID, ok := urlUUID(r, "memberId")
	if !ok {
		http.Error(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	input, err := req.input()
	if err != nil {
		writeError(w, h.log, "MemberHandler.Update", err)
		return
	}

	member, err := h.memberService.Update(r.Context(), teamID, memberID, input)
	if err != nil {
		writeError(w, h.log, "MemberHandler.Update", err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	teamID, _ := middleware.GetTeamID(r.Context())
	memberID, ok := urlUUID(r, "memberId")
	if !ok {
		http.Error(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	if err := h.memberService.Delete(r.Context(), teamID, memberID); err != nil {
		writeError(w, h.log, "MemberHandler.Delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
