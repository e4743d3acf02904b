package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Member struct {
	ID           string  `json:"id"`
	Nickname     string  `json:"nickname"`
	MainPosition *string `json:"mainPosition"`
}

type Slot struct {
	Position string `json:"position"`
	MemberID string `json:"memberId"`
	Nickname string `json:"nickname"`
}

type Generation struct {
	ID       string `json:"id"`
	Strategy string `json:"strategy"`
	Attempts int    `json:"attempts"`
	Blue     []Slot `json:"blue"`
	Red      []Slot `json:"red"`
}

type Constraint struct {
	FixedPosition     bool     `json:"fixedPosition"`
	SelectedPositions []string `json:"selectedPositions,omitempty"`
}

type DraftState struct {
	Version           int                   `json:"version"`
	SelectedPlayerIDs []string              `json:"selectedPlayerIds"`
	PlayerConstraints map[string]Constraint `json:"playerConstraints"`
	Groups            map[string][]string   `json:"groups"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// CreateTeam creates a team workspace with a unique name
func (c *APIClient) CreateTeam(baseName string) (*Team, error) {
	body := map[string]string{
		"name": fmt.Sprintf("%s_%d", baseName, time.Now().UnixNano()%100000),
	}

	var team Team
	if err := c.do(http.MethodPost, "/teams", body, http.StatusCreated, &team); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	return &team, nil
}

// GetTeam fetches a team by id
func (c *APIClient) GetTeam(teamID string) (*Team, error) {
	var team Team
	if err := c.do(http.MethodGet, "/teams/"+teamID, nil, http.StatusOK, &team); err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &team, nil
}

// AddMember adds a player to the team roster
func (c *APIClient) AddMember(teamID, nickname, mainPosition string) (*Member, error) {
	body := map[string]string{
		"nickname":     nickname,
		"lolId":        nickname + "#SIM",
		"mainPosition": mainPosition,
	}

	var member Member
	if err := c.do(http.MethodPost, "/teams/"+teamID+"/members", body, http.StatusCreated, &member); err != nil {
		return nil, fmt.Errorf("add member %s: %w", nickname, err)
	}
	return &member, nil
}

// ListMembers returns the team roster
func (c *APIClient) ListMembers(teamID string) ([]Member, error) {
	var members []Member
	if err := c.do(http.MethodGet, "/teams/"+teamID+"/members", nil, http.StatusOK, &members); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// SaveDraft stores the shared team builder selection
func (c *APIClient) SaveDraft(teamID string, state DraftState) (*DraftState, error) {
	var saved DraftState
	if err := c.do(http.MethodPut, "/teams/"+teamID+"/draft", state, http.StatusOK, &saved); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return &saved, nil
}

// GenerateFromDraft runs the team builder on the stored draft
func (c *APIClient) GenerateFromDraft(teamID string) (*Generation, error) {
	var generation Generation
	if err := c.do(http.MethodPost, "/teams/"+teamID+"/generate/draft", nil, http.StatusOK, &generation); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	return &generation, nil
}

// RecordWin stores the result of a generation
func (c *APIClient) RecordWin(teamID, generationID, winner string) error {
	body := map[string]string{
		"generationId": generationID,
		"winningTeam":  winner,
	}
	if err := c.do(http.MethodPost, "/teams/"+teamID+"/games", body, http.StatusCreated, nil); err != nil {
		return fmt.Errorf("record win: %w", err)
	}
	return nil
}

// do sends a JSON request and decodes the response into out when non-nil
func (c *APIClient) do(method, path string, body interface{}, wantStatus int, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Updated-By", "simulator")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(bytes.TrimSpace(bodyBytes)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
