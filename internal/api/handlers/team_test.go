package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/scrim-team-builder/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type TeamResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MemberResponse struct {
	ID           string  `json:"id"`
	TeamID       string  `json:"teamId"`
	Nickname     string  `json:"nickname"`
	LolID        string  `json:"lolId"`
	MainPosition *string `json:"mainPosition"`
}

func createTeam(t *testing.T, ts *testutil.TestServer, name string) TeamResponse {
	t.Helper()
	resp := testutil.Do(t, testutil.CreateJSONRequest(t, http.MethodPost, ts.APIURL("/teams"), map[string]string{"name": name}))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var team TeamResponse
	testutil.AssertJSONResponse(t, resp, &team)
	return team
}

func TestTeamHandler(t *testing.T) {
	ts := testutil.NewTestServer(t)

	team := createTeam(t, ts, "Scrim Squad")
	assert.Equal(t, "Scrim Squad", team.Name)

	tests := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		expectedStatus int
		expectedBody   string
	}{
		{"duplicate name", http.MethodPost, "/teams", map[string]string{"name": "Scrim Squad"}, http.StatusConflict, "Team name already exists"},
		{"missing name", http.MethodPost, "/teams", map[string]string{}, http.StatusBadRequest, "team name is required"},
		{"invalid body", http.MethodPost, "/teams", "not an object", http.StatusBadRequest, "Invalid request body"},
		{"get unknown team", http.MethodGet, fmt.Sprintf("/teams/%s", uuid.New()), nil, http.StatusNotFound, "Team not found"},
		{"malformed team id", http.MethodGet, "/teams/not-a-uuid", nil, http.StatusBadRequest, "Invalid team ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.Do(t, testutil.CreateJSONRequest(t, tt.method, ts.APIURL(tt.path), tt.body))
			testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedBody)
		})
	}

	t.Run("get", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateJSONRequest(t, http.MethodGet, ts.APIURL("/teams/"+team.ID), nil))
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		var found TeamResponse
		testutil.AssertJSONResponse(t, resp, &found)
		assert.Equal(t, team.ID, found.ID)
	})

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(ts.BaseURL() + "/health")
		if assert.NoError(t, err) {
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}
	})
}

func TestMemberHandler(t *testing.T) {
	ts := testutil.NewTestServer(t)
	team := createTeam(t, ts, "Roster Team")
	membersURL := ts.APIURL(fmt.Sprintf("/teams/%s/members", team.ID))

	resp := testutil.Do(t, testutil.CreateJSONRequest(t, http.MethodPost, membersURL, map[string]string{
		"nickname":     "Keria",
		"lolId":        "Keria#KR1",
		"mainPosition": "support",
	}))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var member MemberResponse
	testutil.AssertJSONResponse(t, resp, &member)
	if assert.NotNil(t, member.MainPosition) {
		assert.Equal(t, "SUPPORT", *member.MainPosition)
	}

	tests := []struct {
		name           string
		method         string
		url            string
		body           interface{}
		expectedStatus int
		expectedBody   string
	}{
		{"missing nickname", http.MethodPost, membersURL, map[string]string{"lolId": "x"}, http.StatusBadRequest, "nickname is required"},
		{"invalid position", http.MethodPost, membersURL, map[string]string{"nickname": "x", "mainPosition": "bot"}, http.StatusBadRequest, "invalid role"},
		{"update unknown member", http.MethodPut, membersURL + "/" + uuid.New().String(), map[string]string{"nickname": "x"}, http.StatusNotFound, "Member not found"},
		{"malformed member id", http.MethodDelete, membersURL + "/nope", nil, http.StatusBadRequest, "Invalid member ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.Do(t, testutil.CreateJSONRequest(t, tt.method, tt.url, tt.body))
			testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedBody)
		})
	}

	t.Run("update", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateJSONRequest(t, http.MethodPut, membersURL+"/"+member.ID, map[string]string{
			"nickname": "Keria2",
		}))
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		var updated MemberResponse
		testutil.AssertJSONResponse(t, resp, &updated)
		assert.Equal(t, "Keria2", updated.Nickname)
		assert.Nil(t, updated.MainPosition)
	})

	t.Run("list and delete", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateJSONRequest(t, http.MethodGet, membersURL, nil))
		var members []MemberResponse
		testutil.AssertJSONResponse(t, resp, &members)
		assert.Len(t, members, 1)

		resp = testutil.Do(t, testutil.CreateJSONRequest(t, http.MethodDelete, membersURL+"/"+member.ID, nil))
		testutil.AssertStatusCode(t, resp, http.StatusNoContent)

		resp = testutil.Do(t, testutil.CreateJSONRequest(t, http.MethodGet, membersURL, nil))
		members = nil
		testutil.AssertJSONResponse(t, resp, &members)
		assert.Empty(t, members)
	})
}
