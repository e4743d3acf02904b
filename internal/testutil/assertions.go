package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	// Error responses are plain text in this API
	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertValidGeneration checks that a generation fills every role of both sides exactly once
func AssertValidGeneration(t *testing.T, generation *domain.Generation) {
	t.Helper()

	require.Len(t, generation.Assignments, 10, "a generation places ten players")

	seenMembers := make(map[uuid.UUID]bool)
	for _, side := range []domain.Side{domain.SideBlue, domain.SideRed} {
		roles := make(map[domain.Role]bool)
		for _, a := range generation.Side(side) {
			assert.False(t, roles[a.Position], "%s has %s twice", side, a.Position)
			roles[a.Position] = true
			assert.False(t, seenMembers[a.MemberID], "member %s placed twice", a.MemberID)
			seenMembers[a.MemberID] = true
		}
		assert.Len(t, roles, domain.RoleCount, "%s is missing a role", side)
	}
}

// PlacementOf returns the side and role a member got in a generation
func PlacementOf(generation *domain.Generation, memberID uuid.UUID) (domain.Side, domain.Role, bool) {
	for _, a := range generation.Assignments {
		if a.MemberID == memberID {
			return a.Team, a.Position, true
		}
	}
	return "", "", false
}
