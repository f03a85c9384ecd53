package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/priya/resume-builder/internal/server/middleware"
)

// sectionRequest builds an authenticated request with path values set the way
// the router would set them. authedID simulates the id the auth middleware
// stored; uuid.Nil leaves the context unauthenticated.
func sectionRequest(method, pathUserID, sectionType string, authedID uuid.UUID, body string) *http.Request {
	req := httptest.NewRequest(method, "/users/x/sections/y", strings.NewReader(body))
	req.SetPathValue("user_id", pathUserID)
	req.SetPathValue("section_type", sectionType)
	if authedID != uuid.Nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), authedID))
	}
	return req
}

func TestSectionScope_InvalidUserID(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()
	req := sectionRequest(http.MethodGet, "not-a-uuid", "skill", uuid.New(), "")

	_, _, ok := s.sectionScope(rec, req)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSectionScope_Unauthenticated(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()
	req := sectionRequest(http.MethodGet, uuid.New().String(), "skill", uuid.Nil, "")

	_, _, ok := s.sectionScope(rec, req)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSectionScope_ForbidsOtherUsers(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()
	req := sectionRequest(http.MethodGet, uuid.New().String(), "skill", uuid.New(), "")

	_, _, ok := s.sectionScope(rec, req)
	assert.False(t, ok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSectionScope_UnknownSectionType(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()
	userID := uuid.New()
	req := sectionRequest(http.MethodGet, userID.String(), "hobbies", userID, "")

	_, _, ok := s.sectionScope(rec, req)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSectionScope_Valid(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()
	userID := uuid.New()
	req := sectionRequest(http.MethodGet, userID.String(), "experience", userID, "")

	gotUser, gotSection, ok := s.sectionScope(rec, req)
	assert.True(t, ok)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "experience", string(gotSection))
}

func TestHandleCreateSectionItem_BadBody(t *testing.T) {
	s := &Server{}
	userID := uuid.New()

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"missing payload", `{"include_in_resume": true}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := sectionRequest(http.MethodPost, userID.String(), "skill", userID, tc.body)
			s.handleCreateSectionItem(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestItemID_Invalid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.SetPathValue("item_id", "42")

	_, ok := itemID(rec, req)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSuggestSummary_NotConfigured(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/users/x/suggestions/summary", nil)
	req.SetPathValue("user_id", userID.String())
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))

	s.handleSuggestSummary(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()

	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestClientID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:54321"
	assert.Equal(t, "203.0.113.9", clientID(req))

	req.RemoteAddr = "bare-host"
	assert.Equal(t, "bare-host", clientID(req))
}
