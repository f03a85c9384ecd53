package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/priya/resume-builder/internal/server/middleware"
	"github.com/priya/resume-builder/internal/types"
)

// sectionItemRequest is the envelope for create/update calls. The
// section-specific fields travel in payload; include_in_resume defaults to
// true on create when omitted.
type sectionItemRequest struct {
	IncludeInResume *bool           `json:"include_in_resume,omitempty"`
	Payload         json.RawMessage `json:"payload"`
}

// sectionScope resolves and authorizes the (user, section) pair every section
// route is scoped by. The authenticated user may only touch their own data.
func (s *Server) sectionScope(w http.ResponseWriter, r *http.Request) (uuid.UUID, types.SectionType, bool) {
	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return uuid.Nil, "", false
	}

	authedID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, "", false
	}
	if authedID != userID {
		errorResponse(w, http.StatusForbidden, "Forbidden")
		return uuid.Nil, "", false
	}

	section, err := types.ParseSectionType(r.PathValue("section_type"))
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return uuid.Nil, "", false
	}
	return userID, section, true
}

// itemID parses the {item_id} path segment.
func itemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("item_id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid item ID")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleCreateSectionItem(w http.ResponseWriter, r *http.Request) {
	userID, section, ok := s.sectionScope(w, r)
	if !ok {
		return
	}

	var req sectionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Payload) == 0 {
		errorResponse(w, http.StatusBadRequest, "payload is required")
		return
	}

	include := true
	if req.IncludeInResume != nil {
		include = *req.IncludeInResume
	}

	item, err := s.db.CreateSectionItem(r.Context(), userID, section, req.Payload, include)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

func (s *Server) handleListSection(w http.ResponseWriter, r *http.Request) {
	userID, section, ok := s.sectionScope(w, r)
	if !ok {
		return
	}

	items, err := s.db.ListSectionItems(r.Context(), userID, section)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

func (s *Server) handleUpdateSectionItem(w http.ResponseWriter, r *http.Request) {
	userID, section, ok := s.sectionScope(w, r)
	if !ok {
		return
	}
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	var req sectionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Payload) == 0 {
		errorResponse(w, http.StatusBadRequest, "payload is required")
		return
	}

	item, err := s.db.UpdateSectionItem(r.Context(), userID, section, id, req.Payload)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

func (s *Server) handleDeleteSectionItem(w http.ResponseWriter, r *http.Request) {
	userID, section, ok := s.sectionScope(w, r)
	if !ok {
		return
	}
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteSectionItem(r.Context(), userID, section, id); err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleToggleInclude(w http.ResponseWriter, r *http.Request) {
	userID, section, ok := s.sectionScope(w, r)
	if !ok {
		return
	}
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	item, err := s.db.ToggleInclude(r.Context(), userID, section, id)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, item)
}
