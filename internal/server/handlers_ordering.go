package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// setOrderRequest is the bulk-reorder body: the full ordered id list.
type setOrderRequest struct {
	ItemIDs []uuid.UUID `json:"item_ids"`
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	userID, section, ok := s.sectionScope(w, r)
	if !ok {
		return
	}

	list, err := s.db.GetSectionOrder(r.Context(), userID, section)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, list)
}

func (s *Server) handleMoveUp(w http.ResponseWriter, r *http.Request) {
	userID, section, ok := s.sectionScope(w, r)
	if !ok {
		return
	}
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	list, err := s.db.MoveItemUp(r.Context(), userID, section, id)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, list)
}

func (s *Server) handleMoveDown(w http.ResponseWriter, r *http.Request) {
	userID, section, ok := s.sectionScope(w, r)
	if !ok {
		return
	}
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	list, err := s.db.MoveItemDown(r.Context(), userID, section, id)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, list)
}

func (s *Server) handleSetOrder(w http.ResponseWriter, r *http.Request) {
	userID, section, ok := s.sectionScope(w, r)
	if !ok {
		return
	}

	var req setOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	list, err := s.db.SetSectionOrder(r.Context(), userID, section, req.ItemIDs)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, list)
}
