package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/priya/resume-builder/internal/rendering"
	"github.com/priya/resume-builder/internal/server/middleware"
	"github.com/priya/resume-builder/internal/types"
)

// profileScope authorizes the {user_id} path segment for the profile and
// suggestion routes.
func (s *Server) profileScope(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return uuid.Nil, false
	}
	authedID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	if authedID != userID {
		errorResponse(w, http.StatusForbidden, "Forbidden")
		return uuid.Nil, false
	}
	return userID, true
}

func (s *Server) handleGetResumeProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.profileScope(w, r)
	if !ok {
		return
	}

	p, err := s.aggregator.BuildProfile(r.Context(), userID)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, p)
}

func (s *Server) handleGetResumeLaTeX(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.profileScope(w, r)
	if !ok {
		return
	}

	p, err := s.aggregator.BuildProfile(r.Context(), userID)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	tex, err := rendering.RenderLaTeX(p, s.templatePath)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/x-tex")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.tex"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(tex))
}

func (s *Server) handleGetResumePDF(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.profileScope(w, r)
	if !ok {
		return
	}

	p, err := s.aggregator.BuildProfile(r.Context(), userID)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	html, err := rendering.RenderHTML(p)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	pdf, err := s.pdfRenderer.RenderPDF(r.Context(), html)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (s *Server) handleSuggestSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.profileScope(w, r)
	if !ok {
		return
	}
	if s.suggester == nil {
		errorResponse(w, http.StatusServiceUnavailable, "Suggestions are not configured")
		return
	}

	p, err := s.aggregator.BuildProfile(r.Context(), userID)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	summary, err := s.suggester.SuggestSummary(r.Context(), p)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"summary": summary})
}

type suggestBulletsRequest struct {
	SectionType string `json:"section_type"`
	Description string `json:"description"`
}

func (s *Server) handleSuggestBullets(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.profileScope(w, r); !ok {
		return
	}
	if s.suggester == nil {
		errorResponse(w, http.StatusServiceUnavailable, "Suggestions are not configured")
		return
	}

	var req suggestBulletsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	section, err := types.ParseSectionType(req.SectionType)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	bullets, err := s.suggester.SuggestBullets(r.Context(), section, req.Description)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"bullets": bullets})
}
