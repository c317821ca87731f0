package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wesm/browsestate/internal/catalog"
	"github.com/wesm/browsestate/internal/service"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ViewsResponse lists the configured views.
type ViewsResponse struct {
	Views []*catalog.View `json:"views"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service error to a status code.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrUnknownView):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case service.IsClientError(err):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Request failed")
	}
}

// decodeBody reads a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// handleListViews returns every configured view.
func (s *Server) handleListViews(w http.ResponseWriter, r *http.Request) {
	views := s.svc.Views()
	if views == nil {
		views = []*catalog.View{}
	}
	writeJSON(w, http.StatusOK, ViewsResponse{Views: views})
}

// handleGetView returns one view definition.
func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.View(chi.URLParam(r, "view"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// handleState decodes the request's own query string as the view's state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.State(chi.URLParam(r, "view"), r.URL.RawQuery)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// handleActions replays a batch of commands and returns the resulting URL.
func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	var req service.ActionsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	resp, err := s.svc.Apply(chi.URLParam(r, "view"), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSelection derives the bulk action URL for a row selection.
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	var req service.SelectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	resp, err := s.svc.Selection(chi.URLParam(r, "view"), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
