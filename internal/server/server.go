// Package server exposes the category gateway over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"wordbank/internal/model"
	"wordbank/internal/repository"
	"wordbank/internal/service"
)

type Server struct {
	categories *service.CategoryService
	log        *zap.Logger
}

func New(categories *service.CategoryService, log *zap.Logger) *Server {
	return &Server{categories: categories, log: log}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /categories", s.handleList)
	mux.HandleFunc("POST /categories", s.handleCreate)
	return mux
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r.URL.Query().Get("limit"))
	records, err := s.categories.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if records == nil {
		records = []model.Category{}
	}
	writeJSON(w, http.StatusOK, records)
}

type createRequest struct {
	CategoryName string   `json:"categoryName"`
	Words        []string `json:"words"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: malformed JSON body", service.ErrInvalidInput))
		return
	}
	id, err := s.categories.Create(r.Context(), req.CategoryName, req.Words)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"insertedId": id})
}

// parseLimit falls back to the default on missing or non-numeric input and
// clamps numeric values into the allowed range.
func parseLimit(raw string) int {
	if raw == "" {
		return service.DefaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return service.DefaultLimit
	}
	return service.ClampLimit(n)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotReady):
		status = http.StatusServiceUnavailable
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
