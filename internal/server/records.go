package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/okovalenko/spendtrack/internal/service"
)

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     *int64          `json:"user_id"`
		CategoryID *int64          `json:"category_id"`
		Amount     json.RawMessage `json:"amount"`
		CreatedAt  *time.Time      `json:"created_at"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	rec, err := s.service.CreateRecord(r.Context(), service.CreateRecordInput{
		UserID:     req.UserID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		CreatedAt:  req.CreatedAt,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}

	rec, err := s.service.GetRecord(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}

	if err := s.service.DeleteRecord(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryID(w, r, "user_id")
	if !ok {
		return
	}
	categoryID, ok := queryID(w, r, "category_id")
	if !ok {
		return
	}

	records, err := s.service.ListRecords(r.Context(), userID, categoryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// queryID parses an optional integer query parameter. On a malformed value
// it writes a 400 and reports ok=false.
func queryID(w http.ResponseWriter, r *http.Request, key string) (id *int64, ok bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, true
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Query parameter '"+key+"' must be an integer")
		return nil, false
	}
	return &parsed, true
}
