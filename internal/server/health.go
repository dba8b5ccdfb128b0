package server

import (
	"net/http"
	"time"
)

func (s *Server) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"date":   time.Now().UTC().Format(time.RFC3339),
	})
}
