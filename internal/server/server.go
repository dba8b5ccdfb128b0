// Package server exposes the expense tracker over HTTP as a JSON API.
package server

import (
	"net/http"

	"github.com/okovalenko/spendtrack/internal/service"
)

// Server holds the HTTP handlers for the expense-tracking API.
type Server struct {
	service *service.ExpenseService
}

// New creates a new Server on top of the given service.
func New(svc *service.ExpenseService) *Server {
	return &Server{service: svc}
}

// Routes returns a mux with all API routes registered.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthcheck", s.handleHealthcheck)

	mux.HandleFunc("POST /user", s.handleCreateUser)
	mux.HandleFunc("GET /user/{id}", s.handleGetUser)
	mux.HandleFunc("DELETE /user/{id}", s.handleDeleteUser)
	mux.HandleFunc("GET /users", s.handleListUsers)

	mux.HandleFunc("POST /category", s.handleCreateCategory)
	mux.HandleFunc("GET /category", s.handleListCategories)
	mux.HandleFunc("DELETE /category", s.handleDeleteCategory)

	mux.HandleFunc("POST /record", s.handleCreateRecord)
	mux.HandleFunc("GET /record/{id}", s.handleGetRecord)
	mux.HandleFunc("DELETE /record/{id}", s.handleDeleteRecord)
	mux.HandleFunc("GET /record", s.handleListRecords)

	return mux
}
