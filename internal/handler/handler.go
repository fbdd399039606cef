// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rolodex/rolodex/internal/handler/dto"
)

// Handler wraps application-level endpoints that carry no dependencies.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Home lists the available routes.
// GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"message": "User Management REST API",
		"routes": map[string]string{
			"GET /users":         "list users (supports ?q=&page=&limit=)",
			"POST /users":        "create user",
			"GET /users/{id}":    "get user by id",
			"PUT /users/{id}":    "update user",
			"DELETE /users/{id}": "delete user",
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to do.
		_ = err
	}
}

// writeError writes an {"error": message} response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}
