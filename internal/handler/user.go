package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rolodex/rolodex/internal/handler/dto"
	"github.com/rolodex/rolodex/internal/store"
)

// Error messages returned to clients. The admin frontend matches on
// these strings, so they are part of the API surface.
const (
	msgNameRequired   = "Field 'name' is required (min 2 chars)."
	msgEmailRequired  = "Field 'email' is required and must look like an email."
	msgPayloadNotJSON = "Payload must be a JSON object."
	msgDuplicateEmail = "User with this email already exists."
	msgUserNotFound   = "User not found"
	msgNoPayload      = "No JSON payload provided"
	msgInvalidName    = "Invalid name"
	msgInvalidEmail   = "Invalid email"
	msgDuplicateOther = "Another user with this email exists."
	msgPageLimitInt   = "page and limit must be integers"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(s *store.Store, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		store:  s,
		logger: logger,
	}
}

// List handles GET /users. Supports search (q), page and limit query
// parameters; limit=0 (the default) disables pagination.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 1
	if p := query.Get("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgPageLimitInt)
			return
		}
		page = parsed
	}

	limit := 0
	if l := query.Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgPageLimitInt)
			return
		}
		limit = parsed
	}

	users, total := h.store.List(query.Get("q"), page, limit)

	writeJSON(w, http.StatusOK, dto.ToListUsersResponse(users, total, page, limit))
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.store.Get(id)
	if err != nil {
		h.handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(r)
	if err != nil || payload == nil {
		writeError(w, http.StatusBadRequest, msgPayloadNotJSON)
		return
	}

	name, ok := stringField(payload, "name")
	if !ok || len(strings.TrimSpace(name)) < 2 {
		writeError(w, http.StatusBadRequest, msgNameRequired)
		return
	}

	email, ok := stringField(payload, "email")
	if !ok || !strings.Contains(email, "@") || len(strings.TrimSpace(email)) < 5 {
		writeError(w, http.StatusBadRequest, msgEmailRequired)
		return
	}

	user, err := h.store.Create(name, email)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, msgDuplicateEmail)
			return
		}
		h.handleStoreError(w, err)
		return
	}

	h.logger.Info("user_created", "user_id", user.ID, "email", user.Email)

	writeJSON(w, http.StatusCreated, dto.UserMessageResponse{
		Message: "User created",
		User:    user,
	})
}

// Update handles PUT /users/{id}. Partial semantics: only supplied,
// truthy fields change. An empty-string field is indistinguishable from
// an omitted one and is skipped, not cleared.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	// Existence is checked before the payload so a bad body against a
	// missing record still reports 404.
	if _, err := h.store.Get(id); err != nil {
		h.handleStoreError(w, err)
		return
	}

	payload, err := decodeObject(r)
	if err != nil || len(payload) == 0 {
		writeError(w, http.StatusBadRequest, msgNoPayload)
		return
	}

	var name, email string

	if raw, present := payload["name"]; present && !isFalsy(raw) {
		s, ok := stringField(payload, "name")
		if !ok || len(strings.TrimSpace(s)) < 2 {
			writeError(w, http.StatusBadRequest, msgInvalidName)
			return
		}
		name = s
	}

	if raw, present := payload["email"]; present && !isFalsy(raw) {
		s, ok := stringField(payload, "email")
		if !ok || !strings.Contains(s, "@") || len(strings.TrimSpace(s)) < 5 {
			writeError(w, http.StatusBadRequest, msgInvalidEmail)
			return
		}
		email = s
	}

	user, err := h.store.Update(id, name, email)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, msgDuplicateOther)
			return
		}
		h.handleStoreError(w, err)
		return
	}

	h.logger.Info("user_updated", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.UserMessageResponse{
		Message: "User updated",
		User:    user,
	})
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.handleStoreError(w, err)
		return
	}

	h.logger.Info("user_deleted", "user_id", id)

	writeJSON(w, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("User (id=%d) deleted", id),
	})
}

// userID parses the {id} path parameter. A non-integer id behaves like a
// missing record and reports 404.
func (h *UserHandler) userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, msgUserNotFound)
		return 0, false
	}
	return id, true
}

// handleStoreError maps store errors to HTTP responses.
func (h *UserHandler) handleStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		writeError(w, http.StatusNotFound, msgUserNotFound)
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred")
	}
}

// decodeObject parses the request body as a JSON object. A body that is
// not valid JSON, or whose top-level value is not an object, is an error.
func decodeObject(r *http.Request) (map[string]json.RawMessage, error) {
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// stringField extracts a field as a string; ok is false when the field
// is absent or not a JSON string.
func stringField(payload map[string]json.RawMessage, key string) (string, bool) {
	raw, present := payload[key]
	if !present {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// isFalsy reports whether a raw JSON value is one the update operation
// skips: null, false, 0, "", [] or {}.
func isFalsy(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "null", "false", "0", "0.0", `""`, "[]", "{}":
		return true
	}
	return false
}
