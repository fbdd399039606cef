// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/rolodex/rolodex/internal/model"

// ListMeta describes pagination metadata for list responses.
// Limit is the requested page size, or the string "all" when the
// listing is unpaginated.
type ListMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit any `json:"limit"`
}

// ListUsersResponse is the body for GET /users.
type ListUsersResponse struct {
	Meta ListMeta     `json:"meta"`
	Data []model.User `json:"data"`
}

// UserMessageResponse is the body for successful create/update calls.
type UserMessageResponse struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToListUsersResponse builds the list body. The limit is reported as
// "all" when pagination is disabled (limit <= 0).
func ToListUsersResponse(users []model.User, total, page, limit int) ListUsersResponse {
	var metaLimit any = limit
	if limit <= 0 {
		metaLimit = "all"
	}
	if users == nil {
		users = []model.User{}
	}
	return ListUsersResponse{
		Meta: ListMeta{Total: total, Page: page, Limit: metaLimit},
		Data: users,
	}
}
