// Package store provides the file-backed user record store.
// The store owns the in-memory collection and its JSON persistence file:
// the file is loaded wholesale at startup and rewritten wholesale after
// every successful mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/rolodex/rolodex/internal/model"
)

// Store errors.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
)

// Store holds the user collection and persists it to a JSON file.
// Every operation runs its full load-check-mutate-persist sequence under
// one exclusive lock; the store is the single writer to the data file.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
	users  []model.User
}

// Open loads the collection from path. A missing, unreadable or
// malformed file is recovered by starting from an empty collection; an
// empty collection is seeded with sample records and persisted.
func Open(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logger,
		users:  []model.User{},
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// First run, nothing to load.
	case err != nil:
		logger.Warn("data file unreadable, starting with empty collection",
			"path", path,
			"error", err,
		)
	default:
		var users []model.User
		if err := json.Unmarshal(data, &users); err != nil {
			logger.Warn("data file malformed, starting with empty collection",
				"path", path,
				"error", err,
			)
		} else {
			s.users = users
		}
	}

	if len(s.users) == 0 {
		s.users = seedUsers()
		if err := s.persist(s.users); err != nil {
			return nil, fmt.Errorf("failed to persist seed data: %w", err)
		}
		logger.Info("seeded sample users", "path", path, "count", len(s.users))
	}

	return s, nil
}

// seedUsers returns the fixed sample records used when the collection is empty.
func seedUsers() []model.User {
	now := model.Now()
	return []model.User{
		{ID: 1, Name: "Aman", Email: "aman@example.com", CreatedAt: now},
		{ID: 2, Name: "Priya", Email: "priya@example.com", CreatedAt: now},
	}
}

// persist rewrites the data file with the full collection.
// Pretty-printed, non-ASCII preserved as-is.
func (s *Store) persist(users []model.User) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(users); err != nil {
		f.Close()
		return fmt.Errorf("failed to write data file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close data file: %w", err)
	}
	return nil
}

// nextID returns 1 for an empty collection, otherwise max(id)+1.
// Deleting the highest-id record frees its id for reuse; callers rely on
// this (it mirrors the data file an operator may hand-edit).
func nextID(users []model.User) int {
	max := 0
	for _, u := range users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

// findIndex returns the index of the user with the given id, or -1.
func findIndex(users []model.User, id int) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// emailTaken reports whether any record other than excludeID has the
// given email, compared case-insensitively.
func emailTaken(users []model.User, email string, excludeID int) bool {
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, u := range users {
		if u.ID == excludeID {
			continue
		}
		if strings.ToLower(u.Email) == needle {
			return true
		}
	}
	return false
}

// List returns matching users and the total match count before pagination.
// A non-empty query filters records whose name or email contains it as a
// case-insensitive substring. With limit > 0 the result is the page-th
// window of limit records; out-of-range pages yield an empty slice. With
// limit <= 0 all matches are returned.
func (s *Store) List(query string, page, limit int) ([]model.User, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))

	filtered := s.users
	if q != "" {
		filtered = make([]model.User, 0)
		for _, u := range s.users {
			if strings.Contains(strings.ToLower(u.Name), q) ||
				strings.Contains(strings.ToLower(u.Email), q) {
				filtered = append(filtered, u)
			}
		}
	}

	total := len(filtered)

	if limit > 0 {
		start := (page - 1) * limit
		if start < 0 || start >= total {
			return []model.User{}, total
		}
		end := start + limit
		if end > total {
			end = total
		}
		filtered = filtered[start:end]
	}

	out := make([]model.User, len(filtered))
	copy(out, filtered)
	return out, total
}

// Get returns the user with the given id.
func (s *Store) Get(id int) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := findIndex(s.users, id)
	if i < 0 {
		return model.User{}, ErrUserNotFound
	}
	return s.users[i], nil
}

// Create appends a new user with the next free id and persists.
// Name and email arrive validated by the caller; the store still owns
// the uniqueness check so it holds under the same lock as the mutation.
func (s *Store) Create(name, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if emailTaken(s.users, email, 0) {
		return model.User{}, ErrDuplicateEmail
	}

	user := model.User{
		ID:        nextID(s.users),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		CreatedAt: model.Now(),
	}

	next := make([]model.User, len(s.users), len(s.users)+1)
	copy(next, s.users)
	next = append(next, user)

	if err := s.persist(next); err != nil {
		return model.User{}, err
	}
	s.users = next

	return user, nil
}

// Update applies a partial update to the user with the given id and
// persists. An empty name or email means "leave unchanged" — an
// empty-string field in the request is indistinguishable from an
// omitted one and is skipped, not cleared. UpdatedAt is refreshed on
// every successful call, even when neither field changed.
func (s *Store) Update(id int, name, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := findIndex(s.users, id)
	if i < 0 {
		return model.User{}, ErrUserNotFound
	}

	if email != "" && emailTaken(s.users, email, id) {
		return model.User{}, ErrDuplicateEmail
	}

	next := make([]model.User, len(s.users))
	copy(next, s.users)

	if name != "" {
		next[i].Name = strings.TrimSpace(name)
	}
	if email != "" {
		next[i].Email = strings.TrimSpace(email)
	}
	next[i].UpdatedAt = model.Now()

	if err := s.persist(next); err != nil {
		return model.User{}, err
	}
	s.users = next

	return next[i], nil
}

// Delete removes the user with the given id and persists.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := findIndex(s.users, id)
	if i < 0 {
		return ErrUserNotFound
	}

	next := make([]model.User, 0, len(s.users)-1)
	next = append(next, s.users[:i]...)
	next = append(next, s.users[i+1:]...)

	if err := s.persist(next); err != nil {
		return err
	}
	s.users = next

	return nil
}

// Len returns the current number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
