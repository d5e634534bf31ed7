package app

import (
	"encoding/json"
	"os"
	"strings"
)

// UserStore is the flat credential table persisted as JSON. Passwords are
// stored in plaintext; this is a demo-grade store, not an auth system.
//
// Every mutating or checking operation reloads the file first so that two
// processes sharing one table see each other's writes. There is no lock and
// no compare-and-swap, so concurrent writers can lose updates. That is a
// documented limitation of the single-admin-at-a-time usage, not a bug.
type UserStore struct {
	Path string
}

func NewUserStore(path string) *UserStore {
	if strings.TrimSpace(path) == "" {
		path = "users_db.json"
	}
	return &UserStore{Path: path}
}

// defaultUsers is the seeded table used when the file is absent or corrupt.
func defaultUsers() map[string]string {
	return map[string]string{
		"admin": "admin123",
		"user":  "password123",
		"mapua": "mapua2024",
	}
}

// Load reads the credential table. It never fails: an unreadable or
// unparseable file behaves exactly like a missing one.
func (s *UserStore) Load() map[string]string {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return defaultUsers()
	}
	var users map[string]string
	if err := json.Unmarshal(data, &users); err != nil || users == nil {
		return defaultUsers()
	}
	return users
}

// Save overwrites the table on disk. Returns false on any I/O failure.
func (s *UserStore) Save(users map[string]string) bool {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return false
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return false
	}
	return true
}

// Verify reloads the table and checks the credentials by exact match.
func (s *UserStore) Verify(username, password string) bool {
	users := s.Load()
	stored, ok := users[username]
	return ok && stored == password
}

// Create validates the sign-up fields, merges the new account into a fresh
// copy of the table and persists it. On a *ValidationError or ErrUserExists
// the table on disk is untouched.
func (s *UserStore) Create(username, password, confirm string) error {
	if username == "" || password == "" {
		return &ValidationError{Field: "credentials", Reason: "username and password are required"}
	}
	if len(username) < 3 {
		return &ValidationError{Field: "username", Reason: "must be at least 3 characters long"}
	}
	if len(password) < 6 {
		return &ValidationError{Field: "password", Reason: "must be at least 6 characters long"}
	}
	if password != confirm {
		return &ValidationError{Field: "password", Reason: "passwords do not match"}
	}
	users := s.Load()
	if _, taken := users[username]; taken {
		return ErrUserExists
	}
	users[username] = password
	if !s.Save(users) {
		return ErrPersist
	}
	return nil
}

// Delete removes the account. Returns false if the username is absent or
// the table cannot be persisted.
func (s *UserStore) Delete(username string) bool {
	users := s.Load()
	if _, ok := users[username]; !ok {
		return false
	}
	delete(users, username)
	return s.Save(users)
}
