// ABOUTME: Persistence for the local user list and login session slots
// ABOUTME: Backs the offline credential check and the current-session lookup
package store

import (
	"encoding/json"
	"fmt"

	"github.com/harperreed/mobitec/models"
)

// Slot keys for authentication state.
const (
	SlotUsers   = "users"
	SlotSession = "session"
)

// LoadUsers returns the locally registered users, empty when none exist.
func (s *Store) LoadUsers() ([]models.User, error) {
	data, err := s.kv.Get([]byte(SlotUsers))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return []models.User{}, nil
	}
	return users, nil
}

// SaveUsers replaces the user list wholesale.
func (s *Store) SaveUsers(users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if users == nil {
		users = []models.User{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users slot: %w", err)
	}
	return s.kv.Set([]byte(SlotUsers), data)
}

// AddUser appends a user to the local user list.
func (s *Store) AddUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.LoadUsers()
	if err != nil {
		return err
	}
	users = append(users, user)

	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users slot: %w", err)
	}
	return s.kv.Set([]byte(SlotUsers), data)
}

// LoadSession returns the current login session, or nil when logged out.
func (s *Store) LoadSession() (*models.Session, error) {
	data, err := s.kv.Get([]byte(SlotSession))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, nil
	}
	return &session, nil
}

// SaveSession stores the current login session.
func (s *Store) SaveSession(session models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session slot: %w", err)
	}
	return s.kv.Set([]byte(SlotSession), data)
}

// ClearSession removes the current login session.
func (s *Store) ClearSession() error {
	return s.kv.Delete([]byte(SlotSession))
}
