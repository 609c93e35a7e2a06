// ABOUTME: Local account registration and login over the record store
// ABOUTME: Session state is explicit; callers pass the service, no hidden globals
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/mobitec/models"
	"github.com/harperreed/mobitec/store"
)

// Sentinel errors for the credential flows.
var (
	// ErrEmailTaken means registration hit an existing account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials means login found no matching email/password
	// pair. Deliberately does not say which half was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotLoggedIn means an operation needed a session and there is none.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrVerificationUnavailable means phone verification was requested
	// while the device has no connectivity. Accounts work without it.
	ErrVerificationUnavailable = errors.New("phone verification unavailable offline")
)

// Service owns the on-device account list and login session. Credentials
// live in plaintext in local storage, matching the system this replaces;
// this is convenience state for a single-operator device, not an
// authentication security model.
type Service struct {
	store *store.Store
}

// NewService creates an auth service over a record store.
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Register creates a local account. Email comparison is
// case-insensitive; duplicates are rejected.
func (a *Service) Register(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	users, err := a.store.LoadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if normalizeEmail(u.Email) == email {
			return nil, ErrEmailTaken
		}
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: password,
	}
	if err := a.store.AddUser(user); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return &user, nil
}

// Login checks the credentials against the local user list and, on a
// match, stores the session.
func (a *Service) Login(email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	users, err := a.store.LoadUsers()
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if normalizeEmail(u.Email) == email && u.Password == password {
			session := models.Session{Email: u.Email, LoggedInAt: time.Now().UTC()}
			if err := a.store.SaveSession(session); err != nil {
				return nil, fmt.Errorf("failed to save session: %w", err)
			}
			return &u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Logout clears the current session. Logging out while logged out is a
// no-op.
func (a *Service) Logout() error {
	return a.store.ClearSession()
}

// Current returns the logged-in user, or ErrNotLoggedIn. A session whose
// account was since removed also counts as logged out.
func (a *Service) Current() (*models.User, error) {
	session, err := a.store.LoadSession()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotLoggedIn
	}

	users, err := a.store.LoadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if normalizeEmail(u.Email) == normalizeEmail(session.Email) {
			return &u, nil
		}
	}
	return nil, ErrNotLoggedIn
}

// SendVerificationCode would text a verification code to the phone.
// Local accounts have no backend to send it, so this always fails with
// ErrVerificationUnavailable; accounts work without verification.
func (a *Service) SendVerificationCode(phoneNumber string) error {
	return ErrVerificationUnavailable
}

// ConfirmVerificationCode is the counterpart of SendVerificationCode and
// fails the same way.
func (a *Service) ConfirmVerificationCode(code string) error {
	return ErrVerificationUnavailable
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
