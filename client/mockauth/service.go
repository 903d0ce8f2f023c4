// Package mockauth is a self-contained stand-in for real authentication
// during demos and frontend development. Accounts live in a local
// key-value store and passwords are compared in plain text; nothing
// here is suitable for production use.
package mockauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	usersKey   = "kada_connect_users"
	sessionKey = "kada_connect_session"
)

// User types accepted at sign-up.
const (
	UserTypeTrainee = "trainee"
	UserTypeCompany = "company"
)

var (
	// ErrAccountExists is returned when the email is already registered.
	ErrAccountExists = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotAuthenticated is returned by Current when nobody is logged in.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Account is a stored mock account.
type Account struct {
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	UserType  string    `json:"userType"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the logged-in state.
type Session struct {
	Email      string    `json:"email"`
	UserType   string    `json:"userType"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

// Service implements sign-up, login and session inspection over a Store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService builds a Service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// SignUp registers a new account and logs it in.
func (s *Service) SignUp(email, password, userType string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return Session{}, fmt.Errorf("a valid email is required")
	}
	if len(password) < 6 {
		return Session{}, fmt.Errorf("password must be at least 6 characters")
	}
	if userType != UserTypeTrainee && userType != UserTypeCompany {
		return Session{}, fmt.Errorf("user type must be %s or %s", UserTypeTrainee, UserTypeCompany)
	}

	accounts, err := s.loadAccounts()
	if err != nil {
		return Session{}, err
	}
	for _, account := range accounts {
		if account.Email == email {
			return Session{}, ErrAccountExists
		}
	}

	accounts = append(accounts, Account{
		Email:     email,
		Password:  password,
		UserType:  userType,
		CreatedAt: s.now(),
	})
	if err := s.saveAccounts(accounts); err != nil {
		return Session{}, err
	}

	return s.startSession(email, userType)
}

// Login checks credentials and starts a session.
func (s *Service) Login(email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	accounts, err := s.loadAccounts()
	if err != nil {
		return Session{}, err
	}
	for _, account := range accounts {
		if account.Email == email && account.Password == password {
			return s.startSession(account.Email, account.UserType)
		}
	}
	return Session{}, ErrInvalidCredentials
}

// Logout drops the current session. Logging out while logged out is
// not an error.
func (s *Service) Logout() error {
	return s.store.Delete(sessionKey)
}

// Current returns the active session.
func (s *Service) Current() (Session, error) {
	payload, err := s.store.Get(sessionKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return Session{}, ErrNotAuthenticated
		}
		return Session{}, err
	}
	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *Service) startSession(email, userType string) (Session, error) {
	session := Session{Email: email, UserType: userType, LoggedInAt: s.now()}
	payload, err := json.Marshal(session)
	if err != nil {
		return Session{}, err
	}
	if err := s.store.Set(sessionKey, payload); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *Service) loadAccounts() ([]Account, error) {
	payload, err := s.store.Get(usersKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var accounts []Account
	if err := json.Unmarshal(payload, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *Service) saveAccounts(accounts []Account) error {
	payload, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return s.store.Set(usersKey, payload)
}
