package stub

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/partner-hub/pkg/util"
)

// Account is a registered identity inside the emulator.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// AccountStore keeps emulator accounts in memory, keyed by lowercase email.
type AccountStore struct {
	mu      sync.RWMutex
	byEmail map[string]*Account
	byID    map[string]*Account
}

// NewAccountStore initializes an empty store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		byEmail: make(map[string]*Account),
		byID:    make(map[string]*Account),
	}
}

// Create registers a new account; duplicate emails are a conflict.
func (s *AccountStore) Create(name, email, passwordHash string) (*Account, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return nil, apperrors.NewConflict("User already registered", nil)
	}

	account := &Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.byEmail[key] = account
	s.byID[account.ID] = account
	return account, nil
}

// GetByEmail looks up an account by email, case-insensitively.
func (s *AccountStore) GetByEmail(email string) (*Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	return account, ok
}

// GetByID looks up an account by id.
func (s *AccountStore) GetByID(id string) (*Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.byID[id]
	return account, ok
}
