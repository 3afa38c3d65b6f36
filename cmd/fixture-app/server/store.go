package server

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNameRequired       = errors.New("campaign name is required")
)

// Campaign is a campaign owned by one user.
type Campaign struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store keeps users, sign-in tokens and campaigns in memory.
type Store struct {
	mu        sync.RWMutex
	users     map[string]string // username -> password
	sessions  map[string]string // token -> username
	campaigns []Campaign
}

// NewStore returns a store seeded with users.
func NewStore(users map[string]string) *Store {
	s := &Store{
		users:    make(map[string]string, len(users)),
		sessions: make(map[string]string),
	}
	for u, p := range users {
		s.users[u] = p
	}
	return s
}

// Authenticate checks a username/password pair and returns a new session
// token.
func (s *Store) Authenticate(username, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	want, ok := s.users[username]
	if !ok || want != password {
		return "", ErrInvalidCredentials
	}
	token := uuid.NewString()
	s.sessions[token] = username
	return token, nil
}

// User returns the user a token belongs to.
func (s *Store) User(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.sessions[token]
	return u, ok
}

// Logout invalidates a token.
func (s *Store) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// CreateCampaign stores a campaign for owner. The name is trimmed and must
// not be empty.
func (s *Store) CreateCampaign(owner, name, description string) (Campaign, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Campaign{}, ErrNameRequired
	}
	c := Campaign{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Owner:       owner,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = append(s.campaigns, c)
	return c, nil
}

// Campaigns returns owner's campaigns in creation order.
func (s *Store) Campaigns(owner string) []Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Campaign{}
	for _, c := range s.campaigns {
		if c.Owner == owner {
			out = append(out, c)
		}
	}
	return out
}
