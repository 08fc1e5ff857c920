// Package sessions maps opaque tokens to logged-in user ids. The web layer
// keeps the token in a cookie; everything below the controllers receives the
// resolved identity as an explicit argument.
package sessions

import (
	"sync"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session token.
const CookieName = "blog_session"

// Store holds active sessions in memory. Sessions do not survive a restart;
// persistence is deliberately out of scope.
type Store struct {
	tokens map[string]int
	mutex  sync.RWMutex
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{tokens: make(map[string]int)}
}

// Create starts a session for the user and returns its token.
func (s *Store) Create(userID int) string {
	token := uuid.NewString()

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.tokens[token] = userID
	return token
}

// UserID resolves a token to the owning user id.
func (s *Store) UserID(token string) (int, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	id, ok := s.tokens[token]
	return id, ok
}

// Destroy ends a session. Destroying an unknown token is a no-op.
func (s *Store) Destroy(token string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.tokens, token)
}
