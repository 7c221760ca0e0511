package chat

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	chatmodel "github.com/saarthi-app/backend/internal/model/chat"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionEnded rejects turns appended after a session reached its
	// terminal state.
	ErrSessionEnded = errors.New("session has ended")
)

// Store persists sessions and their append-only turns. Implementations must
// serialize turn appends per session so sequence numbers stay monotonic
// with no gaps or duplicates.
type Store interface {
	CreateSession(ctx context.Context, userID, interactionMode string) (chatmodel.Session, error)
	GetSession(ctx context.Context, sessionID string) (chatmodel.Session, error)
	AppendTurn(ctx context.Context, turn chatmodel.Turn) (chatmodel.Turn, error)
	History(ctx context.Context, sessionID string) ([]chatmodel.Turn, error)
	EndSession(ctx context.Context, sessionID, summary string) (chatmodel.Session, error)
	ListSessions(ctx context.Context, userID string) ([]chatmodel.Session, error)
}

// MemoryStore implements Store in memory. It is the always-available
// fallback when no database is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]chatmodel.Session
	turns    map[string][]chatmodel.Turn
}

// NewMemoryStore bootstraps the in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]chatmodel.Session),
		turns:    make(map[string][]chatmodel.Turn),
	}
}

// CreateSession provisions a session for the given interaction mode.
func (s *MemoryStore) CreateSession(_ context.Context, userID, interactionMode string) (chatmodel.Session, error) {
	session := chatmodel.Session{
		ID:              uuid.NewString(),
		UserID:          userID,
		InteractionMode: interactionMode,
		StartedAt:       time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.turns[session.ID] = make([]chatmodel.Turn, 0, 16)
	s.mu.Unlock()

	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *MemoryStore) GetSession(_ context.Context, sessionID string) (chatmodel.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return chatmodel.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// AppendTurn appends a turn, assigning its identifier and the next sequence
// number. The store-wide lock serializes appends, so sequences never gap.
func (s *MemoryStore) AppendTurn(_ context.Context, turn chatmodel.Turn) (chatmodel.Turn, error) {
	if turn.SessionID == "" {
		return chatmodel.Turn{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[turn.SessionID]
	if !ok {
		return chatmodel.Turn{}, ErrSessionNotFound
	}
	if session.Ended() {
		return chatmodel.Turn{}, ErrSessionEnded
	}

	turn.ID = uuid.NewString()
	turn.Sequence = session.MessageCount + 1
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	session.MessageCount = turn.Sequence
	s.sessions[turn.SessionID] = session
	s.turns[turn.SessionID] = append(s.turns[turn.SessionID], turn)

	return turn, nil
}

// History returns the stored turns for a session in sequence order.
func (s *MemoryStore) History(_ context.Context, sessionID string) ([]chatmodel.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.turns[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chatmodel.Turn, len(turns))
	copy(copied, turns)
	return copied, nil
}

// EndSession moves a session to its terminal state. Ending an already-ended
// session is a no-op returning the stored state.
func (s *MemoryStore) EndSession(_ context.Context, sessionID, summary string) (chatmodel.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chatmodel.Session{}, ErrSessionNotFound
	}
	if !session.Ended() {
		now := time.Now().UTC()
		session.EndedAt = &now
		if summary != "" {
			session.Summary = summary
		}
		s.sessions[sessionID] = session
	}
	return session, nil
}

// ListSessions returns the sessions belonging to userID, most recent first.
func (s *MemoryStore) ListSessions(_ context.Context, userID string) ([]chatmodel.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sessions []chatmodel.Session
	for _, session := range s.sessions {
		if session.UserID == userID {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	return sessions, nil
}
