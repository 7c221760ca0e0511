package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chatmodel "github.com/saarthi-app/backend/internal/model/chat"
	emotionmodel "github.com/saarthi-app/backend/internal/model/emotion"
)

// PostgresStore implements Store on a pgx connection pool. Turn appends run
// in a transaction that bumps the session's message count under a row lock,
// which serializes appends per session and keeps sequence numbers gapless.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore returns a store backed by the given pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the session tables when they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS chat_sessions (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT '',
			interaction_mode TEXT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			ended_at TIMESTAMPTZ,
			message_count INT NOT NULL DEFAULT 0,
			summary TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS chat_turns (
			id UUID PRIMARY KEY,
			session_id UUID NOT NULL REFERENCES chat_sessions(id),
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			emotion JSONB,
			verse_id TEXT NOT NULL DEFAULT '',
			sequence INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE (session_id, sequence)
		);
	`)
	return err
}

// CreateSession inserts a new session row.
func (s *PostgresStore) CreateSession(ctx context.Context, userID, interactionMode string) (chatmodel.Session, error) {
	session := chatmodel.Session{
		ID:              uuid.NewString(),
		UserID:          userID,
		InteractionMode: interactionMode,
		StartedAt:       time.Now().UTC(),
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO chat_sessions (id, user_id, interaction_mode, started_at)
		VALUES ($1, $2, $3, $4)
	`, session.ID, session.UserID, session.InteractionMode, session.StartedAt)
	if err != nil {
		return chatmodel.Session{}, fmt.Errorf("insert session: %w", err)
	}
	return session, nil
}

// GetSession retrieves a session row.
func (s *PostgresStore) GetSession(ctx context.Context, sessionID string) (chatmodel.Session, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, interaction_mode, started_at, ended_at, message_count, summary
		FROM chat_sessions WHERE id = $1
	`, sessionID)
	return scanSession(row)
}

// AppendTurn assigns the next sequence number and inserts the turn.
func (s *PostgresStore) AppendTurn(ctx context.Context, turn chatmodel.Turn) (chatmodel.Turn, error) {
	if turn.SessionID == "" {
		return chatmodel.Turn{}, ErrSessionNotFound
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return chatmodel.Turn{}, err
	}
	defer tx.Rollback(ctx)

	var sequence int
	var endedAt *time.Time
	err = tx.QueryRow(ctx, `
		UPDATE chat_sessions SET message_count = message_count + 1
		WHERE id = $1
		RETURNING message_count, ended_at
	`, turn.SessionID).Scan(&sequence, &endedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return chatmodel.Turn{}, ErrSessionNotFound
	}
	if err != nil {
		return chatmodel.Turn{}, fmt.Errorf("bump message count: %w", err)
	}
	if endedAt != nil {
		// Abort the bump; the session is terminal.
		return chatmodel.Turn{}, ErrSessionEnded
	}

	turn.ID = uuid.NewString()
	turn.Sequence = sequence
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	var emotionJSON []byte
	if turn.Emotion != nil {
		emotionJSON, err = json.Marshal(turn.Emotion)
		if err != nil {
			return chatmodel.Turn{}, fmt.Errorf("marshal turn emotion: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO chat_turns (id, session_id, role, content, emotion, verse_id, sequence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, turn.ID, turn.SessionID, turn.Role, turn.Content, emotionJSON, turn.VerseID, turn.Sequence, turn.CreatedAt)
	if err != nil {
		return chatmodel.Turn{}, fmt.Errorf("insert turn: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return chatmodel.Turn{}, err
	}
	return turn, nil
}

// History returns the turns of a session in sequence order.
func (s *PostgresStore) History(ctx context.Context, sessionID string) ([]chatmodel.Turn, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, session_id, role, content, emotion, verse_id, sequence, created_at
		FROM chat_turns WHERE session_id = $1 ORDER BY sequence
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []chatmodel.Turn
	for rows.Next() {
		var turn chatmodel.Turn
		var emotionJSON []byte
		if err := rows.Scan(&turn.ID, &turn.SessionID, &turn.Role, &turn.Content, &emotionJSON, &turn.VerseID, &turn.Sequence, &turn.CreatedAt); err != nil {
			return nil, err
		}
		if len(emotionJSON) > 0 {
			var emo emotionmodel.Emotion
			if err := json.Unmarshal(emotionJSON, &emo); err == nil {
				turn.Emotion = &emo
			}
		}
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}

// EndSession marks the session terminal.
func (s *PostgresStore) EndSession(ctx context.Context, sessionID, summary string) (chatmodel.Session, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE chat_sessions
		SET ended_at = COALESCE(ended_at, now()),
		    summary = CASE WHEN ended_at IS NULL AND $2 <> '' THEN $2 ELSE summary END
		WHERE id = $1
		RETURNING id, user_id, interaction_mode, started_at, ended_at, message_count, summary
	`, sessionID, summary)
	return scanSession(row)
}

// ListSessions returns a user's sessions, most recent first.
func (s *PostgresStore) ListSessions(ctx context.Context, userID string) ([]chatmodel.Session, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, interaction_mode, started_at, ended_at, message_count, summary
		FROM chat_sessions WHERE user_id = $1 ORDER BY started_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []chatmodel.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func scanSession(row pgx.Row) (chatmodel.Session, error) {
	var session chatmodel.Session
	err := row.Scan(&session.ID, &session.UserID, &session.InteractionMode,
		&session.StartedAt, &session.EndedAt, &session.MessageCount, &session.Summary)
	if errors.Is(err, pgx.ErrNoRows) {
		return chatmodel.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return chatmodel.Session{}, err
	}
	return session, nil
}
