package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/descubre-app/descubre-api/internal/types"
)

// PGXQuerier is the subset of pgxpool.Pool used by the repository. Kept as
// an interface so tests can substitute pgxmock.
type PGXQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ Repository = (*RepositoryImpl)(nil)

// Repository persists chat sessions and their message history.
type Repository interface {
	EnsureSession(ctx context.Context, sessionID, userID uuid.UUID) error
	AddMessageToSession(ctx context.Context, sessionID uuid.UUID, message types.ConversationMessage) error
	GetSessionMessages(ctx context.Context, sessionID, userID uuid.UUID) ([]types.ConversationMessage, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool PGXQuerier
}

func NewRepository(pgpool PGXQuerier, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

// EnsureSession creates the session if it does not exist, or bumps its
// updated_at when it does.
func (r *RepositoryImpl) EnsureSession(ctx context.Context, sessionID, userID uuid.UUID) error {
	query := `
        INSERT INTO chat_sessions (id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET updated_at = now()`

	if _, err := r.pgpool.Exec(ctx, query, sessionID, userID); err != nil {
		return fmt.Errorf("failed to ensure chat session %s: %w", sessionID, err)
	}
	return nil
}

func (r *RepositoryImpl) AddMessageToSession(ctx context.Context, sessionID uuid.UUID, message types.ConversationMessage) error {
	query := `
        INSERT INTO chat_messages (id, session_id, role, content, payload, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`

	id := message.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	_, err := r.pgpool.Exec(ctx, query,
		id, sessionID, string(message.Role), message.Content, message.Payload, message.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat message into session %s: %w", sessionID, err)
	}
	return nil
}

// GetSessionMessages returns the session's messages in chronological order.
// The userID guards against reading another user's session.
func (r *RepositoryImpl) GetSessionMessages(ctx context.Context, sessionID, userID uuid.UUID) ([]types.ConversationMessage, error) {
	query := `
        SELECT m.id, m.role, m.content, m.payload, m.created_at
        FROM chat_messages m
        JOIN chat_sessions s ON s.id = m.session_id
        WHERE m.session_id = $1 AND s.user_id = $2
        ORDER BY m.created_at ASC`

	rows, err := r.pgpool.Query(ctx, query, sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var messages []types.ConversationMessage
	for rows.Next() {
		var m types.ConversationMessage
		var role string
		if err := rows.Scan(&m.ID, &role, &m.Content, &m.Payload, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat message row: %w", err)
		}
		m.Role = types.MessageRole(role)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat message rows: %w", err)
	}
	return messages, nil
}
