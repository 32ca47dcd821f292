package chat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descubre-app/descubre-api/internal/types"
)

func TestRepositoryImpl_EnsureSession(t *testing.T) {
	ctx := context.Background()

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	sessionID := uuid.New()
	userID := uuid.New()
	mockPool.ExpectExec(`INSERT INTO chat_sessions`).
		WithArgs(sessionID, userID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewRepository(mockPool, testLogger())
	require.NoError(t, repo.EnsureSession(ctx, sessionID, userID))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepositoryImpl_AddMessageToSession(t *testing.T) {
	ctx := context.Background()

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	sessionID := uuid.New()
	msg := types.ConversationMessage{
		ID:        uuid.New(),
		Role:      types.RoleUser,
		Content:   "hola",
		Timestamp: time.Now(),
	}
	mockPool.ExpectExec(`INSERT INTO chat_messages`).
		WithArgs(msg.ID, sessionID, "user", "hola", msg.Payload, msg.Timestamp).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewRepository(mockPool, testLogger())
	require.NoError(t, repo.AddMessageToSession(ctx, sessionID, msg))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepositoryImpl_GetSessionMessages(t *testing.T) {
	ctx := context.Background()

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	sessionID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	mockPool.ExpectQuery(`SELECT .+ FROM chat_messages`).
		WithArgs(sessionID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "role", "content", "payload", "created_at"}).
			AddRow(uuid.New(), "user", "hola", []byte(nil), now).
			AddRow(uuid.New(), "assistant", "¡Hola!", []byte(`{"message":"¡Hola!"}`), now))

	repo := NewRepository(mockPool, testLogger())
	messages, err := repo.GetSessionMessages(ctx, sessionID, userID)

	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, types.RoleUser, messages[0].Role)
	assert.Equal(t, types.RoleAssistant, messages[1].Role)
	assert.NotEmpty(t, messages[1].Payload)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
