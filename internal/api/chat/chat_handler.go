package chat

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/descubre-app/descubre-api/app/middleware"
	"github.com/descubre-app/descubre-api/internal/api"
	"github.com/descubre-app/descubre-api/internal/types"
)

type HandlerImpl struct {
	chatService Service
	logger      *slog.Logger
}

func NewHandlerImpl(chatService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		chatService: chatService,
		logger:      logger,
	}
}

// HandleChatMessage answers a chat message. Works for anonymous callers;
// authenticated callers additionally get session history.
func (h *HandlerImpl) HandleChatMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("chat").Start(r.Context(), "HandleChatMessage", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/chat"),
	))
	defer span.End()

	var req types.ChatRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var userID *uuid.UUID
	if id, ok := appMiddleware.GetUserIDFromContext(ctx); ok {
		userID = &id
	}

	response, err := h.chatService.HandleChatMessage(ctx, userID, req)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Message must not be empty")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to handle chat message", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to handle chat message")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, response)
}

// GetSessionHistory returns the caller's messages for one session.
func (h *HandlerImpl) GetSessionHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("chat").Start(r.Context(), "GetSessionHistory", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/chat/sessions/{sessionID}"),
	))
	defer span.End()

	userID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid session ID")
		return
	}

	messages, err := h.chatService.GetSessionHistory(ctx, userID, sessionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get session history",
			slog.String("sessionID", sessionID.String()), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get session history")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, messages)
}
