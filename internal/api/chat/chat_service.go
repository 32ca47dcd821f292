package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/descubre-app/descubre-api/app/observability/metrics"
	"github.com/descubre-app/descubre-api/internal/api/place"
	"github.com/descubre-app/descubre-api/internal/types"
)

// ErrEmptyMessage is returned when the chat message is blank after trimming.
var ErrEmptyMessage = errors.New("chat message must not be empty")

var _ Service = (*ServiceImpl)(nil)

// Service is the conversational recommendation engine.
type Service interface {
	HandleChatMessage(ctx context.Context, userID *uuid.UUID, req types.ChatRequest) (*types.ChatResponse, error)
	GetSessionHistory(ctx context.Context, userID, sessionID uuid.UUID) ([]types.ConversationMessage, error)
}

type ServiceImpl struct {
	cfg          EngineConfig
	logger       *slog.Logger
	repo         Repository
	placeService place.Service
	detector     *LanguageDetector
	classifier   *IntentClassifier
	synthesizer  *ResponseSynthesizer
	normalizer   *ResponseNormalizer
}

func NewService(cfg EngineConfig, repo Repository, placeService place.Service, synthesizer *ResponseSynthesizer, normalizer *ResponseNormalizer, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		cfg:          cfg,
		logger:       logger,
		repo:         repo,
		placeService: placeService,
		detector:     NewLanguageDetector(),
		classifier:   NewIntentClassifier(),
		synthesizer:  synthesizer,
		normalizer:   normalizer,
	}
}

// HandleChatMessage runs the full pipeline: detect language, classify
// intent, synthesize, normalize, and record history for identified users.
func (s *ServiceImpl) HandleChatMessage(ctx context.Context, userID *uuid.UUID, req types.ChatRequest) (*types.ChatResponse, error) {
	ctx, span := otel.Tracer("chat").Start(ctx, "HandleChatMessage", trace.WithAttributes(
		attribute.Int("chat.message_length", len(req.Message)),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		if m := metrics.Get(); m != nil {
			m.ChatRequestsTotal.Add(ctx, 1)
			m.ChatDurationSeconds.Record(ctx, time.Since(start).Seconds())
		}
	}()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	lang := s.detector.Detect(message)
	intent := s.classifier.Classify(message)
	span.SetAttributes(
		attribute.String("chat.language", string(lang)),
		attribute.String("chat.intent", string(intent)),
	)
	s.logger.InfoContext(ctx, "Handling chat message",
		slog.String("language", string(lang)),
		slog.String("intent", string(intent)))

	candidates, err := s.placeService.GetPlaces(ctx, types.PlaceFilter{Limit: s.cfg.CandidateLimit})
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to load candidate places, continuing without them",
			slog.Any("error", err))
		candidates = nil
	}

	var response types.ChatResponse
	switch intent {
	case IntentTravelPlan:
		response = s.synthesizer.GenerateTravelPlan(ctx, message, req.Context, lang, candidates)
	default:
		response = s.synthesizer.GenerateSimpleRecommendation(ctx, message, req.Context, lang, candidates)
	}

	response = s.normalizer.Normalize(ctx, response, lang, true)

	if userID != nil {
		sessionID := uuid.New()
		if req.SessionID != nil {
			sessionID = *req.SessionID
		}
		s.recordHistory(ctx, sessionID, *userID, message, response)
		response.SessionID = &sessionID
	}

	return &response, nil
}

// recordHistory persists the exchange on a best-effort basis: a history
// failure must never fail the chat response.
func (s *ServiceImpl) recordHistory(ctx context.Context, sessionID, userID uuid.UUID, message string, response types.ChatResponse) {
	if err := s.repo.EnsureSession(ctx, sessionID, userID); err != nil {
		s.logger.WarnContext(ctx, "Failed to ensure chat session", slog.Any("error", err))
		return
	}

	now := time.Now()
	userMsg := types.ConversationMessage{
		ID:        uuid.New(),
		Role:      types.RoleUser,
		Content:   message,
		Timestamp: now,
	}
	if err := s.repo.AddMessageToSession(ctx, sessionID, userMsg); err != nil {
		s.logger.WarnContext(ctx, "Failed to record user message", slog.Any("error", err))
	}

	payload, err := json.Marshal(response)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to marshal response payload", slog.Any("error", err))
		payload = nil
	}
	assistantMsg := types.ConversationMessage{
		ID:        uuid.New(),
		Role:      types.RoleAssistant,
		Content:   response.Message,
		Payload:   payload,
		Timestamp: now,
	}
	if err := s.repo.AddMessageToSession(ctx, sessionID, assistantMsg); err != nil {
		s.logger.WarnContext(ctx, "Failed to record assistant message", slog.Any("error", err))
	}
}

func (s *ServiceImpl) GetSessionHistory(ctx context.Context, userID, sessionID uuid.UUID) ([]types.ConversationMessage, error) {
	ctx, span := otel.Tracer("chat").Start(ctx, "GetSessionHistory")
	defer span.End()

	return s.repo.GetSessionMessages(ctx, sessionID, userID)
}
