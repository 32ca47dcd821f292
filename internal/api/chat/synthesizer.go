package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/descubre-app/descubre-api/app/observability/metrics"
	"github.com/descubre-app/descubre-api/internal/api/generative"
	"github.com/descubre-app/descubre-api/internal/types"
)

// ResponseSynthesizer builds chat responses, preferring the generative
// backend and falling back to deterministic templates built from the
// candidate places or the configured seed set.
type ResponseSynthesizer struct {
	cfg        EngineConfig
	backend    generative.Backend
	classifier *IntentClassifier
	logger     *slog.Logger
}

func NewResponseSynthesizer(cfg EngineConfig, backend generative.Backend, classifier *IntentClassifier, logger *slog.Logger) *ResponseSynthesizer {
	return &ResponseSynthesizer{
		cfg:        cfg,
		backend:    backend,
		classifier: classifier,
		logger:     logger,
	}
}

// GenerateSimpleRecommendation answers a single recommendation request. The
// generative backend gets the first shot; any failure degrades to a template
// answer over the candidates (or the seed places when no candidates exist).
func (s *ResponseSynthesizer) GenerateSimpleRecommendation(ctx context.Context, message, promptContext string, lang Language, candidates []types.Place) types.ChatResponse {
	if result := s.tryBackend(ctx, message, promptContext); result != nil {
		return types.ChatResponse{
			Message:    result.Message,
			Places:     result.Places,
			TravelPlan: result.TravelPlan,
			Timestamp:  time.Now(),
		}
	}

	places := candidates
	if len(places) > s.cfg.MaxRecommendations {
		places = places[:s.cfg.MaxRecommendations]
	}
	if len(places) == 0 {
		places = s.cfg.SeedPlaces
	}

	return types.ChatResponse{
		Message:   simpleAckMessage(lang),
		Places:    places,
		Timestamp: time.Now(),
	}
}

// GenerateTravelPlan answers a multi-day itinerary request. A backend result
// without a travel plan counts as a failure so the caller always gets a plan.
func (s *ResponseSynthesizer) GenerateTravelPlan(ctx context.Context, message, promptContext string, lang Language, candidates []types.Place) types.ChatResponse {
	if result := s.tryBackend(ctx, message, promptContext); result != nil && result.TravelPlan != nil {
		return types.ChatResponse{
			Message:    result.Message,
			Places:     result.Places,
			TravelPlan: result.TravelPlan,
			Timestamp:  time.Now(),
		}
	}

	dayCount := s.classifier.ExtractDayCount(message)
	plan := s.buildFallbackPlan(dayCount, lang, candidates)

	return types.ChatResponse{
		Message:    planAckMessage(lang, dayCount),
		TravelPlan: &plan,
		Timestamp:  time.Now(),
	}
}

func (s *ResponseSynthesizer) tryBackend(ctx context.Context, message, promptContext string) *types.GenAIChatResult {
	if s.backend == nil || !s.backend.Available() {
		return nil
	}

	result, err := s.backend.Generate(ctx, message, promptContext)
	if err != nil {
		s.logger.WarnContext(ctx, "Generative backend failed, falling back to template response",
			slog.Any("error", err))
		if m := metrics.Get(); m != nil {
			m.ChatFallbackTotal.Add(ctx, 1)
		}
		return nil
	}
	return result
}

// daySlots is the fixed fallback day shape: breakfast, morning sight, lunch,
// afternoon sight, dinner.
var daySlots = []struct {
	time     string
	category string
	place    types.PlaceType
}{
	{"08:00", "desayuno", types.PlaceTypeBreakfast},
	{"10:00", "turismo", types.PlaceTypeTourism},
	{"13:00", "almuerzo", types.PlaceTypeFood},
	{"15:00", "turismo", types.PlaceTypeTourism},
	{"19:00", "cena", types.PlaceTypeFood},
}

func (s *ResponseSynthesizer) buildFallbackPlan(dayCount int, lang Language, candidates []types.Place) types.TravelPlan {
	pool := candidates
	if len(pool) == 0 {
		pool = s.cfg.SeedPlaces
	}
	picker := newTypePicker(pool)

	days := make([]types.Day, dayCount)
	for i := range days {
		activities := make([]types.Activity, len(daySlots))
		for j, slot := range daySlots {
			place := picker.pick(slot.place)
			activities[j] = types.Activity{
				Time:     slot.time,
				Category: slot.category,
				Place:    types.PlaceOrRef{Place: &place},
			}
		}
		days[i] = types.Day{
			DayNumber:  i + 1,
			Title:      dayTitle(lang, i+1, s.cfg.CityName),
			Activities: activities,
		}
	}

	return types.TravelPlan{
		TotalDays: len(days),
		Days:      days,
	}
}

// typePicker rotates through the pool per place type so consecutive slots of
// the same type vary when the pool allows it.
type typePicker struct {
	pool    []types.Place
	cursors map[types.PlaceType]int
}

func newTypePicker(pool []types.Place) *typePicker {
	return &typePicker{pool: pool, cursors: make(map[types.PlaceType]int)}
}

func (p *typePicker) pick(t types.PlaceType) types.Place {
	matches := make([]types.Place, 0, len(p.pool))
	for _, place := range p.pool {
		if place.Type == t {
			matches = append(matches, place)
		}
	}
	if len(matches) == 0 {
		matches = p.pool
	}

	i := p.cursors[t] % len(matches)
	p.cursors[t]++
	return matches[i]
}

func simpleAckMessage(lang Language) string {
	switch lang {
	case LanguageSpanish:
		return "¡Claro! Aquí tienes algunas recomendaciones para ti:"
	case LanguagePortuguese:
		return "Claro! Aqui estão algumas recomendações para você:"
	default:
		return "Sure! Here are some recommendations for you:"
	}
}

func planAckMessage(lang Language, dayCount int) string {
	switch lang {
	case LanguageSpanish:
		return fmt.Sprintf("¡Perfecto! Te preparé un plan de %d día(s):", dayCount)
	case LanguagePortuguese:
		return fmt.Sprintf("Perfeito! Preparei um plano de %d dia(s) para você:", dayCount)
	default:
		return fmt.Sprintf("Great! Here is a %d-day plan for you:", dayCount)
	}
}

func dayTitle(lang Language, day int, city string) string {
	switch lang {
	case LanguagePortuguese:
		return fmt.Sprintf("Dia %d em %s", day, city)
	case LanguageEnglish:
		return fmt.Sprintf("Day %d in %s", day, city)
	default:
		return fmt.Sprintf("Día %d en %s", day, city)
	}
}
