package place

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/descubre-app/descubre-api/internal/api"
	"github.com/descubre-app/descubre-api/internal/types"
)

type HandlerImpl struct {
	placeService Service
	logger       *slog.Logger
}

func NewHandlerImpl(placeService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		placeService: placeService,
		logger:       logger,
	}
}

// GetPlace returns a single place by id or key.
func (h *HandlerImpl) GetPlace(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("place").Start(r.Context(), "GetPlace", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places/{placeID}"),
	))
	defer span.End()

	placeID := chi.URLParam(r, "placeID")
	if placeID == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Place ID is required")
		return
	}

	place, err := h.placeService.GetPlace(ctx, placeID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get place", slog.String("placeID", placeID), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get place")
		return
	}
	if place == nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Place not found")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, place)
}

// ListPlaces returns places, optionally filtered by canonical type.
func (h *HandlerImpl) ListPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("place").Start(r.Context(), "ListPlaces", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places"),
	))
	defer span.End()

	filter := types.PlaceFilter{}
	if rawType := r.URL.Query().Get("type"); rawType != "" {
		placeType := types.PlaceType(rawType)
		if !types.IsValidPlaceType(placeType) {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Unknown place type")
			return
		}
		filter.Type = placeType
	}

	places, err := h.placeService.GetPlaces(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list places", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list places")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, places)
}

// SearchPlaces returns places matching the free-text query.
func (h *HandlerImpl) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("place").Start(r.Context(), "SearchPlaces", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places/search"),
	))
	defer span.End()

	query := r.URL.Query().Get("q")
	if query == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	places, err := h.placeService.SearchPlaces(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to search places", slog.String("query", query), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to search places")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, places)
}

// CreatePlace persists a new place; the inbound type string is canonicalized.
func (h *HandlerImpl) CreatePlace(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("place").Start(r.Context(), "CreatePlace", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places"),
	))
	defer span.End()

	var req types.CreatePlaceRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.placeService.CreatePlace(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create place", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create place")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, created)
}
