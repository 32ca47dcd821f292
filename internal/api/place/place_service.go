package place

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/descubre-app/descubre-api/app/observability/metrics"
	"github.com/descubre-app/descubre-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for place operations.
type Service interface {
	GetPlace(ctx context.Context, id string) (*types.Place, error)
	GetPlaces(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error)
	SearchPlaces(ctx context.Context, query string) ([]types.Place, error)
	CreatePlace(ctx context.Context, req types.CreatePlaceRequest) (*types.Place, error)
}

type ServiceImpl struct {
	logger          *slog.Logger
	placeRepository Repository
	cache           *gocache.Cache
}

func NewService(placeRepository Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:          logger,
		placeRepository: placeRepository,
		cache:           gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// GetPlace resolves a place by id or key. The chat normalizer may resolve
// the same reference repeatedly across conversation turns, so hits are
// cached. A nil result (not found) is not cached.
func (s *ServiceImpl) GetPlace(ctx context.Context, id string) (*types.Place, error) {
	cacheKey := "place:" + id
	if cached, found := s.cache.Get(cacheKey); found {
		p := cached.(types.Place)
		return &p, nil
	}

	start := time.Now()
	p, err := s.placeRepository.GetPlace(ctx, id)
	if m := metrics.Get(); m != nil {
		m.PlaceLookupDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get place", slog.String("id", id), slog.Any("error", err))
		return nil, err
	}
	if p != nil {
		s.cache.Set(cacheKey, *p, gocache.DefaultExpiration)
	}
	return p, nil
}

func (s *ServiceImpl) GetPlaces(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error) {
	places, err := s.placeRepository.GetPlaces(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get places", slog.Any("error", err))
		return nil, err
	}
	return places, nil
}

func (s *ServiceImpl) SearchPlaces(ctx context.Context, query string) ([]types.Place, error) {
	cacheKey := "search:" + query
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.([]types.Place), nil
	}

	places, err := s.placeRepository.SearchPlaces(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to search places", slog.String("query", query), slog.Any("error", err))
		return nil, err
	}
	s.cache.Set(cacheKey, places, gocache.DefaultExpiration)
	return places, nil
}

// CreatePlace canonicalizes the free-text type before persisting.
func (s *ServiceImpl) CreatePlace(ctx context.Context, req types.CreatePlaceRequest) (*types.Place, error) {
	if req.Name == "" && req.Key == "" {
		return nil, fmt.Errorf("place name or key is required")
	}
	if req.Name == "" {
		req.Name = req.Key
	}
	if req.Key == "" {
		req.Key = req.Name
	}

	created, err := s.placeRepository.CreatePlace(ctx, types.Place{
		Key:         req.Key,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Type:        types.CanonicalPlaceType(req.Type),
		Location:    req.Location,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create place", slog.String("name", req.Name), slog.Any("error", err))
		return nil, err
	}
	return created, nil
}
