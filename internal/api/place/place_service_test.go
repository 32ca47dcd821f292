package place

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/descubre-app/descubre-api/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetPlace(ctx context.Context, id string) (*types.Place, error) {
	args := m.Called(ctx, id)
	place, _ := args.Get(0).(*types.Place)
	return place, args.Error(1)
}

func (m *MockRepository) GetPlaces(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error) {
	args := m.Called(ctx, filter)
	places, _ := args.Get(0).([]types.Place)
	return places, args.Error(1)
}

func (m *MockRepository) SearchPlaces(ctx context.Context, query string) ([]types.Place, error) {
	args := m.Called(ctx, query)
	places, _ := args.Get(0).([]types.Place)
	return places, args.Error(1)
}

func (m *MockRepository) CreatePlace(ctx context.Context, place types.Place) (*types.Place, error) {
	args := m.Called(ctx, place)
	created, _ := args.Get(0).(*types.Place)
	return created, args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServiceImpl_GetPlace(t *testing.T) {
	ctx := context.Background()

	t.Run("caches repeated lookups", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetPlace", mock.Anything, "cristo-rey").Return(&types.Place{
			Key: "cristo-rey", Name: "Cristo Rey",
		}, nil).Once()

		svc := NewService(repo, testLogger())

		first, err := svc.GetPlace(ctx, "cristo-rey")
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := svc.GetPlace(ctx, "cristo-rey")
		require.NoError(t, err)
		assert.Equal(t, first.Name, second.Name)
		repo.AssertNumberOfCalls(t, "GetPlace", 1)
	})

	t.Run("not found is not cached", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetPlace", mock.Anything, "ghost").Return(nil, nil).Twice()

		svc := NewService(repo, testLogger())

		p, err := svc.GetPlace(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, p)

		_, err = svc.GetPlace(ctx, "ghost")
		require.NoError(t, err)
		repo.AssertNumberOfCalls(t, "GetPlace", 2)
	})

	t.Run("propagates repository error", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetPlace", mock.Anything, "x").Return(nil, errors.New("db down"))

		svc := NewService(repo, testLogger())
		_, err := svc.GetPlace(ctx, "x")
		assert.Error(t, err)
	})
}

func TestServiceImpl_CreatePlace(t *testing.T) {
	ctx := context.Background()

	t.Run("canonicalizes type and crossfills key", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CreatePlace", mock.Anything, mock.MatchedBy(func(p types.Place) bool {
			return p.Key == "Hotel Obelisco" && p.Type == types.PlaceTypeLodging
		})).Return(&types.Place{ID: "1"}, nil)

		svc := NewService(repo, testLogger())
		created, err := svc.CreatePlace(ctx, types.CreatePlaceRequest{
			Name: "Hotel Obelisco",
			Type: "hotel boutique",
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		repo.AssertExpectations(t)
	})

	t.Run("rejects place without name and key", func(t *testing.T) {
		svc := NewService(new(MockRepository), testLogger())
		_, err := svc.CreatePlace(ctx, types.CreatePlaceRequest{Description: "solo texto"})
		assert.Error(t, err)
	})
}

func TestServiceImpl_SearchPlaces(t *testing.T) {
	ctx := context.Background()

	t.Run("caches search results", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("SearchPlaces", mock.Anything, "museo").Return([]types.Place{
			{Key: "museo-la-tertulia", Name: "Museo La Tertulia"},
		}, nil).Once()

		svc := NewService(repo, testLogger())

		first, err := svc.SearchPlaces(ctx, "museo")
		require.NoError(t, err)
		require.Len(t, first, 1)

		second, err := svc.SearchPlaces(ctx, "museo")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		repo.AssertNumberOfCalls(t, "SearchPlaces", 1)
	})
}
