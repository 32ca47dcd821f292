package place

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descubre-app/descubre-api/internal/types"
)

func newPlaceRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "key", "name", "description", "address", "type", "latitude", "longitude"})
}

func TestRepositoryImpl_GetPlace(t *testing.T) {
	ctx := context.Background()

	t.Run("looks up by uuid", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		id := uuid.New()
		mockPool.ExpectQuery(`SELECT .+ FROM places WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(newPlaceRows().AddRow(id, "cristo-rey", "Cristo Rey", "d", "a", "tourism", 3.4372, -76.5635))

		repo := NewRepository(mockPool, testLogger())
		place, err := repo.GetPlace(ctx, id.String())

		require.NoError(t, err)
		require.NotNil(t, place)
		assert.Equal(t, "cristo-rey", place.Key)
		assert.Equal(t, types.PlaceTypeTourism, place.Type)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("falls back to key for non-uuid ids", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		id := uuid.New()
		mockPool.ExpectQuery(`SELECT .+ FROM places WHERE key = \$1`).
			WithArgs("cristo-rey").
			WillReturnRows(newPlaceRows().AddRow(id, "cristo-rey", "Cristo Rey", "d", "a", "tourism", 3.4372, -76.5635))

		repo := NewRepository(mockPool, testLogger())
		place, err := repo.GetPlace(ctx, "cristo-rey")

		require.NoError(t, err)
		require.NotNil(t, place)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("no rows yields nil place", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectQuery(`SELECT .+ FROM places WHERE key = \$1`).
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		repo := NewRepository(mockPool, testLogger())
		place, err := repo.GetPlace(ctx, "ghost")

		require.NoError(t, err)
		assert.Nil(t, place)
	})

	t.Run("wraps query errors", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectQuery(`SELECT .+ FROM places WHERE key = \$1`).
			WithArgs("x").
			WillReturnError(errors.New("connection refused"))

		repo := NewRepository(mockPool, testLogger())
		_, err = repo.GetPlace(ctx, "x")
		assert.Error(t, err)
	})
}

func TestRepositoryImpl_GetPlaces(t *testing.T) {
	ctx := context.Background()

	t.Run("applies type filter and limit", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectQuery(`SELECT .+ FROM places WHERE type = \$1 ORDER BY name LIMIT \$2`).
			WithArgs("food", 10).
			WillReturnRows(newPlaceRows().
				AddRow(uuid.New(), "f1", "Restaurante Uno", "d", "a", "food", 3.4, -76.5).
				AddRow(uuid.New(), "f2", "Restaurante Dos", "d", "a", "food", 3.5, -76.6))

		repo := NewRepository(mockPool, testLogger())
		places, err := repo.GetPlaces(ctx, types.PlaceFilter{Type: types.PlaceTypeFood, Limit: 10})

		require.NoError(t, err)
		assert.Len(t, places, 2)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("no filter lists everything", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectQuery(`SELECT .+ FROM places ORDER BY name`).
			WillReturnRows(newPlaceRows())

		repo := NewRepository(mockPool, testLogger())
		places, err := repo.GetPlaces(ctx, types.PlaceFilter{})

		require.NoError(t, err)
		assert.Empty(t, places)
	})
}

func TestRepositoryImpl_CreatePlace(t *testing.T) {
	ctx := context.Background()

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	id := uuid.New()
	mockPool.ExpectQuery(`INSERT INTO places`).
		WithArgs("f1", "Restaurante Uno", "d", "a", "food", 3.4, -76.5).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))

	repo := NewRepository(mockPool, testLogger())
	created, err := repo.CreatePlace(ctx, types.Place{
		Key: "f1", Name: "Restaurante Uno", Description: "d", Address: "a",
		Type: types.PlaceTypeFood, Location: types.Location{Lat: 3.4, Lng: -76.5},
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, id.String(), created.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
