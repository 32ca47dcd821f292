package place

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

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

// Repository is the place lookup capability consumed by the chat engine and
// exposed through the places API.
type Repository interface {
	GetPlace(ctx context.Context, id string) (*types.Place, error)
	GetPlaces(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error)
	SearchPlaces(ctx context.Context, query string) ([]types.Place, error)
	CreatePlace(ctx context.Context, place types.Place) (*types.Place, error)
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

const placeColumns = `id, key, name, description, address, type, latitude, longitude`

func scanPlace(row pgx.Row) (*types.Place, error) {
	var p types.Place
	var id uuid.UUID
	err := row.Scan(&id, &p.Key, &p.Name, &p.Description, &p.Address, &p.Type, &p.Location.Lat, &p.Location.Lng)
	if err != nil {
		return nil, err
	}
	p.ID = id.String()
	return &p, nil
}

func scanPlaces(rows pgx.Rows) ([]types.Place, error) {
	defer rows.Close()
	var places []types.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place row: %w", err)
		}
		places = append(places, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating place rows: %w", err)
	}
	return places, nil
}

// GetPlace looks a place up by UUID, falling back to the stable key for
// non-UUID identifiers. Returns (nil, nil) when no place matches.
func (r *RepositoryImpl) GetPlace(ctx context.Context, id string) (*types.Place, error) {
	var query string
	var arg any
	if parsed, err := uuid.Parse(id); err == nil {
		query = fmt.Sprintf(`SELECT %s FROM places WHERE id = $1`, placeColumns)
		arg = parsed
	} else {
		query = fmt.Sprintf(`SELECT %s FROM places WHERE key = $1`, placeColumns)
		arg = id
	}

	p, err := scanPlace(r.pgpool.QueryRow(ctx, query, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query place %q: %w", id, err)
	}
	return p, nil
}

func (r *RepositoryImpl) GetPlaces(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error) {
	query := fmt.Sprintf(`SELECT %s FROM places`, placeColumns)
	args := []any{}
	if filter.Type != "" {
		query += ` WHERE type = $1`
		args = append(args, string(filter.Type))
	}
	query += ` ORDER BY name`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, filter.Limit)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	return scanPlaces(rows)
}

func (r *RepositoryImpl) SearchPlaces(ctx context.Context, query string) ([]types.Place, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	sql := fmt.Sprintf(`SELECT %s FROM places
        WHERE lower(name) LIKE $1 OR lower(description) LIKE $1 OR lower(address) LIKE $1
        ORDER BY name`, placeColumns)

	rows, err := r.pgpool.Query(ctx, sql, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}
	return scanPlaces(rows)
}

func (r *RepositoryImpl) CreatePlace(ctx context.Context, place types.Place) (*types.Place, error) {
	query := `
        INSERT INTO places (key, name, description, address, type, latitude, longitude)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`

	var id uuid.UUID
	err := r.pgpool.QueryRow(ctx, query,
		place.Key, place.Name, place.Description, place.Address,
		string(place.Type), place.Location.Lat, place.Location.Lng,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert place: %w", err)
	}
	place.ID = id.String()
	return &place, nil
}
