package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"
)

// FavoritesRepository persists the user's starred cities.
type FavoritesRepository struct {
	DB  *sql.DB
	log zerolog.Logger
}

func NewFavoritesRepository(db *sql.DB, logger zerolog.Logger) *FavoritesRepository {
	logger = logger.With().Str("component", "FavoritesRepository").Logger()
	return &FavoritesRepository{DB: db, log: logger}
}

// Init creates the favorites table when missing.
func (r *FavoritesRepository) Init(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS favorites (
			city       TEXT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to create favorites table")
		return err
	}
	return nil
}

// Toggle stars an unstarred city and unstars a starred one. Returns whether
// the city is a favorite after the call.
func (r *FavoritesRepository) Toggle(ctx context.Context, city string) (bool, error) {
	var cnt int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE city = ?`, city,
	).Scan(&cnt)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Str("city", city).Msg("failed to query favorite")
		return false, err
	}

	if cnt > 0 {
		if _, err := r.DB.ExecContext(ctx,
			`DELETE FROM favorites WHERE city = ?`, city); err != nil {
			r.log.Error().Err(err).Ctx(ctx).Str("city", city).Msg("failed to remove favorite")
			return false, err
		}
		r.log.Info().Ctx(ctx).Str("city", city).Msg("favorite removed")
		return false, nil
	}

	if _, err := r.DB.ExecContext(ctx,
		`INSERT INTO favorites (city, created_at) VALUES (?, ?)`,
		city, time.Now()); err != nil {
		r.log.Error().Err(err).Ctx(ctx).Str("city", city).Msg("failed to add favorite")
		return false, err
	}
	r.log.Info().Ctx(ctx).Str("city", city).Msg("favorite added")
	return true, nil
}

// List returns favorites in the order they were starred.
func (r *FavoritesRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT city FROM favorites ORDER BY created_at`)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to list favorites")
		return nil, err
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			r.log.Error().Err(err).Ctx(ctx).Msg("failed to close rows after query")
		}
	}(rows)

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			r.log.Error().Err(err).Ctx(ctx).Msg("failed to scan favorite row")
			return nil, err
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("row iteration error")
		return nil, err
	}
	return cities, nil
}
