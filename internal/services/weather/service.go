package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/skycast-dev/skycast/internal/metrics"
	"github.com/skycast-dev/skycast/internal/models"
)

type snapshotStore interface {
	Begin() uint64
	Set(seq uint64, snap models.WeatherSnapshot, displayName string) bool
}

type renderer interface {
	Render(snap models.WeatherSnapshot, displayName string)
}

// Service drives one user-visible location change: fetch, store, fan out.
// A failed fetch leaves the previous snapshot on screen; a fetch that loses
// the sequence race is returned to its caller but never rendered.
type Service struct {
	gw     gateway
	store  snapshotStore
	render renderer
	logger zerolog.Logger
	m      *metrics.Metrics
}

func NewService(
	gw gateway,
	store snapshotStore,
	render renderer,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Service {
	logger = logger.With().Str("component", "WeatherService").Logger()
	return &Service{gw: gw, store: store, render: render, logger: logger, m: m}
}

// Show fetches the query and, on success, updates the snapshot slot and
// renders. An empty displayName falls back to "Name, Country".
func (s *Service) Show(ctx context.Context, query, displayName string) (models.WeatherSnapshot, error) {
	return s.show(ctx, query, func(snap models.WeatherSnapshot) string {
		if displayName != "" {
			return displayName
		}
		return defaultDisplayName(snap.Location)
	})
}

// ShowCoords fetches by coordinate pair (latitude first) and renders with a
// coordinate-tagged display name, region included when it adds information.
func (s *Service) ShowCoords(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	query := fmt.Sprintf("%.4f,%.4f", lat, lon)
	return s.show(ctx, query, func(snap models.WeatherSnapshot) string {
		name := snap.Location.Name
		if snap.Location.Region != "" && snap.Location.Region != snap.Location.Name {
			name += ", " + snap.Location.Region
		}
		return fmt.Sprintf("%s (%.2f, %.2f)", name, lat, lon)
	})
}

func (s *Service) show(
	ctx context.Context,
	query string,
	nameFor func(models.WeatherSnapshot) string,
) (models.WeatherSnapshot, error) {
	seq := s.store.Begin()
	start := time.Now()

	snap, err := s.gw.Fetch(ctx, query)
	outcome := fetchOutcome(err)
	s.m.FetchesTotal.WithLabelValues(outcome).Inc()
	s.m.FetchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("query", query).
			Str("outcome", outcome).
			Err(err).
			Msg("fetch failed, keeping previous snapshot")
		return models.WeatherSnapshot{}, err
	}

	displayName := nameFor(snap)
	if !s.store.Set(seq, snap, displayName) {
		s.m.StaleWritesTotal.Inc()
		s.logger.Warn().
			Ctx(ctx).
			Str("query", query).
			Uint64("seq", seq).
			Msg("dropping stale snapshot, newer request already landed")
		return snap, nil
	}

	s.render.Render(snap, displayName)
	s.logger.Info().
		Ctx(ctx).
		Str("query", query).
		Str("display_name", displayName).
		Msg("snapshot updated and rendered")
	return snap, nil
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrLocationNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	default:
		return "error"
	}
}

func defaultDisplayName(loc models.Location) string {
	if loc.Country == "" {
		return loc.Name
	}
	return loc.Name + ", " + loc.Country
}
