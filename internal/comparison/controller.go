package comparison

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/skycast-dev/skycast/internal/metrics"
	"github.com/skycast-dev/skycast/internal/models"
)

var (
	ErrEmptyCity     = errors.New("city name is empty")
	ErrDuplicateCity = errors.New("city already in the list")
)

// DefaultCities is the reset baseline for the comparison table.
var DefaultCities = []string{"Lucknow", "Hyderabad", "Pune", "Jaipur"}

// Row is one rendered comparison table line. A failed row keeps its place in
// list order and carries a retry affordance; it never hides the other cities.
type Row struct {
	City             string  `json:"city"`
	TemperatureC     float64 `json:"temperature_c,omitempty"`
	FeelsLikeC       float64 `json:"feels_like_c,omitempty"`
	HumidityPct      int     `json:"humidity_pct,omitempty"`
	WindKph          float64 `json:"wind_kph,omitempty"`
	ConditionText    string  `json:"condition_text,omitempty"`
	ConditionIconURL string  `json:"condition_icon_url,omitempty"`
	Failed           bool    `json:"failed,omitempty"`
	Error            string  `json:"error,omitempty"`
	CanRetry         bool    `json:"can_retry,omitempty"`
}

type fetcher interface {
	Fetch(ctx context.Context, query string) (models.WeatherSnapshot, error)
}

// TableSurface receives the freshly rendered rows. Optional.
type TableSurface interface {
	SetRows(rows []Row)
}

// Controller owns the user-editable city list and renders the comparison
// table. Fetches fan out concurrently up to a small limit, but rows always
// come back in list order, not completion order. Every list mutation
// triggers exactly one refresh.
type Controller struct {
	mu     sync.Mutex
	cities []string

	gw     fetcher
	store  ListStore
	table  TableSurface
	logger zerolog.Logger
	m      *metrics.Metrics
	limit  int
}

func NewController(
	ctx context.Context,
	gw fetcher,
	store ListStore,
	table TableSurface,
	logger zerolog.Logger,
	m *metrics.Metrics,
	limit int,
) *Controller {
	logger = logger.With().Str("component", "ComparisonController").Logger()
	if limit <= 0 {
		limit = 4
	}

	c := &Controller{gw: gw, store: store, table: table, logger: logger, m: m, limit: limit}

	cities, err := store.Load(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("could not load persisted city list, using defaults")
	}
	if len(cities) == 0 {
		cities = append([]string(nil), DefaultCities...)
	}
	c.cities = cities
	return c
}

// Cities returns a copy of the current list in order.
func (c *Controller) Cities() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.cities...)
}

// Add appends a city if absent (case-sensitive) and refreshes the table.
func (c *Controller) Add(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return ErrEmptyCity
	}

	c.mu.Lock()
	for _, existing := range c.cities {
		if existing == city {
			c.mu.Unlock()
			return ErrDuplicateCity
		}
	}
	c.cities = append(c.cities, city)
	c.persistLocked(ctx)
	c.mu.Unlock()

	c.Refresh(ctx)
	return nil
}

// Remove deletes a city by value and refreshes the table. Removing an
// unknown city is a no-op refresh, matching the original behavior.
func (c *Controller) Remove(ctx context.Context, city string) {
	c.mu.Lock()
	kept := c.cities[:0]
	for _, existing := range c.cities {
		if existing != city {
			kept = append(kept, existing)
		}
	}
	c.cities = kept
	c.persistLocked(ctx)
	c.mu.Unlock()

	c.Refresh(ctx)
}

// Reset replaces the list with the default set and refreshes the table.
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	c.cities = append([]string(nil), DefaultCities...)
	c.persistLocked(ctx)
	c.mu.Unlock()

	c.Refresh(ctx)
}

// Refresh fetches every listed city and renders one row per city, in list
// order. Per-city failures are isolated to their row. Also the retry target:
// the retry affordance on a failed row re-runs the full refresh.
func (c *Controller) Refresh(ctx context.Context) []Row {
	cities := c.Cities()
	rows := make([]Row, len(cities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)

	for i, city := range cities {
		g.Go(func() error {
			snap, err := c.gw.Fetch(gctx, city)
			if err != nil {
				c.logger.Warn().Ctx(ctx).Str("city", city).Err(err).Msg("comparison row failed")
				c.m.ComparisonRowFailures.WithLabelValues(city).Inc()
				rows[i] = Row{City: city, Failed: true, Error: "Failed to load", CanRetry: true}
				return nil
			}
			rows[i] = Row{
				City:             city,
				TemperatureC:     snap.Current.TemperatureC,
				FeelsLikeC:       snap.Current.FeelsLikeC,
				HumidityPct:      snap.Current.HumidityPct,
				WindKph:          snap.Current.WindKph,
				ConditionText:    snap.Current.ConditionText,
				ConditionIconURL: snap.Current.ConditionIconURL,
			}
			return nil
		})
	}

	// Workers never return errors; failures live in their rows.
	_ = g.Wait()

	c.m.ComparisonRefreshes.Inc()
	if c.table != nil {
		c.table.SetRows(rows)
	}
	return rows
}

// persistLocked saves the list; the caller holds the mutex. A failed save is
// logged and the in-memory list stays authoritative for this run.
func (c *Controller) persistLocked(ctx context.Context) {
	if err := c.store.Save(ctx, c.cities); err != nil {
		c.logger.Error().Ctx(ctx).Err(err).Msg("failed to persist city list")
	}
}
