// Package refresher keeps the dashboard current in the background: it
// periodically re-fetches the displayed location and the comparison table,
// and flips the theme with the time of day.
package refresher

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/skycast-dev/skycast/internal/comparison"
	"github.com/skycast-dev/skycast/internal/models"
)

const jobTimeout = 30 * time.Second

type snapshotReader interface {
	Get() (models.WeatherSnapshot, string, bool)
}

type weatherShower interface {
	Show(ctx context.Context, query, displayName string) (models.WeatherSnapshot, error)
}

type tableRefresher interface {
	Refresh(ctx context.Context) []comparison.Row
}

type themeSurface interface {
	SetTheme(theme string)
}

// Refresher schedules the periodic jobs.
type Refresher struct {
	weather    weatherShower
	snapshots  snapshotReader
	comparison tableRefresher
	theme      themeSurface
	logger     zerolog.Logger
	cron       *cron.Cron
	cancel     context.CancelFunc

	refreshSpec string
	themeSpec   string
}

func New(
	weather weatherShower,
	snapshots snapshotReader,
	table tableRefresher,
	theme themeSurface,
	logger zerolog.Logger,
	refreshSpec, themeSpec string,
) *Refresher {
	logger = logger.With().Str("component", "Refresher").Logger()
	return &Refresher{
		weather:     weather,
		snapshots:   snapshots,
		comparison:  table,
		theme:       theme,
		logger:      logger,
		cron:        cron.New(),
		refreshSpec: refreshSpec,
		themeSpec:   themeSpec,
	}
}

// Start schedules the refresh and theme jobs.
func (r *Refresher) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	if _, err := r.cron.AddFunc(r.refreshSpec, func() { r.RunRefresh(ctx) }); err != nil {
		r.logger.Error().Err(err).Str("spec", r.refreshSpec).Msg("failed to schedule refresh job")
		return err
	}
	if _, err := r.cron.AddFunc(r.themeSpec, func() { r.ApplyTheme(time.Now()) }); err != nil {
		r.logger.Error().Err(err).Str("spec", r.themeSpec).Msg("failed to schedule theme job")
		return err
	}

	// Theme applies immediately; the first refresh waits for its tick.
	r.ApplyTheme(time.Now())

	r.cron.Start()
	r.logger.Info().
		Str("refresh_spec", r.refreshSpec).
		Str("theme_spec", r.themeSpec).
		Msg("background refresher started")
	return nil
}

// Stop cancels running jobs and waits for the scheduler to drain.
func (r *Refresher) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	stopCtx := r.cron.Stop()
	<-stopCtx.Done()
	r.logger.Info().Msg("background refresher stopped")
}

// RunRefresh re-fetches the currently displayed location, keeping its
// display name, then refreshes the comparison table. Nothing to do before
// the first successful fetch.
func (r *Refresher) RunRefresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	if snap, displayName, ok := r.snapshots.Get(); ok {
		if _, err := r.weather.Show(ctx, snap.Location.Name, displayName); err != nil {
			r.logger.Warn().Err(err).
				Str("city", snap.Location.Name).
				Msg("background snapshot refresh failed")
		}
	}

	r.comparison.Refresh(ctx)
}

// ApplyTheme pushes the theme for the given wall-clock time.
func (r *Refresher) ApplyTheme(now time.Time) {
	r.theme.SetTheme(ThemeForHour(now.Hour()))
}

// ThemeForHour maps local hour to the auto theme: light through the day,
// dark otherwise.
func ThemeForHour(hour int) string {
	if hour >= 6 && hour < 18 {
		return "light"
	}
	return "dark"
}
