package refresher_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/skycast-dev/skycast/internal/comparison"
	"github.com/skycast-dev/skycast/internal/models"
	"github.com/skycast-dev/skycast/internal/refresher"
	"github.com/skycast-dev/skycast/internal/store"
)

type fakeShower struct {
	calls []string
	names []string
}

func (f *fakeShower) Show(_ context.Context, query, displayName string) (models.WeatherSnapshot, error) {
	f.calls = append(f.calls, query)
	f.names = append(f.names, displayName)
	return models.WeatherSnapshot{}, nil
}

type fakeTable struct {
	refreshes int
}

func (f *fakeTable) Refresh(context.Context) []comparison.Row {
	f.refreshes++
	return nil
}

type fakeTheme struct {
	themes []string
}

func (f *fakeTheme) SetTheme(theme string) {
	f.themes = append(f.themes, theme)
}

func TestThemeForHour(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, "dark"},
		{5, "dark"},
		{6, "light"},
		{12, "light"},
		{17, "light"},
		{18, "dark"},
		{23, "dark"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, refresher.ThemeForHour(tc.hour), "hour %d", tc.hour)
	}
}

func TestRunRefresh_ReShowsDisplayedCityAndTable(t *testing.T) {
	snapshots := store.NewSnapshotStore()
	seq := snapshots.Begin()
	snapshots.Set(seq, models.WeatherSnapshot{
		Location: models.Location{Name: "Kanpur"},
	}, "Kanpur, Uttar Pradesh (26.47, 80.35)")

	shower := &fakeShower{}
	table := &fakeTable{}
	r := refresher.New(shower, snapshots, table, &fakeTheme{},
		zerolog.Nop(), "@every 15m", "@hourly")

	r.RunRefresh(context.Background())

	assert.Equal(t, []string{"Kanpur"}, shower.calls)
	assert.Equal(t, []string{"Kanpur, Uttar Pradesh (26.47, 80.35)"}, shower.names,
		"the shown display name survives a background refresh")
	assert.Equal(t, 1, table.refreshes)
}

func TestRunRefresh_SkipsWeatherBeforeFirstFetch(t *testing.T) {
	shower := &fakeShower{}
	table := &fakeTable{}
	r := refresher.New(shower, store.NewSnapshotStore(), table, &fakeTheme{},
		zerolog.Nop(), "@every 15m", "@hourly")

	r.RunRefresh(context.Background())

	assert.Empty(t, shower.calls)
	assert.Equal(t, 1, table.refreshes, "the comparison table still refreshes")
}

func TestStartStop_AppliesThemeImmediately(t *testing.T) {
	theme := &fakeTheme{}
	r := refresher.New(&fakeShower{}, store.NewSnapshotStore(), &fakeTable{}, theme,
		zerolog.Nop(), "@every 15m", "@hourly")

	assert.NoError(t, r.Start(context.Background()))
	r.Stop()

	assert.Len(t, theme.themes, 1)
	assert.Contains(t, []string{"light", "dark"}, theme.themes[0])
}

func TestStart_RejectsBadSpec(t *testing.T) {
	r := refresher.New(&fakeShower{}, store.NewSnapshotStore(), &fakeTable{}, &fakeTheme{},
		zerolog.Nop(), "not a cron spec", "@hourly")

	assert.Error(t, r.Start(context.Background()))
}
