package weather_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skycast-dev/skycast/internal/metrics"
	"github.com/skycast-dev/skycast/internal/models"
	"github.com/skycast-dev/skycast/internal/services/weather"
	"github.com/skycast-dev/skycast/internal/store"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Fetch(ctx context.Context, query string) (models.WeatherSnapshot, error) {
	args := m.Called(ctx, query)
	snap, ok := args.Get(0).(models.WeatherSnapshot)
	if !ok {
		return models.WeatherSnapshot{}, args.Error(1)
	}
	return snap, args.Error(1)
}

type recordingRenderer struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingRenderer) Render(_ models.WeatherSnapshot, displayName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, displayName)
}

func lvivSnapshot() models.WeatherSnapshot {
	return models.WeatherSnapshot{
		Location: models.Location{Name: "Lviv", Country: "Ukraine", Latitude: 49.84, Longitude: 24.03},
		Current:  models.CurrentConditions{TemperatureC: 15, ConditionText: "Sunny"},
		Today:    models.DaySummary{MaxTempC: 18, MinTempC: 9},
	}
}

func TestShow_SuccessUpdatesStoreAndRenders(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Fetch", mock.Anything, "Lviv").Return(lvivSnapshot(), nil).Once()
	t.Cleanup(func() { gw.AssertExpectations(t) })

	snapshots := store.NewSnapshotStore()
	renderer := &recordingRenderer{}
	svc := weather.NewService(gw, snapshots, renderer, zerolog.Nop(), metrics.NewMetrics("test"))

	snap, err := svc.Show(context.Background(), "Lviv", "")
	require.NoError(t, err)
	assert.Equal(t, "Lviv", snap.Location.Name)

	stored, displayName, ok := snapshots.Get()
	require.True(t, ok)
	assert.Equal(t, "Lviv, Ukraine", displayName)
	assert.Equal(t, snap, stored)
	assert.Equal(t, []string{"Lviv, Ukraine"}, renderer.calls)
}

func TestShow_ExplicitDisplayNameWins(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Fetch", mock.Anything, "Lviv").Return(lvivSnapshot(), nil).Once()

	snapshots := store.NewSnapshotStore()
	renderer := &recordingRenderer{}
	svc := weather.NewService(gw, snapshots, renderer, zerolog.Nop(), metrics.NewMetrics("test"))

	_, err := svc.Show(context.Background(), "Lviv", "Home")
	require.NoError(t, err)

	_, displayName, _ := snapshots.Get()
	assert.Equal(t, "Home", displayName)
}

func TestShow_FetchFailureKeepsPreviousSnapshot(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Fetch", mock.Anything, "Lviv").Return(lvivSnapshot(), nil).Once()
	gw.On("Fetch", mock.Anything, "Nowhere").
		Return(models.WeatherSnapshot{}, weather.ErrLocationNotFound).Once()

	snapshots := store.NewSnapshotStore()
	renderer := &recordingRenderer{}
	svc := weather.NewService(gw, snapshots, renderer, zerolog.Nop(), metrics.NewMetrics("test"))

	_, err := svc.Show(context.Background(), "Lviv", "")
	require.NoError(t, err)

	_, err = svc.Show(context.Background(), "Nowhere", "")
	assert.ErrorIs(t, err, weather.ErrLocationNotFound)

	stored, displayName, ok := snapshots.Get()
	require.True(t, ok)
	assert.Equal(t, "Lviv", stored.Location.Name)
	assert.Equal(t, "Lviv, Ukraine", displayName)
	assert.Len(t, renderer.calls, 1)
}

// A request that was initiated earlier but finished later must not repaint
// the dashboard over a newer result.
type stalingStore struct {
	*store.SnapshotStore
	interleave func()
	once       sync.Once
}

func (s *stalingStore) Set(seq uint64, snap models.WeatherSnapshot, displayName string) bool {
	s.once.Do(s.interleave)
	return s.SnapshotStore.Set(seq, snap, displayName)
}

func TestShow_StaleRequestIsNotRendered(t *testing.T) {
	slow := lvivSnapshot()
	fast := lvivSnapshot()
	fast.Location.Name = "Pune"
	fast.Location.Country = "India"

	gw := &mockGateway{}
	gw.On("Fetch", mock.Anything, "Lviv").Return(slow, nil).Once()

	snapshots := store.NewSnapshotStore()
	wrapped := &stalingStore{
		SnapshotStore: snapshots,
		interleave: func() {
			// A later request lands first.
			seq := snapshots.Begin()
			snapshots.Set(seq, fast, "Pune, India")
		},
	}

	renderer := &recordingRenderer{}
	svc := weather.NewService(gw, wrapped, renderer, zerolog.Nop(), metrics.NewMetrics("test"))

	snap, err := svc.Show(context.Background(), "Lviv", "")
	require.NoError(t, err)
	assert.Equal(t, "Lviv", snap.Location.Name, "caller still gets its result")

	stored, displayName, _ := snapshots.Get()
	assert.Equal(t, "Pune", stored.Location.Name, "newer request keeps the slot")
	assert.Equal(t, "Pune, India", displayName)
	assert.Empty(t, renderer.calls, "stale result must not repaint")
}

func TestShowCoords_DisplayName(t *testing.T) {
	snap := lvivSnapshot()
	snap.Location.Region = "Lviv Oblast"

	gw := &mockGateway{}
	gw.On("Fetch", mock.Anything, "49.8400,24.0300").Return(snap, nil).Once()
	t.Cleanup(func() { gw.AssertExpectations(t) })

	snapshots := store.NewSnapshotStore()
	renderer := &recordingRenderer{}
	svc := weather.NewService(gw, snapshots, renderer, zerolog.Nop(), metrics.NewMetrics("test"))

	_, err := svc.ShowCoords(context.Background(), 49.84, 24.03)
	require.NoError(t, err)

	_, displayName, _ := snapshots.Get()
	assert.Equal(t, "Lviv, Lviv Oblast (49.84, 24.03)", displayName)
}

func TestShowCoords_RegionEqualToNameOmitted(t *testing.T) {
	snap := lvivSnapshot()
	snap.Location.Region = "Lviv"

	gw := &mockGateway{}
	gw.On("Fetch", mock.Anything, "49.8400,24.0300").Return(snap, nil).Once()

	snapshots := store.NewSnapshotStore()
	svc := weather.NewService(gw, snapshots, &recordingRenderer{}, zerolog.Nop(), metrics.NewMetrics("test"))

	_, err := svc.ShowCoords(context.Background(), 49.84, 24.03)
	require.NoError(t, err)

	_, displayName, _ := snapshots.Get()
	assert.Equal(t, "Lviv (49.84, 24.03)", displayName)
}

func TestFetchOutcomeClassification(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Fetch", mock.Anything, "x").
		Return(models.WeatherSnapshot{}, errors.New("connection refused")).Once()

	snapshots := store.NewSnapshotStore()
	svc := weather.NewService(gw, snapshots, &recordingRenderer{}, zerolog.Nop(), metrics.NewMetrics("test"))

	_, err := svc.Show(context.Background(), "x", "")
	require.Error(t, err)

	_, _, ok := snapshots.Get()
	assert.False(t, ok, "transport failure must not populate the slot")
}
