package render_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycast-dev/skycast/internal/models"
	"github.com/skycast-dev/skycast/internal/render"
)

type fakeSurfaces struct {
	summaries [][]render.SummaryView
	hours     [][]render.HourView
	scenes    []render.Scene
	centers   [][2]float64
	colors    []uint32
}

func (f *fakeSurfaces) SetSummary(view render.SummaryView) {
	f.summaries = append(f.summaries, []render.SummaryView{view})
}

func (f *fakeSurfaces) SetHours(hours []render.HourView) {
	f.hours = append(f.hours, hours)
}

func (f *fakeSurfaces) SetScene(scene render.Scene) {
	f.scenes = append(f.scenes, scene)
}

func (f *fakeSurfaces) Recenter(lat, lon float64) {
	f.centers = append(f.centers, [2]float64{lat, lon})
}

func (f *fakeSurfaces) SetAtmosphere(color uint32) {
	f.colors = append(f.colors, color)
}

func rainSnapshot() models.WeatherSnapshot {
	return models.WeatherSnapshot{
		Location: models.Location{Name: "Pune", Latitude: 18.52, Longitude: 73.86},
		Current: models.CurrentConditions{
			TemperatureC:  22.5,
			ConditionText: "Light rain",
		},
		Hourly: []models.HourForecast{
			{Time: "2025-04-01 00:00", TemperatureC: 21},
			{Time: "2025-04-01 01:00", TemperatureC: 20.5},
		},
	}
}

func TestFanout_PushesEverySurfaceOnce(t *testing.T) {
	target := &fakeSurfaces{}
	fanout := render.NewFanout(zerolog.Nop(), render.Surfaces{
		Summary:    target,
		Hourly:     target,
		Background: target,
		Map:        target,
		Globe:      target,
	})

	fanout.Render(rainSnapshot(), "Pune, India")

	require.Len(t, target.summaries, 1)
	assert.Equal(t, "Pune, India", target.summaries[0][0].DisplayName)
	assert.Equal(t, 22.5, target.summaries[0][0].TemperatureC)

	require.Len(t, target.hours, 1)
	assert.Len(t, target.hours[0], 2)

	assert.Equal(t, []render.Scene{render.SceneRain}, target.scenes)
	assert.Equal(t, [][2]float64{{18.52, 73.86}}, target.centers)
	assert.Equal(t, []uint32{0x4488ff}, target.colors)
}

func TestFanout_RepeatedRenderReplacesHours(t *testing.T) {
	target := &fakeSurfaces{}
	fanout := render.NewFanout(zerolog.Nop(), render.Surfaces{Hourly: target})

	snap := rainSnapshot()
	fanout.Render(snap, "Pune")
	fanout.Render(snap, "Pune")

	// Two wholesale replacements, never an accumulated strip.
	require.Len(t, target.hours, 2)
	assert.Len(t, target.hours[0], 2)
	assert.Len(t, target.hours[1], 2)
}

func TestFanout_NilSurfacesSkipped(t *testing.T) {
	target := &fakeSurfaces{}
	fanout := render.NewFanout(zerolog.Nop(), render.Surfaces{Summary: target})

	assert.NotPanics(t, func() {
		fanout.Render(rainSnapshot(), "Pune")
	})
	assert.Len(t, target.summaries, 1)
	assert.Empty(t, target.colors)
}

type panickingGlobe struct{}

func (panickingGlobe) SetAtmosphere(uint32) { panic("webgl context lost") }

func TestFanout_PanickingSurfaceDoesNotBlockOthers(t *testing.T) {
	target := &fakeSurfaces{}
	fanout := render.NewFanout(zerolog.Nop(), render.Surfaces{
		Summary: target,
		Globe:   panickingGlobe{},
		Map:     target,
	})

	assert.NotPanics(t, func() {
		fanout.Render(rainSnapshot(), "Pune")
	})
	assert.Len(t, target.summaries, 1)
	assert.Len(t, target.centers, 1)
}
