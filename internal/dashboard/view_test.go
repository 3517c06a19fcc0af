package dashboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycast-dev/skycast/internal/comparison"
	"github.com/skycast-dev/skycast/internal/dashboard"
	"github.com/skycast-dev/skycast/internal/render"
)

func TestNewModel_Defaults(t *testing.T) {
	view := dashboard.NewModel().View()

	assert.Equal(t, render.SceneDefault, view.Scene)
	assert.Equal(t, "light", view.Theme)
	assert.False(t, view.Populated)
	assert.False(t, view.Map.Centered)
	assert.False(t, view.Globe.Set)
}

func TestModel_SettersComposeOneView(t *testing.T) {
	m := dashboard.NewModel()

	m.SetSummary(render.SummaryView{DisplayName: "Pune, India", TemperatureC: 28})
	m.SetHours([]render.HourView{{Time: "2025-04-01 00:00"}})
	m.SetScene(render.SceneRain)
	m.Recenter(18.52, 73.86)
	m.SetAtmosphere(0x4488ff)
	m.SetRows([]comparison.Row{{City: "Jaipur"}})
	m.SetTheme("dark")

	view := m.View()
	assert.Equal(t, "Pune, India", view.Summary.DisplayName)
	assert.True(t, view.Populated)
	require.Len(t, view.Hours, 1)
	assert.Equal(t, render.SceneRain, view.Scene)
	assert.Equal(t, dashboard.MapView{Latitude: 18.52, Longitude: 73.86, Centered: true}, view.Map)
	assert.Equal(t, dashboard.GlobeView{AtmosphereColor: 0x4488ff, Set: true}, view.Globe)
	require.Len(t, view.Comparison, 1)
	assert.Equal(t, "dark", view.Theme)
}

func TestView_ReturnsIndependentCopy(t *testing.T) {
	m := dashboard.NewModel()
	m.SetHours([]render.HourView{{Time: "00:00"}, {Time: "01:00"}})

	view := m.View()
	view.Hours[0].Time = "mutated"
	view.Theme = "mutated"

	fresh := m.View()
	assert.Equal(t, "00:00", fresh.Hours[0].Time)
	assert.Equal(t, "light", fresh.Theme)
}

func TestSetHours_ReplacesWholesale(t *testing.T) {
	m := dashboard.NewModel()

	m.SetHours([]render.HourView{{Time: "00:00"}, {Time: "01:00"}})
	m.SetHours([]render.HourView{{Time: "02:00"}})

	assert.Len(t, m.View().Hours, 1)
}
