// Package dashboard holds the in-memory view-model the HTTP layer serves.
// It is the concrete surface set behind the render fan-out: each setter
// implements one surface interface, and View returns a consistent copy for
// serialization.
package dashboard

import (
	"sync"

	"github.com/skycast-dev/skycast/internal/comparison"
	"github.com/skycast-dev/skycast/internal/render"
)

// MapView is the map pin/center state.
type MapView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Centered  bool    `json:"centered"`
}

// GlobeView is the globe overlay state.
type GlobeView struct {
	AtmosphereColor uint32 `json:"atmosphere_color"`
	Set             bool   `json:"set"`
}

// View is the full dashboard state at a point in time.
type View struct {
	Summary    render.SummaryView `json:"summary"`
	Hours      []render.HourView  `json:"hours"`
	Scene      render.Scene       `json:"scene"`
	Map        MapView            `json:"map"`
	Globe      GlobeView          `json:"globe"`
	Comparison []comparison.Row   `json:"comparison"`
	Theme      string             `json:"theme"`
	Populated  bool               `json:"populated"`
}

// Model is the mutable, concurrency-safe backing store of the view.
type Model struct {
	mu   sync.RWMutex
	view View
}

func NewModel() *Model {
	return &Model{view: View{Scene: render.SceneDefault, Theme: "light"}}
}

func (m *Model) SetSummary(view render.SummaryView) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view.Summary = view
	m.view.Populated = true
}

// SetHours replaces the strip wholesale; rendering the same snapshot twice
// leaves the same tiles.
func (m *Model) SetHours(hours []render.HourView) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view.Hours = append([]render.HourView(nil), hours...)
}

func (m *Model) SetScene(scene render.Scene) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view.Scene = scene
}

func (m *Model) Recenter(lat, lon float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view.Map = MapView{Latitude: lat, Longitude: lon, Centered: true}
}

func (m *Model) SetAtmosphere(color uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view.Globe = GlobeView{AtmosphereColor: color, Set: true}
}

func (m *Model) SetRows(rows []comparison.Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view.Comparison = append([]comparison.Row(nil), rows...)
}

func (m *Model) SetTheme(theme string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view.Theme = theme
}

// View returns a copy safe to serialize while renders continue.
func (m *Model) View() View {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v := m.view
	v.Hours = append([]render.HourView(nil), m.view.Hours...)
	v.Comparison = append([]comparison.Row(nil), m.view.Comparison...)
	return v
}
