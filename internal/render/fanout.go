package render

import (
	"github.com/rs/zerolog"

	"github.com/skycast-dev/skycast/internal/models"
)

// SummaryView carries every field the summary cards display.
type SummaryView struct {
	DisplayName      string  `json:"display_name"`
	TemperatureC     float64 `json:"temperature_c"`
	FeelsLikeC       float64 `json:"feels_like_c"`
	HumidityPct      int     `json:"humidity_pct"`
	CloudCoverPct    int     `json:"cloud_cover_pct"`
	WindKph          float64 `json:"wind_kph"`
	WindDegree       int     `json:"wind_degree"`
	ConditionText    string  `json:"condition_text"`
	ConditionIconURL string  `json:"condition_icon_url"`
	MaxTempC         float64 `json:"max_temp_c"`
	MinTempC         float64 `json:"min_temp_c"`
	Sunrise          string  `json:"sunrise"`
	Sunset           string  `json:"sunset"`
}

// HourView is one tile of the hourly strip.
type HourView struct {
	Time             string  `json:"time"`
	TemperatureC     float64 `json:"temperature_c"`
	ConditionText    string  `json:"condition_text"`
	ConditionIconURL string  `json:"condition_icon_url"`
}

// Each surface is an independent visual target. All of them are optional;
// the fan-out skips what is absent.
type (
	SummarySurface interface {
		SetSummary(view SummaryView)
	}
	// HourlySurface replaces the whole strip on every call so repeated
	// renders of the same snapshot never accumulate tiles.
	HourlySurface interface {
		SetHours(hours []HourView)
	}
	BackgroundSurface interface {
		SetScene(scene Scene)
	}
	MapSurface interface {
		Recenter(lat, lon float64)
	}
	GlobeSurface interface {
		SetAtmosphere(color uint32)
	}
)

// Surfaces bundles the render targets handed to the fan-out. Nil entries are
// allowed and skipped.
type Surfaces struct {
	Summary    SummarySurface
	Hourly     HourlySurface
	Background BackgroundSurface
	Map        MapSurface
	Globe      GlobeSurface
}

// Fanout pushes a validated snapshot to every configured surface. Surface
// pushes are independent and best-effort: a missing or panicking surface is
// logged and never blocks the others. Only complete snapshots reach Render;
// validation happens at the fetch gateway.
type Fanout struct {
	surfaces Surfaces
	logger   zerolog.Logger
}

func NewFanout(logger zerolog.Logger, surfaces Surfaces) *Fanout {
	logger = logger.With().Str("component", "Fanout").Logger()
	return &Fanout{surfaces: surfaces, logger: logger}
}

func (f *Fanout) Render(snap models.WeatherSnapshot, displayName string) {
	if f.surfaces.Summary != nil {
		f.push("summary", func() {
			f.surfaces.Summary.SetSummary(SummaryView{
				DisplayName:      displayName,
				TemperatureC:     snap.Current.TemperatureC,
				FeelsLikeC:       snap.Current.FeelsLikeC,
				HumidityPct:      snap.Current.HumidityPct,
				CloudCoverPct:    snap.Current.CloudCoverPct,
				WindKph:          snap.Current.WindKph,
				WindDegree:       snap.Current.WindDegree,
				ConditionText:    snap.Current.ConditionText,
				ConditionIconURL: snap.Current.ConditionIconURL,
				MaxTempC:         snap.Today.MaxTempC,
				MinTempC:         snap.Today.MinTempC,
				Sunrise:          snap.Today.Sunrise,
				Sunset:           snap.Today.Sunset,
			})
		})
	}

	if f.surfaces.Hourly != nil {
		f.push("hourly", func() {
			hours := make([]HourView, 0, len(snap.Hourly))
			for _, h := range snap.Hourly {
				hours = append(hours, HourView{
					Time:             h.Time,
					TemperatureC:     h.TemperatureC,
					ConditionText:    h.ConditionText,
					ConditionIconURL: h.ConditionIconURL,
				})
			}
			f.surfaces.Hourly.SetHours(hours)
		})
	}

	if f.surfaces.Background != nil {
		f.push("background", func() {
			f.surfaces.Background.SetScene(ClassifyScene(snap.Current.ConditionText))
		})
	}

	if f.surfaces.Map != nil {
		f.push("map", func() {
			f.surfaces.Map.Recenter(snap.Location.Latitude, snap.Location.Longitude)
		})
	}

	if f.surfaces.Globe != nil {
		f.push("globe", func() {
			f.surfaces.Globe.SetAtmosphere(
				AtmosphereColor(snap.Current.ConditionText, snap.Current.TemperatureC))
		})
	}
}

// push runs one surface update, containing any panic to that surface.
func (f *Fanout) push(surface string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Warn().
				Str("surface", surface).
				Interface("panic", r).
				Msg("surface update failed, skipping")
		}
	}()
	fn()
}
