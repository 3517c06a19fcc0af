package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/skycast-dev/skycast/internal/models"
)

// ClientWeatherAPI fetches forecast.json from weatherapi.com and normalizes
// the payload into a WeatherSnapshot. The query is either a free-form city
// name or "lat,lon" with latitude first; the provider resolves both.
//
// No retries and no caching here. Retrying is a caller decision and a hung
// transport is bounded only by the request context.
type ClientWeatherAPI struct {
	apiKey string
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

func NewClientWeatherAPI(apiKey, apiURL string, httpClient HTTPClient, logger zerolog.Logger) *ClientWeatherAPI {
	logger = logger.With().Str("component", "ClientWeatherAPI").Logger()
	return &ClientWeatherAPI{apiKey: apiKey, apiURL: apiURL, client: httpClient, logger: logger}
}

// rawForecast mirrors the provider body:
// { location: {...}, current: {...}, forecast: { forecastday: [ { day, astro, hour } ] } }.
// Current and Location are pointers so a 200 with a missing section is
// detectable and rejected here rather than downstream.
type rawForecast struct {
	Location *struct {
		Name    string  `json:"name"`
		Region  string  `json:"region"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	} `json:"location"`
	Current *struct {
		TempC      float64 `json:"temp_c"`
		FeelsLikeC float64 `json:"feelslike_c"`
		Humidity   int     `json:"humidity"`
		Cloud      int     `json:"cloud"`
		WindKph    float64 `json:"wind_kph"`
		WindDegree int     `json:"wind_degree"`
		Condition  struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
		} `json:"condition"`
	} `json:"current"`
	Forecast struct {
		Forecastday []struct {
			Day struct {
				MaxTempC float64 `json:"maxtemp_c"`
				MinTempC float64 `json:"mintemp_c"`
			} `json:"day"`
			Astro struct {
				Sunrise string `json:"sunrise"`
				Sunset  string `json:"sunset"`
			} `json:"astro"`
			Hour []struct {
				Time      string  `json:"time"`
				TempC     float64 `json:"temp_c"`
				Condition struct {
					Text string `json:"text"`
					Icon string `json:"icon"`
				} `json:"condition"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (c *ClientWeatherAPI) Fetch(ctx context.Context, query string) (models.WeatherSnapshot, error) {
	reqURL := fmt.Sprintf("%s?key=%s&q=%s&days=1", c.apiURL, c.apiKey, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.WeatherSnapshot{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return models.WeatherSnapshot{}, err
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return models.WeatherSnapshot{},
			fmt.Errorf("%w: provider status %s for %q", ErrLocationNotFound, resp.Status, query)
	}

	var raw rawForecast
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.Location == nil || raw.Current == nil || len(raw.Forecast.Forecastday) == 0 {
		return models.WeatherSnapshot{},
			fmt.Errorf("%w: incomplete payload for %q", ErrMalformedResponse, query)
	}

	today := raw.Forecast.Forecastday[0]
	snap := models.WeatherSnapshot{
		Location: models.Location{
			Name:      raw.Location.Name,
			Region:    raw.Location.Region,
			Country:   raw.Location.Country,
			Latitude:  raw.Location.Lat,
			Longitude: raw.Location.Lon,
		},
		Current: models.CurrentConditions{
			TemperatureC:     raw.Current.TempC,
			FeelsLikeC:       raw.Current.FeelsLikeC,
			HumidityPct:      raw.Current.Humidity,
			CloudCoverPct:    raw.Current.Cloud,
			WindKph:          raw.Current.WindKph,
			WindDegree:       raw.Current.WindDegree,
			ConditionText:    raw.Current.Condition.Text,
			ConditionIconURL: raw.Current.Condition.Icon,
		},
		Today: models.DaySummary{
			MaxTempC: today.Day.MaxTempC,
			MinTempC: today.Day.MinTempC,
			Sunrise:  today.Astro.Sunrise,
			Sunset:   today.Astro.Sunset,
		},
	}
	for _, h := range today.Hour {
		snap.Hourly = append(snap.Hourly, models.HourForecast{
			Time:             h.Time,
			TemperatureC:     h.TempC,
			ConditionText:    h.Condition.Text,
			ConditionIconURL: h.Condition.Icon,
		})
	}
	return snap, nil
}
