package models

// Location identifies the place a snapshot was fetched for.
type Location struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentConditions holds the live readings of a snapshot.
type CurrentConditions struct {
	TemperatureC     float64 `json:"temperature_c"`
	FeelsLikeC       float64 `json:"feels_like_c"`
	HumidityPct      int     `json:"humidity_pct"`
	CloudCoverPct    int     `json:"cloud_cover_pct"`
	WindKph          float64 `json:"wind_kph"`
	WindDegree       int     `json:"wind_degree"`
	ConditionText    string  `json:"condition_text"`
	ConditionIconURL string  `json:"condition_icon_url"`
}

// DaySummary holds today's aggregates.
type DaySummary struct {
	MaxTempC float64 `json:"max_temp_c"`
	MinTempC float64 `json:"min_temp_c"`
	Sunrise  string  `json:"sunrise"`
	Sunset   string  `json:"sunset"`
}

// HourForecast is one entry of today's hourly strip.
type HourForecast struct {
	Time             string  `json:"time"`
	TemperatureC     float64 `json:"temperature_c"`
	ConditionText    string  `json:"condition_text"`
	ConditionIconURL string  `json:"condition_icon_url"`
}

// WeatherSnapshot is one complete, validated weather payload for a single
// location. The fetch gateway guarantees Current and Today are populated;
// nothing downstream re-checks.
type WeatherSnapshot struct {
	Location Location          `json:"location"`
	Current  CurrentConditions `json:"current"`
	Today    DaySummary        `json:"today"`
	Hourly   []HourForecast    `json:"hourly"`
}
