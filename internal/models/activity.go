package models

// Timeframe is the time window a query refers to.
type Timeframe string

const (
	TimeframeCurrent  Timeframe = "current"
	TimeframeTomorrow Timeframe = "tomorrow"
	TimeframeWeekend  Timeframe = "weekend"
	TimeframeNextWeek Timeframe = "next_week"
)

// ActivityTag selects a scoring rule set. The empty tag means a plain
// weather query with no activity attached.
type ActivityTag string

const (
	ActivityNone     ActivityTag = ""
	ActivityTrek     ActivityTag = "trek"
	ActivityOutdoor  ActivityTag = "outdoor"
	ActivityBeach    ActivityTag = "beach"
	ActivityExercise ActivityTag = "exercise"
	ActivityTravel   ActivityTag = "travel"
)

// ActivityQuery is the parsed form of a free-text question. Built fresh per
// submission, never persisted.
type ActivityQuery struct {
	City      string      `json:"city"`
	Timeframe Timeframe   `json:"timeframe"`
	Activity  ActivityTag `json:"activity,omitempty"`
}

// Reason is one scored observation about the weather, tagged by sign.
type Reason struct {
	Positive bool   `json:"positive"`
	Text     string `json:"text"`
}

// SuitabilityResult is the scorer output. Score is an unbounded integer
// accumulator; Suitable derives from it and is never set independently.
type SuitabilityResult struct {
	Suitable bool     `json:"suitable"`
	Score    int      `json:"score"`
	Reasons  []Reason `json:"reasons"`
	Tips     []string `json:"tips"`
}

// ConditionsBlock summarizes current conditions for display.
type ConditionsBlock struct {
	TemperatureC  float64 `json:"temperature_c"`
	FeelsLikeC    float64 `json:"feels_like_c"`
	ConditionText string  `json:"condition_text"`
	WindKph       float64 `json:"wind_kph"`
	HumidityPct   int     `json:"humidity_pct"`
}

// DisplayContent is the assembled answer to an activity query.
type DisplayContent struct {
	City       string          `json:"city"`
	Activity   ActivityTag     `json:"activity"`
	Verdict    string          `json:"verdict"`
	Score      int             `json:"score"`
	ScoreLabel string          `json:"score_label"`
	Conditions ConditionsBlock `json:"conditions"`
	Reasons    []string        `json:"reasons"`
	Tips       []string        `json:"tips"`
}
