package scoring

import (
	"strings"

	"github.com/skycast-dev/skycast/internal/models"
)

// WeatherFacts is the slice of a snapshot the scorer looks at.
type WeatherFacts struct {
	TemperatureC  float64
	ConditionText string
	WindKph       float64
	HumidityPct   int
	CloudCoverPct int
}

// rule is one additive scoring entry: when the predicate holds, delta is
// added and the reason (and tip, if any) is appended. Rules never short-
// circuit; every rule of an activity is evaluated in table order.
type rule struct {
	applies func(WeatherFacts) bool
	delta   int
	reason  string
	tip     string
}

func tempBetween(lo, hi float64) func(WeatherFacts) bool {
	return func(w WeatherFacts) bool { return w.TemperatureC >= lo && w.TemperatureC <= hi }
}

func tempBelow(v float64) func(WeatherFacts) bool {
	return func(w WeatherFacts) bool { return w.TemperatureC < v }
}

func tempAbove(v float64) func(WeatherFacts) bool {
	return func(w WeatherFacts) bool { return w.TemperatureC > v }
}

func conditionHas(keywords ...string) func(WeatherFacts) bool {
	return func(w WeatherFacts) bool {
		c := strings.ToLower(w.ConditionText)
		for _, kw := range keywords {
			if strings.Contains(c, kw) {
				return true
			}
		}
		return false
	}
}

func conditionLacks(keywords ...string) func(WeatherFacts) bool {
	has := conditionHas(keywords...)
	return func(w WeatherFacts) bool { return !has(w) }
}

func windAbove(v float64) func(WeatherFacts) bool {
	return func(w WeatherFacts) bool { return w.WindKph > v }
}

func windBelow(v float64) func(WeatherFacts) bool {
	return func(w WeatherFacts) bool { return w.WindKph < v }
}

func humidityAbove(v int) func(WeatherFacts) bool {
	return func(w WeatherFacts) bool { return w.HumidityPct > v }
}

// ruleTable holds the per-activity scoring policy. The deltas and the row
// order are fixed; reason and tip wording is display-only.
var ruleTable = map[models.ActivityTag][]rule{
	models.ActivityTrek: {
		{tempBetween(15, 25), 30, "Comfortable trekking temperature", "Carry enough water for the trail"},
		{tempBelow(10), -20, "Too cold for a comfortable trek", "Pack warm layers if you go anyway"},
		{tempAbove(30), -15, "Heat will make the climb exhausting", "Start before sunrise to beat the heat"},
		{conditionHas("rain", "storm"), -40, "Rain makes trails slippery and unsafe", "Postpone until the trail dries out"},
		{conditionHas("clear", "sunny"), 25, "Clear skies with good visibility", ""},
		{conditionHas("cloud"), 15, "Cloud cover keeps the sun off the trail", ""},
		{windAbove(30), -20, "Strong wind is risky on exposed ridges", ""},
		{windBelow(15), 10, "Calm wind", ""},
	},
	models.ActivityOutdoor: {
		{tempBetween(18, 28), 30, "Pleasant temperature for being outside", ""},
		{func(w WeatherFacts) bool { return w.TemperatureC < 15 || w.TemperatureC > 32 }, -15,
			"Temperature is outside the comfortable range", ""},
		{conditionHas("rain"), -50, "Rain would spoil outdoor plans", "Keep an indoor backup plan"},
		{conditionHas("clear", "sunny"), 30, "Lovely clear weather", "Sunscreen is a good idea"},
		{windAbove(25), -10, "Wind will bother an open-air setup", ""},
	},
	models.ActivityBeach: {
		{tempBetween(25, 35), 35, "Warm beach weather", "Stay hydrated in the sun"},
		{tempBelow(25), -20, "Too cool to enjoy the water", ""},
		{conditionHas("rain", "storm"), -50, "Unsafe sea conditions", "Check local advisories before swimming"},
		{conditionHas("clear", "sunny"), 30, "Sunny skies over the beach", ""},
	},
	models.ActivityExercise: {
		{tempBetween(15, 25), 30, "Ideal temperature for a workout", ""},
		{tempAbove(30), -20, "Too hot for intense exercise", "Move the session to early morning"},
		{conditionHas("rain"), -20, "Rain makes outdoor running unpleasant", "A gym session keeps the streak alive"},
		{humidityAbove(80), -15, "High humidity slows recovery", "Shorten the workout and drink more"},
	},
	models.ActivityTravel: {
		{conditionLacks("storm", "heavy rain"), 30, "No severe weather expected", ""},
		{conditionHas("storm", "heavy rain"), -30, "Severe weather may disrupt travel", "Check transport status before leaving"},
		{tempBetween(10, 30), 20, "Mild temperature for getting around", ""},
	},
}
