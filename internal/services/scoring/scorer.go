// Package scoring rates how suitable the current weather is for a given
// activity. Scoring is a pure additive accumulation over a fixed rule table:
// no I/O, no early exit, reasons and tips in rule order. The score is an
// unbounded integer, not a percentage, even though the UI shows it as "/100".
package scoring

import "github.com/skycast-dev/skycast/internal/models"

// suitabilityThreshold is the fixed policy constant separating a "go" from a
// "no-go" verdict.
const suitabilityThreshold = 20

// Suitable derives the verdict from a score. Exposed separately because the
// threshold itself is part of the contract.
func Suitable(score int) bool {
	return score >= suitabilityThreshold
}

// Score evaluates the activity's rule set against the weather. Deterministic:
// identical inputs yield identical results, including reason and tip order.
// An unknown or empty activity yields a zero-rule result.
func Score(w WeatherFacts, activity models.ActivityTag) models.SuitabilityResult {
	result := models.SuitabilityResult{
		Reasons: []models.Reason{},
		Tips:    []string{},
	}

	for _, r := range ruleTable[activity] {
		if !r.applies(w) {
			continue
		}
		result.Score += r.delta
		result.Reasons = append(result.Reasons, models.Reason{
			Positive: r.delta > 0,
			Text:     r.reason,
		})
		if r.tip != "" {
			result.Tips = append(result.Tips, r.tip)
		}
	}

	result.Suitable = Suitable(result.Score)
	return result
}

// FactsFrom extracts the scorer's inputs from a snapshot.
func FactsFrom(snap models.WeatherSnapshot) WeatherFacts {
	return WeatherFacts{
		TemperatureC:  snap.Current.TemperatureC,
		ConditionText: snap.Current.ConditionText,
		WindKph:       snap.Current.WindKph,
		HumidityPct:   snap.Current.HumidityPct,
		CloudCoverPct: snap.Current.CloudCoverPct,
	}
}
