// Package presenter turns a scorer result into structured display content.
// Pure transform; pushing the document anywhere is the caller's business.
package presenter

import (
	"fmt"

	"github.com/skycast-dev/skycast/internal/models"
)

var activityLabels = map[models.ActivityTag]string{
	models.ActivityTrek:     "a trek",
	models.ActivityOutdoor:  "outdoor plans",
	models.ActivityBeach:    "a beach day",
	models.ActivityExercise: "a workout",
	models.ActivityTravel:   "travel",
}

// Assemble builds the verdict document for one activity query. Reasons are
// flattened to signed lines; order is preserved from the scorer.
func Assemble(
	city string,
	activity models.ActivityTag,
	result models.SuitabilityResult,
	snap models.WeatherSnapshot,
) models.DisplayContent {
	label := activityLabels[activity]
	if label == "" {
		label = string(activity)
	}

	verdict := fmt.Sprintf("Not the best time for %s in %s", label, city)
	if result.Suitable {
		verdict = fmt.Sprintf("Good conditions for %s in %s", label, city)
	}

	reasons := make([]string, 0, len(result.Reasons))
	for _, r := range result.Reasons {
		sign := "-"
		if r.Positive {
			sign = "+"
		}
		reasons = append(reasons, sign+" "+r.Text)
	}

	tips := make([]string, len(result.Tips))
	copy(tips, result.Tips)

	return models.DisplayContent{
		City:       city,
		Activity:   activity,
		Verdict:    verdict,
		Score:      result.Score,
		ScoreLabel: fmt.Sprintf("%d/100", result.Score),
		Conditions: models.ConditionsBlock{
			TemperatureC:  snap.Current.TemperatureC,
			FeelsLikeC:    snap.Current.FeelsLikeC,
			ConditionText: snap.Current.ConditionText,
			WindKph:       snap.Current.WindKph,
			HumidityPct:   snap.Current.HumidityPct,
		},
		Reasons: reasons,
		Tips:    tips,
	}
}
