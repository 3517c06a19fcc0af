package query

import (
	"errors"
	"strings"

	"github.com/skycast-dev/skycast/internal/models"
)

// ErrAmbiguousCity means the text named no known city and no contextual
// fallback was available. The caller must re-prompt, never guess.
var ErrAmbiguousCity = errors.New("could not resolve a city from the query")

// cityVocabulary is scanned in order; the first city mentioned anywhere in
// the text wins. Extending the dashboard to new cities means extending this
// list, nothing else.
var cityVocabulary = []string{
	"mumbai", "delhi", "bangalore", "chennai", "kolkata", "hyderabad",
	"pune", "ahmedabad", "tokyo", "london", "new york", "paris",
	"sydney", "dubai", "singapore", "kanpur",
}

var timeframeVocabulary = []struct {
	keyword   string
	timeframe models.Timeframe
}{
	{"tomorrow", models.TimeframeTomorrow},
	{"today", models.TimeframeCurrent},
	{"now", models.TimeframeCurrent},
	{"weekend", models.TimeframeWeekend},
	{"next week", models.TimeframeNextWeek},
}

var activityVocabulary = []struct {
	keywords []string
	tag      models.ActivityTag
}{
	{[]string{"trek", "hiking", "climb"}, models.ActivityTrek},
	{[]string{"picnic", "outdoor", "park"}, models.ActivityOutdoor},
	{[]string{"beach", "swim"}, models.ActivityBeach},
	{[]string{"run", "jog", "exercise"}, models.ActivityExercise},
	{[]string{"travel", "trip"}, models.ActivityTravel},
}

// Parse interprets free text against the fixed vocabularies. Matching is
// case-insensitive substring; the three dimensions are independent and each
// is first-match-wins in listed order. fallbackCity covers queries like
// "is it good for a run" asked after a city is already on screen; pass ""
// when no context exists.
func Parse(text, fallbackCity string) (models.ActivityQuery, error) {
	q := strings.ToLower(strings.TrimSpace(text))

	parsed := models.ActivityQuery{Timeframe: models.TimeframeCurrent}

	for _, c := range cityVocabulary {
		if strings.Contains(q, c) {
			parsed.City = capitalize(c)
			break
		}
	}
	if parsed.City == "" {
		if fallbackCity == "" {
			return models.ActivityQuery{}, ErrAmbiguousCity
		}
		parsed.City = fallbackCity
	}

	for _, t := range timeframeVocabulary {
		if strings.Contains(q, t.keyword) {
			parsed.Timeframe = t.timeframe
			break
		}
	}

	for _, a := range activityVocabulary {
		for _, kw := range a.keywords {
			if strings.Contains(q, kw) {
				parsed.Activity = a.tag
				break
			}
		}
		if parsed.Activity != models.ActivityNone {
			break
		}
	}

	return parsed, nil
}

// capitalize uppercases only the first letter, matching how the dashboard
// has always displayed vocabulary cities ("new york" -> "New york").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
