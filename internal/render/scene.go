package render

import "strings"

// Scene is the ambient background category derived from condition text.
type Scene string

const (
	SceneRain    Scene = "rain"
	SceneSunny   Scene = "sunny"
	SceneClouds  Scene = "clouds"
	SceneFog     Scene = "fog"
	SceneDefault Scene = "default"
)

// sceneTable maps condition keywords to scenes, checked in order.
var sceneTable = []struct {
	keywords []string
	scene    Scene
}{
	{[]string{"rain", "drizzle"}, SceneRain},
	{[]string{"sun", "clear"}, SceneSunny},
	{[]string{"cloud", "overcast"}, SceneClouds},
	{[]string{"mist", "fog"}, SceneFog},
}

// ClassifyScene picks the background scene for a condition text.
func ClassifyScene(condition string) Scene {
	c := strings.ToLower(condition)
	for _, entry := range sceneTable {
		for _, kw := range entry.keywords {
			if strings.Contains(c, kw) {
				return entry.scene
			}
		}
	}
	return SceneDefault
}

// Atmosphere colors for the globe overlay, as 0xRRGGBB values.
const (
	colorBlue     uint32 = 0x4488ff
	colorPurple   uint32 = 0x9b59b6
	colorGray     uint32 = 0x95a5a6
	colorCyan     uint32 = 0x00e5ff
	colorOrange   uint32 = 0xff8c00
	colorYellow   uint32 = 0xffd700
	colorDarkGray uint32 = 0x555566
)

// hotThresholdC splits clear weather into orange (hot) and yellow.
const hotThresholdC = 25.0

// AtmosphereColor maps a condition to the globe atmosphere tint. Entries are
// checked in table order; clear/sunny additionally keys off temperature.
func AtmosphereColor(condition string, tempC float64) uint32 {
	c := strings.ToLower(condition)
	switch {
	case strings.Contains(c, "rain"):
		return colorBlue
	case strings.Contains(c, "storm"), strings.Contains(c, "thunder"):
		return colorPurple
	case strings.Contains(c, "cloud"):
		return colorGray
	case strings.Contains(c, "snow"):
		return colorCyan
	case strings.Contains(c, "clear"), strings.Contains(c, "sunny"):
		if tempC > hotThresholdC {
			return colorOrange
		}
		return colorYellow
	case strings.Contains(c, "fog"), strings.Contains(c, "mist"):
		return colorDarkGray
	default:
		return colorBlue
	}
}
