package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skycast-dev/skycast/internal/render"
)

func TestClassifyScene(t *testing.T) {
	cases := []struct {
		condition string
		want      render.Scene
	}{
		{"Light rain", render.SceneRain},
		{"Patchy light drizzle", render.SceneRain},
		{"Sunny", render.SceneSunny},
		{"Clear", render.SceneSunny},
		{"Partly cloudy", render.SceneClouds},
		{"Overcast", render.SceneClouds},
		{"Mist", render.SceneFog},
		{"Freezing fog", render.SceneFog},
		{"Blowing widespread dust", render.SceneDefault},
		{"", render.SceneDefault},
	}

	for _, tc := range cases {
		t.Run(tc.condition, func(t *testing.T) {
			assert.Equal(t, tc.want, render.ClassifyScene(tc.condition))
		})
	}
}

func TestClassifyScene_RainBeatsSun(t *testing.T) {
	// "rain" is listed before "sun", so mixed conditions read as rain.
	assert.Equal(t, render.SceneRain, render.ClassifyScene("Sunny with patchy rain"))
}

func TestAtmosphereColor(t *testing.T) {
	cases := []struct {
		name      string
		condition string
		tempC     float64
		want      uint32
	}{
		{"rain is blue", "Moderate rain", 20, 0x4488ff},
		{"storm is purple", "Thundery outbreaks", 20, 0x9b59b6},
		{"cloud is gray", "Partly cloudy", 20, 0x95a5a6},
		{"snow is cyan", "Patchy snow", -2, 0x00e5ff},
		{"hot clear is orange", "Clear", 30, 0xff8c00},
		{"mild sunny is yellow", "Sunny", 22, 0xffd700},
		{"boundary temp stays yellow", "Sunny", 25, 0xffd700},
		{"fog is muted", "Fog", 10, 0x555566},
		{"unknown falls back to blue", "Blowing dust", 20, 0x4488ff},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, render.AtmosphereColor(tc.condition, tc.tempC))
		})
	}
}

func TestAtmosphereColor_RainWinsOverStormText(t *testing.T) {
	// "Heavy rain with thunder" mentions both; rain is checked first.
	assert.Equal(t, uint32(0x4488ff), render.AtmosphereColor("Heavy rain with thunder", 20))
}
