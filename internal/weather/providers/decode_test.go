package providers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-now/internal/weather"
)

func TestDecodeConditions_NumericValuesKeepLiteralText(t *testing.T) {
	body := `{
		"current": {
			"temperature": 13,
			"weather_descriptions": ["Partly cloudy"],
			"is_day": "no",
			"wind_dir": "SSW",
			"wind_speed": 4.5,
			"pressure": 1009,
			"weather_code": 116
		},
		"location": {"country": "Chile", "region": "Region Metropolitana", "name": "Santiago"}
	}`

	got, err := DecodeConditions([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, "13", got.TemperatureC)
	assert.Equal(t, "4.5", got.WindSpeed)
	assert.Equal(t, "1009", got.Pressure)
	assert.Equal(t, "116", got.ConditionCode)
	assert.Equal(t, "no", got.IsDaytime)
	assert.Equal(t, "Chile, Region Metropolitana, Santiago", got.LocationLabel)
	assert.Equal(t, weather.NightPalette, weather.PaletteFor(got.IsDaytime))
}

func TestDecodeConditions_BooleanIsDay(t *testing.T) {
	body := strings.Replace(moscowBody, `"is_day":"yes"`, `"is_day":true`, 1)

	got, err := DecodeConditions([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "true", got.IsDaytime)
	assert.False(t, got.Daytime())
}

func TestDecodeConditions_EmptyDescriptions(t *testing.T) {
	body := strings.Replace(moscowBody, `["Sunny"]`, `[]`, 1)

	got, err := DecodeConditions([]byte(body))

	require.ErrorIs(t, err, weather.ErrEmptyDescriptions)
	var decodeErr *weather.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "current.weather_descriptions", decodeErr.Path)
	assert.Equal(t, weather.Conditions{}, got)
}

func TestDecodeConditions_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		path string
	}{
		{"temperature", `"temperature":"20",`, ``, "current.temperature"},
		{"descriptions", `"weather_descriptions":["Sunny"],`, ``, "current.weather_descriptions"},
		{"is_day", `"is_day":"yes",`, ``, "current.is_day"},
		{"wind_dir", `"wind_dir":"N",`, ``, "current.wind_dir"},
		{"wind_speed", `"wind_speed":"5",`, ``, "current.wind_speed"},
		{"pressure", `"pressure":"1012",`, ``, "current.pressure"},
		{"weather_code", `,"weather_code":"113"`, ``, "current.weather_code"},
		{"country", `"country":"Russia",`, ``, "location.country"},
		{"region", `"region":"Moscow",`, ``, "location.region"},
		{"name", `,"name":"Moscow"`, ``, "location.name"},
		{"null value", `"wind_dir":"N"`, `"wind_dir":null`, "current.wind_dir"},
		{"null description", `["Sunny"]`, `[null]`, "current.weather_descriptions[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Replace(moscowBody, tt.from, tt.to, 1)
			require.NotEqual(t, moscowBody, body, "fixture replacement did not apply")

			got, err := DecodeConditions([]byte(body))

			require.ErrorIs(t, err, weather.ErrMissingField)
			var decodeErr *weather.DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tt.path, decodeErr.Path)
			assert.Equal(t, weather.Conditions{}, got)
		})
	}
}

func TestDecodeConditions_MissingSections(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
	}{
		{"no current", `{"location":{"country":"a","region":"b","name":"c"}}`, "current"},
		{"no location", `{"current":{"temperature":"1","weather_descriptions":["x"],"is_day":"yes","wind_dir":"N","wind_speed":"1","pressure":"1","weather_code":"1"}}`, "location"},
		{"empty object", `{}`, "current"},
		{"null body", `null`, "current"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeConditions([]byte(tt.body))

			var decodeErr *weather.DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.ErrorIs(t, err, weather.ErrMissingField)
			assert.Equal(t, tt.path, decodeErr.Path)
		})
	}
}

func TestDecodeConditions_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
	}{
		{"not json", `<html>502</html>`, ""},
		{"array root", `[1,2]`, ""},
		{"current is a string", `{"current":"x","location":{}}`, "current"},
		{"descriptions not array", strings.Replace(moscowBody, `["Sunny"]`, `"Sunny"`, 1), "current.weather_descriptions"},
		{"object as scalar", strings.Replace(moscowBody, `"pressure":"1012"`, `"pressure":{"mb":1012}`, 1), "current.pressure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeConditions([]byte(tt.body))

			var decodeErr *weather.DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tt.path, decodeErr.Path)
			assert.Equal(t, weather.OutcomeDecodeError, weather.Outcome(err))
		})
	}
}
