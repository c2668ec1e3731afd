package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearSkies() Snapshot {
	return Snapshot{WeatherMain: "Clear", VisibilityMeters: 10000, WindSpeed: 3}
}

func TestEvaluateRouteAlertClearConditions(t *testing.T) {
	alert := EvaluateRouteAlert(clearSkies(), clearSkies())

	assert.False(t, alert.HasAlert)
	assert.Equal(t, "normal", alert.Condition)
	assert.Empty(t, alert.Alerts)
	assert.Equal(t, "Weather is normal, safe travels.", alert.Message)
}

func TestEvaluateRouteAlertLightRainAtOneEnd(t *testing.T) {
	dest := clearSkies()
	dest.Rain1H = 1.2

	alert := EvaluateRouteAlert(clearSkies(), dest)

	require.True(t, alert.HasAlert)
	assert.Equal(t, "rainy", alert.Condition)
	assert.Contains(t, alert.Alerts, "Rain detected along the route")
}

func TestEvaluateRouteAlertHeavyRainEscalates(t *testing.T) {
	origin := clearSkies()
	origin.Rain1H = 9.0

	alert := EvaluateRouteAlert(origin, clearSkies())

	require.True(t, alert.HasAlert)
	assert.Equal(t, "heavy_rain", alert.Condition)
	assert.Contains(t, alert.Alerts, "Rain detected along the route")
	assert.Contains(t, alert.Alerts, "Heavy rain, drive carefully")
}

func TestEvaluateRouteAlertThunderstormWins(t *testing.T) {
	origin := clearSkies()
	origin.Rain1H = 9.0
	dest := clearSkies()
	dest.WeatherMain = "Thunderstorm"

	alert := EvaluateRouteAlert(origin, dest)

	require.True(t, alert.HasAlert)
	assert.Equal(t, "thunderstorm", alert.Condition)
	assert.Contains(t, alert.Alerts, "Thunderstorm warning")
}

func TestEvaluateRouteAlertVisibilityAndWind(t *testing.T) {
	origin := clearSkies()
	origin.VisibilityMeters = 500
	dest := clearSkies()
	dest.WindSpeed = 12.5

	alert := EvaluateRouteAlert(origin, dest)

	require.True(t, alert.HasAlert)
	// visibility and wind warn without changing the condition label
	assert.Equal(t, "normal", alert.Condition)
	assert.Contains(t, alert.Alerts, "Low visibility on the route")
	assert.Contains(t, alert.Alerts, "Strong winds detected")
}

func TestEvaluateRouteAlertZeroVisibilityMeansNotReported(t *testing.T) {
	origin := clearSkies()
	origin.VisibilityMeters = 0

	alert := EvaluateRouteAlert(origin, clearSkies())

	assert.False(t, alert.HasAlert)
}
