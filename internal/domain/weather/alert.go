package weather

// Alert summarizes hazardous conditions along a route (origin + destination).
type Alert struct {
	HasAlert  bool     `json:"has_alert"`
	Condition string   `json:"condition"`
	Alerts    []string `json:"alerts"`
	Message   string   `json:"message"`
}

// Alert thresholds. Rain rates are mm/h, visibility in meters, wind in m/s.
const (
	heavyRainMMPerHour  = 7.5
	lowVisibilityMeters = 1000
	strongWindMPS       = 10.0
)

// EvaluateRouteAlert inspects origin and destination conditions and raises
// route-level warnings. Later checks may escalate the condition label set by
// earlier ones (rainy -> heavy_rain -> thunderstorm).
func EvaluateRouteAlert(origin, dest Snapshot) Alert {
	var alerts []string
	condition := "normal"

	if origin.Rain1H > 0 || dest.Rain1H > 0 {
		alerts = append(alerts, "Rain detected along the route")
		condition = "rainy"
	}
	if origin.Rain1H > heavyRainMMPerHour || dest.Rain1H > heavyRainMMPerHour {
		alerts = append(alerts, "Heavy rain, drive carefully")
		condition = "heavy_rain"
	}
	if visibilityLow(origin) || visibilityLow(dest) {
		alerts = append(alerts, "Low visibility on the route")
	}
	if origin.WindSpeed > strongWindMPS || dest.WindSpeed > strongWindMPS {
		alerts = append(alerts, "Strong winds detected")
	}
	if origin.WeatherMain == "Thunderstorm" || dest.WeatherMain == "Thunderstorm" {
		alerts = append(alerts, "Thunderstorm warning")
		condition = "thunderstorm"
	}

	hasAlert := len(alerts) > 0
	message := "Weather is normal, safe travels."
	if hasAlert {
		message = "Bad weather detected. Drive with caution."
	}

	return Alert{
		HasAlert:  hasAlert,
		Condition: condition,
		Alerts:    alerts,
		Message:   message,
	}
}

// visibilityLow treats 0 as "not reported" rather than zero visibility.
func visibilityLow(s Snapshot) bool {
	return s.VisibilityMeters > 0 && s.VisibilityMeters < lowVisibilityMeters
}
