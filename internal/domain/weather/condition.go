package weather

import "time"

// Snapshot is one observed weather condition for a coordinate, as cached
// and as returned to clients. JSON tags double as the cache encoding.
type Snapshot struct {
	LocationName       string     `json:"location_name"`
	Latitude           float64    `json:"latitude"`
	Longitude          float64    `json:"longitude"`
	WeatherMain        string     `json:"weather_main"`
	WeatherDescription string     `json:"weather_description"`
	WeatherIcon        string     `json:"weather_icon"`
	Temperature        float64    `json:"temperature"`
	FeelsLike          float64    `json:"feels_like"`
	TempMin            float64    `json:"temp_min"`
	TempMax            float64    `json:"temp_max"`
	Humidity           int        `json:"humidity"`
	Pressure           int        `json:"pressure"`
	VisibilityMeters   int        `json:"visibility"`
	WindSpeed          float64    `json:"wind_speed"`
	WindDeg            int        `json:"wind_deg"`
	Clouds             int        `json:"clouds"`
	Rain1H             float64    `json:"rain_1h"`
	Rain3H             float64    `json:"rain_3h"`
	Sunrise            *time.Time `json:"sunrise_time,omitempty"`
	Sunset             *time.Time `json:"sunset_time,omitempty"`
	FetchedAt          time.Time  `json:"fetched_at"`
}
