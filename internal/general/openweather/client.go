// Package openweather is a minimal OpenWeatherMap current-weather client.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"travel-po/internal/domain/weather"
	"travel-po/internal/ports"
)

const baseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client fetches current conditions from the OpenWeatherMap API in metric
// units.
type Client struct {
	apiKey string
	http   *http.Client
}

// NewClient constructs a Client with a bounded request timeout.
func NewClient(apiKey string) ports.WeatherProvider {
	return &Client{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

// owmResponse mirrors the subset of the current-weather payload we read.
type owmResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Visibility int `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Rain struct {
		OneH   float64 `json:"1h"`
		ThreeH float64 `json:"3h"`
	} `json:"rain"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
}

// Fetch returns the current conditions at the coordinate. locationName, when
// non-empty, overrides the station name reported by the API.
func (c *Client) Fetch(ctx context.Context, lat, lon float64, locationName string) (*weather.Snapshot, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather api status %d: %s", resp.StatusCode, string(body))
	}

	var raw owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	snap := &weather.Snapshot{
		LocationName:     raw.Name,
		Latitude:         lat,
		Longitude:        lon,
		Temperature:      raw.Main.Temp,
		FeelsLike:        raw.Main.FeelsLike,
		TempMin:          raw.Main.TempMin,
		TempMax:          raw.Main.TempMax,
		Humidity:         raw.Main.Humidity,
		Pressure:         raw.Main.Pressure,
		VisibilityMeters: raw.Visibility,
		WindSpeed:        raw.Wind.Speed,
		WindDeg:          raw.Wind.Deg,
		Clouds:           raw.Clouds.All,
		Rain1H:           raw.Rain.OneH,
		Rain3H:           raw.Rain.ThreeH,
		FetchedAt:        time.Now().UTC(),
	}
	if locationName != "" {
		snap.LocationName = locationName
	}
	if len(raw.Weather) > 0 {
		snap.WeatherMain = raw.Weather[0].Main
		snap.WeatherDescription = raw.Weather[0].Description
		snap.WeatherIcon = raw.Weather[0].Icon
	}
	if raw.Sys.Sunrise > 0 {
		t := time.Unix(raw.Sys.Sunrise, 0).UTC()
		snap.Sunrise = &t
	}
	if raw.Sys.Sunset > 0 {
		t := time.Unix(raw.Sys.Sunset, 0).UTC()
		snap.Sunset = &t
	}

	return snap, nil
}
