package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"travel-po/internal/domain/travel"
	"travel-po/internal/domain/user"
	"travel-po/internal/general/jwt"
	"travel-po/internal/general/logger"
	"travel-po/internal/general/web"
	"travel-po/internal/ports"
	"travel-po/internal/software/weather/service"
)

const reqTimeout = 10 * time.Second

// WeatherHTTPHandler adapts HTTP requests to the WeatherService.
type WeatherHTTPHandler struct {
	svc    ports.WeatherService
	logger *logger.Logger
	auth   *jwt.Manager
}

// NewWeatherHTTPHandler wires an HTTP handler around the WeatherService.
func NewWeatherHTTPHandler(svc ports.WeatherService, logger *logger.Logger, auth *jwt.Manager) *WeatherHTTPHandler {
	return &WeatherHTTPHandler{svc: svc, logger: logger, auth: auth}
}

// RegisterRoutes mounts weather endpoints on the provided mux. Any
// authenticated role may query them.
func (handler *WeatherHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	authed := jwt.AuthMiddlewareFunc(handler.auth, user.RoleOperator, user.RoleStudent, user.RoleDriver)

	mux.HandleFunc("GET /api/weather/location", authed(handler.handleLocationWeather))
	mux.HandleFunc("GET /api/weather/route", authed(handler.handleRouteWeather))
	mux.HandleFunc("GET /api/weather/travel/{travel_id}", authed(handler.handleTravelWeather))
}

func (handler *WeatherHTTPHandler) begin(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(web.WithRequestID(handler.logger, r), reqTimeout)
}

func (handler *WeatherHTTPHandler) weatherError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, travel.ErrNotFound):
		web.Error(ctx, handler.logger, w, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, service.ErrNoRouteCoordinates):
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, context.DeadlineExceeded):
		web.Error(ctx, handler.logger, w, http.StatusGatewayTimeout, "weather lookup timed out", err)
	default:
		web.Error(ctx, handler.logger, w, http.StatusBadGateway, "weather provider unavailable", err)
	}
}

// coordParam parses a required coordinate query parameter.
func coordParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.New(name + " is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(name + " must be a number")
	}
	return v, nil
}

func (handler *WeatherHTTPHandler) handleLocationWeather(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	lat, err := coordParam(r, "lat")
	if err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}
	lon, err := coordParam(r, "lon")
	if err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	res, err := handler.svc.ByCoordinate(ctx, lat, lon, r.URL.Query().Get("name"))
	if err != nil {
		handler.weatherError(ctx, w, err)
		return
	}

	web.JSON(ctx, handler.logger, w, http.StatusOK, web.Envelope{
		Success: true,
		Data:    res.Snapshot,
		Cached:  web.BoolPtr(res.Cached),
	})
}

func (handler *WeatherHTTPHandler) handleRouteWeather(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var in ports.RouteWeatherInput
	var err error
	if in.OriginLat, err = coordParam(r, "origin_lat"); err == nil {
		if in.OriginLon, err = coordParam(r, "origin_lon"); err == nil {
			if in.DestLat, err = coordParam(r, "dest_lat"); err == nil {
				in.DestLon, err = coordParam(r, "dest_lon")
			}
		}
	}
	if err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}
	in.OriginName = r.URL.Query().Get("origin_name")
	in.DestName = r.URL.Query().Get("dest_name")

	res, err := handler.svc.Route(ctx, in)
	if err != nil {
		handler.weatherError(ctx, w, err)
		return
	}

	web.Data(ctx, handler.logger, w, http.StatusOK, res)
}

func (handler *WeatherHTTPHandler) handleTravelWeather(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	res, err := handler.svc.ForTravel(ctx, r.PathValue("travel_id"))
	if err != nil {
		handler.weatherError(ctx, w, err)
		return
	}

	web.Data(ctx, handler.logger, w, http.StatusOK, res)
}
