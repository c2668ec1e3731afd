// Package websocket carries the high-frequency driver GPS feed. Drivers keep
// one long-lived connection instead of hammering the HTTP endpoint.
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"travel-po/internal/domain/user"
	"travel-po/internal/general/jwt"
	"travel-po/internal/general/logger"
	"travel-po/internal/ports"

	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout   = 5 * time.Second
	wsCloseAckWindow = 2 * time.Second
	ctrlTimeout      = 5 * time.Second
	readWindow       = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// DriverFeed upgrades driver connections, authenticates the first frame, and
// persists location_update messages through the tracking service.
type DriverFeed struct {
	logger     *logger.Logger
	jwtMgr     *jwt.Manager
	tracking   ports.TrackingService
	writeLocks sync.Map // key: *websocket.Conn -> *sync.Mutex
}

// NewDriverFeed constructs a DriverFeed.
func NewDriverFeed(log *logger.Logger, jwtMgr *jwt.Manager, tracking ports.TrackingService) *DriverFeed {
	return &DriverFeed{logger: log, jwtMgr: jwtMgr, tracking: tracking}
}

// locationUpdateMessage is what drivers send after authenticating:
// { "type":"location_update", "data":{...} }.
type locationUpdateMessage struct {
	TravelID       *string  `json:"travel_id,omitempty"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	SpeedKMH       float64  `json:"speed_kmh"`
	HeadingDegrees *float64 `json:"heading_degrees,omitempty"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
}

// ConnectDriver handles GET /ws/driver/{driver_id}. The first text frame must
// be an auth message; every frame after that is routed by type.
func (feed *DriverFeed) ConnectDriver(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		feed.logger.Error(r.Context(), "ws_upgrade_failed", "Failed to upgrade to WebSocket", err, nil)
		return
	}
	defer conn.Close()
	defer feed.writeLocks.Delete(conn)

	conn.SetReadLimit(1 << 20) // 1 MiB
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		feed.logger.Error(r.Context(), "ws_set_deadline_failed", "Failed to set initial read deadline", err, nil)
		feed.sendError(conn, "internal server error")
		return
	}

	msgType, firstFrame, err := conn.ReadMessage()
	if err != nil {
		feed.logger.Error(r.Context(), "ws_auth_read_failed", "Client disconnected before authentication", err, nil)
		feed.sendError(conn, "authentication timeout: send auth message within 5 seconds")
		return
	}
	if msgType != websocket.TextMessage {
		feed.sendError(conn, "auth message must be in text format")
		return
	}

	res, err := jwt.ValidateWSAuth(firstFrame, feed.jwtMgr, user.RoleOperator, user.RoleDriver)
	if err != nil {
		feed.logger.Error(r.Context(), "ws_auth_failed", "Invalid auth message or token", err, nil)
		feed.sendError(conn, "authentication failed: invalid token")
		return
	}

	driverID := r.PathValue("driver_id")
	if driverID == "" {
		feed.sendError(conn, "driver_id is required")
		return
	}
	// drivers authenticate with their own token; operator tokens may drive
	// any of the operator's vehicles
	if res.Claims.Role.IsDriver() && res.Claims.Subject != driverID {
		feed.logger.Error(r.Context(), "ws_auth_failed", "Driver ID mismatch", nil, map[string]any{
			"path_driver_id": driverID,
			"token_subject":  res.Claims.Subject,
		})
		feed.sendError(conn, "driver ID mismatch")
		return
	}

	if err := feed.writeJSON(conn, map[string]any{"type": "auth_ok", "driver_id": driverID}); err != nil {
		feed.logger.Error(r.Context(), "ws_auth_ack_failed", "Failed to send auth success message", err, nil)
		return
	}

	feed.logger.Info(r.Context(), "ws_connected", "Driver WebSocket connected",
		map[string]any{"driver_id": driverID})

	_ = conn.SetReadDeadline(time.Now().Add(readWindow))
	conn.SetPongHandler(func(_ string) error {
		return conn.SetReadDeadline(time.Now().Add(readWindow))
	})

	// ping loop keeps NATs and proxies from dropping the idle connection.
	// done is closed when the handler returns so the goroutine never
	// outlives the connection.
	done := make(chan struct{})
	defer close(done)
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				mu := feed.lockOf(conn)
				mu.Lock()
				_ = conn.SetWriteDeadline(time.Now().Add(ctrlTimeout))
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ctrlTimeout))
				mu.Unlock()
				if err != nil {
					// close the socket to unblock the reader
					_ = conn.Close()
					return
				}
			}
		}
	}()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readWindow))
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				feed.logger.Error(r.Context(), "ws_unexpected_close", "Driver connection closed unexpectedly", err,
					map[string]any{"driver_id": driverID})
				feed.writeClose(conn, websocket.CloseInternalServerErr, "internal error")
			} else {
				feed.logger.Info(r.Context(), "ws_connection_closed", "Driver connection closed normally",
					map[string]any{"driver_id": driverID})
				feed.writeClose(conn, websocket.CloseNormalClosure, "bye")
			}
			return
		}

		var msg struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(payload, &msg); err != nil {
			_ = feed.writeJSON(conn, map[string]any{"type": "error", "error": "bad json"})
			continue
		}

		switch msg.Type {
		case "location_update":
			feed.handleLocationUpdate(r, conn, driverID, msg.Data)
		case "ping":
			_ = feed.writeJSON(conn, map[string]any{"type": "pong"})
		default:
			_ = feed.writeJSON(conn, map[string]any{"type": "error", "error": "unknown message type"})
		}
	}
}

func (feed *DriverFeed) handleLocationUpdate(r *http.Request, conn *websocket.Conn, driverID string, data json.RawMessage) {
	var upd locationUpdateMessage
	if err := json.Unmarshal(data, &upd); err != nil {
		_ = feed.writeJSON(conn, map[string]any{"type": "error", "error": "bad location_update payload"})
		return
	}

	view, err := feed.tracking.UpdateDriverLocation(r.Context(), ports.UpdateDriverLocationInput{
		DriverID:       driverID,
		TravelID:       upd.TravelID,
		Latitude:       upd.Latitude,
		Longitude:      upd.Longitude,
		SpeedKMH:       upd.SpeedKMH,
		HeadingDegrees: upd.HeadingDegrees,
		AccuracyMeters: upd.AccuracyMeters,
	})
	if err != nil {
		feed.logger.Error(r.Context(), "ws_location_update_failed", "Failed to store location update", err,
			map[string]any{"driver_id": driverID})
		_ = feed.writeJSON(conn, map[string]any{"type": "error", "error": "failed to store location"})
		return
	}

	_ = feed.writeJSON(conn, map[string]any{"type": "location_ack", "updated_at": view.UpdatedAt})
}

// --- write helpers ---

func (feed *DriverFeed) sendError(conn *websocket.Conn, msg string) {
	_ = feed.writeJSON(conn, map[string]any{"type": "error", "error": msg})
}

// writeJSON marshals v and writes a single TextMessage under the
// per-connection writer lock.
func (feed *DriverFeed) writeJSON(conn *websocket.Conn, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	mu := feed.lockOf(conn)
	mu.Lock()
	defer mu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// writeClose sends a close control frame with the given code and reason.
func (feed *DriverFeed) writeClose(conn *websocket.Conn, code int, reason string) {
	mu := feed.lockOf(conn)
	mu.Lock()
	defer mu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(wsCloseAckWindow),
	)
	feed.writeLocks.Delete(conn)
}

// lockOf returns the writer mutex for a specific connection.
func (feed *DriverFeed) lockOf(conn *websocket.Conn) *sync.Mutex {
	if v, ok := feed.writeLocks.Load(conn); ok {
		if mu, ok := v.(*sync.Mutex); ok && mu != nil {
			return mu
		}
	}
	mu := &sync.Mutex{}
	actual, _ := feed.writeLocks.LoadOrStore(conn, mu)
	return actual.(*sync.Mutex)
}
