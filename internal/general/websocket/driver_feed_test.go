package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"travel-po/internal/domain/user"
	"travel-po/internal/general/jwt"
	"travel-po/internal/general/logger"
	"travel-po/internal/ports"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTrackingService struct {
	ports.TrackingService
}

func newFeedServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	mgr := jwt.NewManager("feed-test-secret", time.Hour)
	token, _, err := mgr.IssueUserToken("drv-1", user.RoleDriver, "")
	require.NoError(t, err)

	feed := NewDriverFeed(logger.New("ws-test"), mgr, &stubTrackingService{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/driver/{driver_id}", feed.ConnectDriver)

	return httptest.NewServer(mux), token
}

func dialDriver(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/driver/drv-1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	authFrame, err := json.Marshal(map[string]string{"type": "auth", "token": "Bearer " + token})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, authFrame))

	_, ack, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(ack), "auth_ok")

	return conn
}

func TestConnectDriverAuthHandshake(t *testing.T) {
	srv, token := newFeedServer(t)
	defer srv.Close()

	conn := dialDriver(t, srv, token)
	require.NoError(t, conn.Close())
}

func TestConnectDriverNoGoroutineLeakOnDisconnect(t *testing.T) {
	srv, token := newFeedServer(t)
	defer srv.Close()

	runtime.GC()
	before := runtime.NumGoroutine()

	for i := 0; i < 20; i++ {
		conn := dialDriver(t, srv, token)
		require.NoError(t, conn.Close())
	}

	assert.Eventually(t, func() bool {
		runtime.GC()
		return runtime.NumGoroutine() <= before+2
	}, 3*time.Second, 50*time.Millisecond,
		"per-connection goroutines must exit after the driver disconnects")
}
