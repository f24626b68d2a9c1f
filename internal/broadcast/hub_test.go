package broadcast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newHubServer(t *testing.T, sendBuffer int) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(sendBuffer, time.Second)
	r := gin.New()
	hub.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws?" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var f Frame
	require.NoError(t, json.Unmarshal(data, &f))
	return f
}

func TestHub_DeliversToSubscribedChannelOnly(t *testing.T) {
	hub, srv := newHubServer(t, 8)

	ui := dial(t, srv, "channel=ui.refresh&channel=ui.alerts")
	other := dial(t, srv, "channel=metrics")
	require.Eventually(t, func() bool {
		return hub.Subscribers("ui.refresh") == 1 && hub.Subscribers("metrics") == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Broadcast(context.Background(), "ui.alerts", json.RawMessage(`{"id":"evt-1"}`)))

	f := readFrame(t, ui)
	require.Equal(t, "ui.alerts", f.Channel)
	require.JSONEq(t, `{"id":"evt-1"}`, string(f.Payload))

	require.NoError(t, other.SetReadDeadline(time.Now().Add(50*time.Millisecond)))
	_, _, err := other.ReadMessage()
	require.Error(t, err, "metrics subscriber must not receive ui frames")
}

func TestHub_BroadcastWithoutSubscribersSucceeds(t *testing.T) {
	hub := NewHub(0, 0)
	require.NoError(t, hub.Broadcast(context.Background(), "nobody", json.RawMessage(`{}`)))
	require.Zero(t, hub.Subscribers("nobody"))
}

func TestHub_SlowClientDoesNotBlockBroadcast(t *testing.T) {
	hub, srv := newHubServer(t, 1)
	dial(t, srv, "channel=busy")
	require.Eventually(t, func() bool { return hub.Subscribers("busy") == 1 }, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			_ = hub.Broadcast(context.Background(), "busy", json.RawMessage(`{"n":1}`))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked on a client that is not reading")
	}
}

func TestHub_DisconnectRemovesClient(t *testing.T) {
	hub, srv := newHubServer(t, 8)
	conn := dial(t, srv, "channel=ui")
	require.Eventually(t, func() bool { return hub.Subscribers("ui") == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))
	require.Eventually(t, func() bool { return hub.Subscribers("ui") == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_CloseSendsGoingAway(t *testing.T) {
	hub, srv := newHubServer(t, 8)
	conn := dial(t, srv, "channel=ui")
	require.Eventually(t, func() bool { return hub.Subscribers("ui") == 1 }, time.Second, 5*time.Millisecond)

	hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestHub_ChannelRequired(t *testing.T) {
	_, srv := newHubServer(t, 8)

	resp, err := http.Get(srv.URL + "/v1/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
