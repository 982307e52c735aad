package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amterp/squares/internal/logging"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub([]string{"http://localhost:5173"}, logging.Discard())
}

func newTestClient(hub *Hub, backlog int) *hubClient {
	return &hubClient{hub: hub, send: make(chan []byte, backlog)}
}

func TestHub_AddRemoveClient(t *testing.T) {
	hub := newTestHub()
	c := newTestClient(hub, 4)

	hub.addClient(c)
	assert.Equal(t, 1, hub.ClientCount())

	hub.removeClient(c)
	assert.Equal(t, 0, hub.ClientCount())

	_, ok := <-c.send
	assert.False(t, ok, "send channel should be closed on removal")

	hub.removeClient(c) // idempotent
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	hub := newTestHub()
	c1, c2 := newTestClient(hub, 4), newTestClient(hub, 4)
	hub.addClient(c1)
	hub.addClient(c2)

	hub.broadcast([]byte(`{"type":"x"}`))

	assert.Equal(t, `{"type":"x"}`, string(<-c1.send))
	assert.Equal(t, `{"type":"x"}`, string(<-c2.send))
}

func TestHub_BroadcastSkipsRemovedClient(t *testing.T) {
	hub := newTestHub()
	c := newTestClient(hub, 4)
	hub.addClient(c)
	hub.removeClient(c)

	assert.NotPanics(t, func() { hub.broadcast([]byte("late")) })
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := newTestHub()
	c := newTestClient(hub, 1)
	hub.addClient(c)
	c.send <- []byte("first")

	hub.broadcast([]byte("second"))

	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_OnStoreChange(t *testing.T) {
	tests := []struct {
		kind StoreChangeKind
		want string
	}{
		{StoreChangeKindSquares, MessageTypeSquaresChanged},
		{StoreChangeKindConfig, MessageTypeConfigChanged},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			hub := newTestHub()
			c := newTestClient(hub, 4)
			hub.addClient(c)

			hub.OnStoreChange(StoreChange{Type: StoreChangeWritten, Kind: tt.kind, Path: "x"})

			var msg struct {
				Type string      `json:"type"`
				Data StoreChange `json:"data"`
			}
			require.NoError(t, json.Unmarshal(<-c.send, &msg))
			assert.Equal(t, tt.want, msg.Type)
			assert.Equal(t, tt.kind, msg.Data.Kind)
		})
	}
}

func dialHub(t *testing.T, hub *Hub, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	return websocket.DefaultDialer.Dial(url, header)
}

func TestHub_ServeWS_GreetsThenNotifies(t *testing.T) {
	hub := newTestHub()
	conn, _, err := dialHub(t, hub, "http://localhost:5173")
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var greeting Message
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, MessageTypeConnected, greeting.Type)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	hub.OnStoreChange(StoreChange{Type: StoreChangeWritten, Kind: StoreChangeKindSquares, Path: "squares.json"})

	var update Message
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, MessageTypeSquaresChanged, update.Type)
}

func TestHub_ServeWS_RejectsForeignOrigin(t *testing.T) {
	hub := newTestHub()
	_, resp, err := dialHub(t, hub, "http://evil.example")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, hub.ClientCount())
}
