package ws

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hub *Hub, origins []string) *httptest.Server {
	t.Helper()
	handler := NewHandler(hub, origins, nil)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.HandleConnection(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(data)
}

func TestLiveChannelScenario(t *testing.T) {
	hub := NewHub(HubConfig{})
	defer hub.Close()
	server := newTestServer(t, hub, nil)

	c1 := dial(t, server, nil)
	c2 := dial(t, server, nil)

	assert.JSONEq(t, `{"message":"Status Channel Open."}`, readJSON(t, c1))
	assert.JSONEq(t, `{"message":"Status Channel Open."}`, readJSON(t, c2))
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	_, err := hub.Broadcast(map[string]string{"word": "hello"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"word":"hello"}`, readJSON(t, c1))
	assert.JSONEq(t, `{"word":"hello"}`, readJSON(t, c2))

	require.NoError(t, c1.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	c1.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	delivered, err := hub.Broadcast(map[string]string{"word": "world"})
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)
	assert.JSONEq(t, `{"word":"world"}`, readJSON(t, c2))
}

func TestLiveChannelIgnoresInboundMessages(t *testing.T) {
	hub := NewHub(HubConfig{})
	defer hub.Close()
	server := newTestServer(t, hub, nil)

	conn := dial(t, server, nil)
	readJSON(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("anything at all")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"word":"ignored"}`)))

	_, err := hub.Broadcast(map[string]string{"word": "after"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"word":"after"}`, readJSON(t, conn))
	assert.Equal(t, 1, hub.ClientCount())
}

func TestLiveChannelRejectsPlainHTTP(t *testing.T) {
	hub := NewHub(HubConfig{})
	handler := NewHandler(hub, nil, nil)

	rec := httptest.NewRecorder()
	err := handler.HandleConnection(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestLiveChannelOriginPolicy(t *testing.T) {
	hub := NewHub(HubConfig{})
	defer hub.Close()
	server := newTestServer(t, hub, []string{"https://wall.example.com"})
	url := "ws" + strings.TrimPrefix(server.URL, "http")

	allowed := http.Header{"Origin": []string{"https://WALL.example.com"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, allowed)
	require.NoError(t, err)
	conn.Close()

	blocked := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, blocked)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOriginPolicy(t *testing.T) {
	request := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	tests := []struct {
		name    string
		origins []string
		origin  string
		want    bool
	}{
		{"unconfigured allows all", nil, "https://evil.example.com", true},
		{"blank entries allow all", []string{" ", ""}, "https://evil.example.com", true},
		{"wildcard", []string{"*"}, "https://evil.example.com", true},
		{"listed origin", []string{"https://wall.example.com"}, "https://wall.example.com", true},
		{"unlisted origin", []string{"https://wall.example.com"}, "https://evil.example.com", false},
		{"only invalid entries", []string{"wall.example.com"}, "https://evil.example.com", false},
		{"only invalid entries, matching host", []string{"wall.example.com"}, "https://wall.example.com", false},
		{"invalid entry ignored", []string{"wall.example.com", "https://ok.example.com"}, "https://ok.example.com", true},
		{"no origin header", []string{"https://wall.example.com"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := newOriginPolicy(tt.origins, slog.Default())
			assert.Equal(t, tt.want, policy.check(request(tt.origin)))
		})
	}
}

func TestNormalizeOrigin(t *testing.T) {
	got, ok := normalizeOrigin("HTTPS://Example.COM:8443")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com:8443", got)

	_, ok = normalizeOrigin("not-an-origin")
	assert.False(t, ok)
}
