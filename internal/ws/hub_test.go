package ws

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordwall/backend/internal/metrics"
)

// receiveWithTimeout reads one frame from the client's queue.
func receiveWithTimeout(t *testing.T, client *Client, timeout time.Duration) []byte {
	t.Helper()
	select {
	case data, ok := <-client.SendChan():
		if !ok {
			t.Fatal("send channel closed")
		}
		return data
	case <-time.After(timeout):
		t.Fatal("timeout waiting for message")
		return nil
	}
}

func assertNothingQueued(t *testing.T, client *Client) {
	t.Helper()
	select {
	case data, ok := <-client.SendChan():
		if ok {
			t.Fatalf("unexpected message queued: %s", data)
		}
	default:
	}
}

func TestHubClientManagement(t *testing.T) {
	hub := NewHub(HubConfig{})
	defer hub.Close()

	client1 := NewClient(hub, nil)
	client2 := NewClient(hub, nil)
	assert.Equal(t, StatePending, client1.State())

	require.NoError(t, hub.Register(client1))
	require.NoError(t, hub.Register(client2))
	assert.Equal(t, StateOpen, client1.State())
	assert.Equal(t, 2, hub.ClientCount())

	delivered, err := hub.Broadcast(map[string]string{"word": "hello"})
	require.NoError(t, err)
	assert.Equal(t, 2, delivered)

	assert.JSONEq(t, `{"word":"hello"}`, string(receiveWithTimeout(t, client1, 100*time.Millisecond)))
	assert.JSONEq(t, `{"word":"hello"}`, string(receiveWithTimeout(t, client2, 100*time.Millisecond)))

	hub.Unregister(client1)
	assert.Equal(t, 1, hub.ClientCount())
	assert.Equal(t, StateClosed, client1.State())

	delivered, err = hub.Broadcast(map[string]string{"word": "again"})
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)
	assert.JSONEq(t, `{"word":"again"}`, string(receiveWithTimeout(t, client2, 100*time.Millisecond)))
	assertNothingQueued(t, client1)
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	hub := NewHub(HubConfig{})
	client := NewClient(hub, nil)
	require.NoError(t, hub.Register(client))

	hub.Unregister(client)
	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount())
	assert.Equal(t, StateClosed, client.State())

	absent := NewClient(hub, nil)
	hub.Unregister(absent)
	assert.Equal(t, StatePending, absent.State())
	assert.Equal(t, 0, hub.ClientCount())

	require.NoError(t, hub.Register(absent))
	assert.Equal(t, StateOpen, absent.State())
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHub_RegisterClosedClient(t *testing.T) {
	hub := NewHub(HubConfig{})
	client := NewClient(hub, nil)
	client.Close()

	err := hub.Register(client)
	assert.ErrorIs(t, err, ErrClientClosed)
	assert.Equal(t, 0, hub.ClientCount())
	assert.Equal(t, StateClosed, client.State())
}

func TestHub_BroadcastPreservesRegistrationOrder(t *testing.T) {
	hub := NewHub(HubConfig{})
	defer hub.Close()

	clients := make([]*Client, 5)
	for i := range clients {
		clients[i] = NewClient(hub, nil)
		require.NoError(t, hub.Register(clients[i]))
	}
	hub.Unregister(clients[2])

	hub.mu.RLock()
	order := append([]*Client(nil), hub.clients...)
	hub.mu.RUnlock()

	assert.Equal(t, []*Client{clients[0], clients[1], clients[3], clients[4]}, order)
}

func TestHub_FailingClientDoesNotBlockOthers(t *testing.T) {
	hub := NewHub(HubConfig{SendBuffer: 1})
	defer hub.Close()

	slow := NewClient(hub, nil)
	healthy := NewClient(hub, nil)
	require.NoError(t, hub.Register(slow))
	require.NoError(t, hub.Register(healthy))

	// Fill the slow client's queue.
	require.True(t, slow.Send([]byte(`"backlog"`)))

	delivered, err := hub.Broadcast(map[string]string{"word": "hello"})
	require.NoError(t, err)

	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, hub.ClientCount())
	assert.True(t, slow.IsClosed())
	assert.JSONEq(t, `{"word":"hello"}`, string(receiveWithTimeout(t, healthy, 100*time.Millisecond)))
}

func TestHub_BroadcastEncodingError(t *testing.T) {
	hub := NewHub(HubConfig{})
	client := NewClient(hub, nil)
	require.NoError(t, hub.Register(client))

	_, err := hub.Broadcast(map[string]any{"bad": make(chan int)})
	assert.Error(t, err)
	assertNothingQueued(t, client)
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(HubConfig{})
	client := NewClient(hub, nil)
	require.NoError(t, hub.Register(client))

	hub.Close()

	assert.Equal(t, 0, hub.ClientCount())
	assert.True(t, client.IsClosed())
	_, ok := <-client.SendChan()
	assert.False(t, ok)
}

func TestHub_Metrics(t *testing.T) {
	m := metrics.NewWebSocketMetrics(prometheus.NewRegistry())
	hub := NewHub(HubConfig{Metrics: m, SendBuffer: 1})

	a := NewClient(hub, nil)
	b := NewClient(hub, nil)
	require.NoError(t, hub.Register(a))
	require.NoError(t, hub.Register(b))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActiveConnections))

	require.True(t, a.Send([]byte(`"backlog"`)))
	_, err := hub.Broadcast("x")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveConnections))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Broadcasts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Deliveries))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DroppedClients))
}

func TestClientStateString(t *testing.T) {
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "closed", StateClosed.String())
}

func TestHub_MetricsIgnoreClosedClients(t *testing.T) {
	m := metrics.NewWebSocketMetrics(prometheus.NewRegistry())
	hub := NewHub(HubConfig{Metrics: m})

	gone := NewClient(hub, nil)
	live := NewClient(hub, nil)
	require.NoError(t, hub.Register(gone))
	require.NoError(t, hub.Register(live))

	// Closed by its own pump before the hub noticed.
	gone.Close()

	delivered, err := hub.Broadcast("x")
	require.NoError(t, err)

	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, hub.ClientCount())
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DroppedClients))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveConnections))
}
