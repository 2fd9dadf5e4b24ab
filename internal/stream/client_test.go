package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
)

// wsTestServer is a scripted stand-in for the backend event stream. Every
// accepted connection is exposed so tests can push envelopes, inspect the
// client's frames, or kill the transport.
type wsTestServer struct {
	t        *testing.T
	srv      *httptest.Server
	upgrader websocket.Upgrader

	connCh chan *wsTestConn

	mu    sync.Mutex
	conns int
}

type wsTestConn struct {
	conn   *websocket.Conn
	frames chan clientFrame
}

func newWSTestServer(t *testing.T) *wsTestServer {
	t.Helper()
	s := &wsTestServer{
		t:      t,
		connCh: make(chan *wsTestConn, 8),
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *wsTestServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("token") == "" {
		http.Error(w, `{"detail":"missing token"}`, http.StatusUnauthorized)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.conns++
	s.mu.Unlock()

	tc := &wsTestConn{conn: conn, frames: make(chan clientFrame, 32)}
	s.connCh <- tc
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var f clientFrame
		if json.Unmarshal(data, &f) == nil {
			tc.frames <- f
		}
	}
}

func (s *wsTestServer) connCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

// waitConn returns the next accepted connection or fails the test.
func (s *wsTestServer) waitConn(t *testing.T, timeout time.Duration) *wsTestConn {
	t.Helper()
	select {
	case c := <-s.connCh:
		return c
	case <-time.After(timeout):
		t.Fatal("timed out waiting for client connection")
		return nil
	}
}

// waitFrame returns the next non-heartbeat frame from the client.
func (c *wsTestConn) waitFrame(t *testing.T, timeout time.Duration) clientFrame {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case f := <-c.frames:
			if f.Type == "heartbeat" {
				continue
			}
			return f
		case <-deadline:
			t.Fatal("timed out waiting for client frame")
			return clientFrame{}
		}
	}
}

func (c *wsTestConn) push(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, c.conn.WriteJSON(v))
}

func (c *wsTestConn) pushRaw(t *testing.T, data string) {
	t.Helper()
	require.NoError(t, c.conn.WriteMessage(websocket.TextMessage, []byte(data)))
}

// killUnclean drops the TCP connection without a close handshake.
func (c *wsTestConn) killUnclean() {
	_ = c.conn.NetConn().Close()
}

func eventEnvelope(id string, typ models.EventType, clusterID string) map[string]any {
	return map[string]any{
		"type": "event",
		"data": map[string]any{
			"id":        id,
			"type":      string(typ),
			"action":    "updated",
			"timestamp": "2024-01-01T00:00:00Z",
			"clusterId": clusterID,
		},
	}
}

func newTestClient(t *testing.T, s *wsTestServer, tweak func(*Options)) *Client {
	t.Helper()
	opts := Options{
		APIURL:               s.srv.URL,
		Token:                func() (string, error) { return "test-token", nil },
		ConnectTimeout:       2 * time.Second,
		HeartbeatInterval:    time.Minute,
		ReconnectBase:        20 * time.Millisecond,
		MaxReconnectAttempts: 3,
	}
	if tweak != nil {
		tweak(&opts)
	}
	c, err := NewClient(opts)
	require.NoError(t, err)
	t.Cleanup(c.Disconnect)
	return c
}

func TestConnectAnnouncesSubscription(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, nil)

	_, err := c.Subscribe(Subscription{
		Types:     []models.EventType{models.EventTypePod},
		ClusterID: "c1",
		Callback:  func(*models.StreamEvent) {},
	})
	require.NoError(t, err)

	require.NoError(t, c.Connect(context.Background()))
	assert.True(t, c.IsConnected())

	sc := s.waitConn(t, time.Second)
	f := sc.waitFrame(t, time.Second)
	assert.Equal(t, "subscribe", f.Type)
	assert.NotEmpty(t, f.SubscriptionID)
	assert.Equal(t, []models.EventType{models.EventTypePod}, f.Types)
	assert.Equal(t, "c1", f.ClusterID)
}

func TestSubscribeWhileConnectedAnnouncesImmediately(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, nil)

	require.NoError(t, c.Connect(context.Background()))
	sc := s.waitConn(t, time.Second)

	id, err := c.Subscribe(Subscription{Callback: func(*models.StreamEvent) {}})
	require.NoError(t, err)

	f := sc.waitFrame(t, time.Second)
	assert.Equal(t, "subscribe", f.Type)
	assert.Equal(t, id, f.SubscriptionID)
	// Empty filter defaults to the wildcard.
	assert.Equal(t, []models.EventType{models.EventTypeAll}, f.Types)
}

func TestEndToEndFiltering(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, nil)

	events := make(chan *models.StreamEvent, 8)
	_, err := c.Subscribe(Subscription{
		Types:     []models.EventType{models.EventTypePod},
		ClusterID: "c1",
		Callback:  func(ev *models.StreamEvent) { events <- ev },
	})
	require.NoError(t, err)

	require.NoError(t, c.Connect(context.Background()))
	sc := s.waitConn(t, time.Second)
	sc.waitFrame(t, time.Second) // subscribe announce

	sc.push(t, eventEnvelope("e1", models.EventTypePod, "c1"))
	select {
	case ev := <-events:
		assert.Equal(t, "e1", ev.ID)
		assert.Equal(t, models.EventTypePod, ev.Type)
		assert.Equal(t, models.ActionUpdated, ev.Action)
		assert.Equal(t, "c1", ev.ClusterID)
	case <-time.After(time.Second):
		t.Fatal("matching event was not delivered")
	}

	// Different cluster must not reach the callback.
	sc.push(t, eventEnvelope("e2", models.EventTypePod, "c2"))
	// A later matching event proves e2 was filtered, not just delayed.
	sc.push(t, eventEnvelope("e3", models.EventTypePod, "c1"))
	select {
	case ev := <-events:
		assert.Equal(t, "e3", ev.ID)
	case <-time.After(time.Second):
		t.Fatal("follow-up event was not delivered")
	}
	assert.Empty(t, events)
}

func TestMalformedFramesAreDropped(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, nil)

	events := make(chan *models.StreamEvent, 8)
	_, err := c.Subscribe(Subscription{Callback: func(ev *models.StreamEvent) { events <- ev }})
	require.NoError(t, err)

	require.NoError(t, c.Connect(context.Background()))
	sc := s.waitConn(t, time.Second)
	sc.waitFrame(t, time.Second)

	sc.pushRaw(t, `{not json`)
	sc.pushRaw(t, `{"type":"event","data":{"id":"bad","type":"pod","action":"exploded","timestamp":"2024-01-01T00:00:00Z","clusterId":"c1"}}`)
	sc.pushRaw(t, `{"type":"mystery"}`)
	sc.push(t, eventEnvelope("ok", models.EventTypePod, "c1"))

	select {
	case ev := <-events:
		// Malformed frames were dropped without killing the connection.
		assert.Equal(t, "ok", ev.ID)
	case <-time.After(time.Second):
		t.Fatal("valid event after malformed frames was not delivered")
	}
	assert.True(t, c.IsConnected())
}

func TestServerErrorEnvelopeDoesNotDisturbConnection(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, nil)

	require.NoError(t, c.Connect(context.Background()))
	sc := s.waitConn(t, time.Second)

	sc.pushRaw(t, `{"type":"error","error":{"detail":"backend hiccup"}}`)
	sc.pushRaw(t, `{"type":"subscription_ack","subscriptionId":"s1"}`)
	time.Sleep(50 * time.Millisecond)

	assert.True(t, c.IsConnected())
}

func TestConnectSingleFlight(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, nil)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Connect(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	// Give any duplicate dial time to land before counting.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, s.connCount())
}

func TestConnectFailureIsNotRetried(t *testing.T) {
	c, err := NewClient(Options{
		// Nothing listens on this port.
		APIURL:         "http://127.0.0.1:1",
		Token:          func() (string, error) { return "test-token", nil },
		ConnectTimeout: 200 * time.Millisecond,
		ReconnectBase:  10 * time.Millisecond,
	})
	require.NoError(t, err)

	err = c.Connect(context.Background())
	require.Error(t, err)
	assert.False(t, c.IsConnected())

	// No background retry for initial connect failures.
	time.Sleep(100 * time.Millisecond)
	assert.False(t, c.IsConnected())
}

func TestUnsubscribeUnknownIsNoop(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, nil)

	_, err := c.Subscribe(Subscription{Callback: func(*models.StreamEvent) {}})
	require.NoError(t, err)
	assert.Equal(t, 1, c.SubscriptionCount())

	c.Unsubscribe("nonexistent")
	assert.Equal(t, 1, c.SubscriptionCount())
}

func TestUnsubscribeAnnounces(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, nil)

	require.NoError(t, c.Connect(context.Background()))
	sc := s.waitConn(t, time.Second)

	id, err := c.Subscribe(Subscription{Callback: func(*models.StreamEvent) {}})
	require.NoError(t, err)
	sc.waitFrame(t, time.Second) // subscribe

	c.Unsubscribe(id)
	f := sc.waitFrame(t, time.Second)
	assert.Equal(t, "unsubscribe", f.Type)
	assert.Equal(t, id, f.SubscriptionID)
	assert.Equal(t, 0, c.SubscriptionCount())
}

func TestReplayOnReconnect(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, nil)

	for i := 0; i < 2; i++ {
		_, err := c.Subscribe(Subscription{Callback: func(*models.StreamEvent) {}})
		require.NoError(t, err)
	}

	require.NoError(t, c.Connect(context.Background()))
	first := s.waitConn(t, time.Second)
	assert.Equal(t, "subscribe", first.waitFrame(t, time.Second).Type)
	assert.Equal(t, "subscribe", first.waitFrame(t, time.Second).Type)

	first.killUnclean()

	second := s.waitConn(t, 2*time.Second)
	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		f := second.waitFrame(t, time.Second)
		assert.Equal(t, "subscribe", f.Type)
		seen[f.SubscriptionID] = true
	}
	// Exactly the two registered subscriptions, no duplicates.
	assert.Len(t, seen, 2)
	select {
	case f := <-second.frames:
		if f.Type == "subscribe" {
			t.Fatalf("unexpected extra subscribe for %s", f.SubscriptionID)
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNoReconnectAfterCleanDisconnect(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, nil)

	require.NoError(t, c.Connect(context.Background()))
	s.waitConn(t, time.Second)
	assert.Equal(t, 1, s.connCount())

	c.Disconnect()
	assert.False(t, c.IsConnected())

	// Twice the backoff base with no new connection attempt.
	time.Sleep(2 * 20 * time.Millisecond * 2)
	assert.Equal(t, 1, s.connCount())
}

func TestLivenessTimeoutTriggersReconnect(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, func(o *Options) {
		o.HeartbeatInterval = 50 * time.Millisecond
		o.LivenessMultiplier = 1
	})

	require.NoError(t, c.Connect(context.Background()))
	s.waitConn(t, time.Second)

	// The server never sends anything; the read deadline expires and the
	// client treats the silent connection as an unclean close.
	s.waitConn(t, 2*time.Second)
	assert.GreaterOrEqual(t, s.connCount(), 2)
}

func TestHeartbeatFramesSent(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, func(o *Options) {
		o.HeartbeatInterval = 30 * time.Millisecond
		o.LivenessMultiplier = 10
	})

	require.NoError(t, c.Connect(context.Background()))
	sc := s.waitConn(t, time.Second)

	select {
	case f := <-sc.frames:
		assert.Equal(t, "heartbeat", f.Type)
	case <-time.After(time.Second):
		t.Fatal("no heartbeat frame received")
	}
}

func TestReconnectGivesUpAfterMaxAttempts(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, func(o *Options) {
		o.MaxReconnectAttempts = 1
		o.ReconnectBase = 10 * time.Millisecond
	})

	require.NoError(t, c.Connect(context.Background()))
	first := s.waitConn(t, time.Second)

	// Kill the server entirely so every reconnect fails.
	s.srv.CloseClientConnections()
	s.srv.Close()
	first.killUnclean()

	time.Sleep(300 * time.Millisecond)
	assert.False(t, c.IsConnected())
}

func TestPreReadyBufferDropOldestAndDrainOnce(t *testing.T) {
	c, err := NewClient(Options{
		APIURL: "http://localhost:8080",
		Token:  func() (string, error) { return "test-token", nil },
	})
	require.NoError(t, err)

	var got []string
	c.registry.add("s1", Subscription{
		Types:    []models.EventType{models.EventTypeAll},
		Callback: func(ev *models.StreamEvent) { got = append(got, ev.ID) },
	})

	// Three more events than the buffer holds, before the ready handshake.
	for i := 0; i < preReadyBufferSize+3; i++ {
		c.deliver(&models.StreamEvent{
			ID:     fmt.Sprintf("e%d", i),
			Type:   models.EventTypePod,
			Action: models.ActionUpdated,
		})
	}
	assert.Empty(t, got, "nothing dispatches before ready")
	c.mu.Lock()
	assert.Len(t, c.preReady, preReadyBufferSize)
	c.mu.Unlock()

	c.markReady()
	require.Len(t, got, preReadyBufferSize)
	// The three oldest were displaced; the rest drain in arrival order.
	assert.Equal(t, "e3", got[0])
	assert.Equal(t, fmt.Sprintf("e%d", preReadyBufferSize+2), got[len(got)-1])

	// A second handshake finds nothing left to drain.
	c.markReady()
	assert.Len(t, got, preReadyBufferSize)

	// After ready, events dispatch directly and the buffer stays empty.
	c.deliver(&models.StreamEvent{ID: "late", Type: models.EventTypePod, Action: models.ActionUpdated})
	assert.Equal(t, "late", got[len(got)-1])
	c.mu.Lock()
	assert.Empty(t, c.preReady)
	c.mu.Unlock()
}

func TestSubscribeDuringConnectAnnouncesExactlyOnce(t *testing.T) {
	s := newWSTestServer(t)
	c := newTestClient(t, s, nil)

	_, err := c.Subscribe(Subscription{Callback: func(*models.StreamEvent) {}})
	require.NoError(t, err)

	// A second subscription races the connect's replay of the first.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := c.Subscribe(Subscription{Callback: func(*models.StreamEvent) {}})
		assert.NoError(t, err)
	}()
	require.NoError(t, c.Connect(context.Background()))
	<-done

	sc := s.waitConn(t, time.Second)
	counts := map[string]int{}
	deadline := time.After(300 * time.Millisecond)
collect:
	for {
		select {
		case f := <-sc.frames:
			if f.Type == "subscribe" {
				counts[f.SubscriptionID]++
			}
		case <-deadline:
			break collect
		}
	}
	require.Len(t, counts, 2)
	for id, n := range counts {
		assert.Equal(t, 1, n, "subscription %s announced %d times", id, n)
	}
}

func TestStreamURL(t *testing.T) {
	u, err := streamURL("https://ops.example.com", "tok123")
	require.NoError(t, err)
	assert.Equal(t, "wss://ops.example.com/api/v1/kubernetes/events/stream?token=tok123", u)

	u, err = streamURL("http://localhost:8080/", "t")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8080/api/v1/kubernetes/events/stream?token=t", u)

	_, err = streamURL("ftp://nope", "t")
	assert.Error(t, err)
}
