// Package stream implements the OpsSight real-time event client: one
// WebSocket connection to the backend's Kubernetes event stream, a
// subscription registry with type/cluster filters, synchronous fan-out to
// callbacks, heartbeats with a liveness deadline, and bounded exponential
// reconnection after unclean closes.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/pkg/metrics"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/pkg/redact"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Maximum inbound frame size.
	maxFrameBytes = 512 * 1024 // 512KB

	// Events decoded between transport open and the end of the ready
	// handshake are buffered up to this many frames (drop-oldest), then
	// drained exactly once. The buffer is never refilled afterwards.
	preReadyBufferSize = 64
)

var (
	ErrNotConnected = errors.New("stream: not connected")
	ErrClosed       = errors.New("stream: client closed")
)

// Options configures a Client. APIURL and Token are required.
type Options struct {
	// APIURL is the backend base URL (http or https); the stream endpoint
	// and ws/wss scheme are derived from it.
	APIURL string

	// Token returns the bearer token used to authenticate the upgrade.
	// Called once per connection attempt; never mid-connection.
	Token func() (string, error)

	// ConnectTimeout bounds the dial plus handshake. Default 10s.
	ConnectTimeout time.Duration

	// HeartbeatInterval is the outbound heartbeat period. Default 30s.
	HeartbeatInterval time.Duration

	// LivenessMultiplier sets the read deadline to N heartbeat intervals;
	// a silent connection past that is treated as an unclean close.
	// Default 2.
	LivenessMultiplier int

	// ReconnectBase is the backoff base delay. Default 5s.
	ReconnectBase time.Duration

	// MaxReconnectAttempts bounds retries after an unclean close; once
	// exhausted the client stays disconnected. Default 5.
	MaxReconnectAttempts int

	// Dialer overrides the websocket dialer, for tests.
	Dialer *websocket.Dialer

	Logger *slog.Logger
}

// Client is the event-stream client. Construct with NewClient and inject it
// where needed; there is deliberately no package-level instance.
//
// At most one live WebSocket connection exists per Client. All callback
// dispatch is serialized: two inbound events are never processed
// concurrently, and within one event the matching subscriptions are
// notified in insertion order.
type Client struct {
	opts     Options
	log      *slog.Logger
	registry *registry

	// mu guards connection state and the pre-ready buffer.
	mu             sync.Mutex
	conn           *websocket.Conn
	connected      bool
	ready          bool
	closing        bool
	gen            int // connection generation; stale goroutines check it
	attempts       int // reconnect attempts since last successful open
	pending        chan struct{}
	pendingErr     error
	reconnectTimer *time.Timer
	heartbeatStop  chan struct{}
	preReady       []*models.StreamEvent

	// writeMu serializes frame writes (gorilla allows one writer).
	writeMu sync.Mutex

	// dispatchMu serializes callback dispatch, including the one-time
	// drain of the pre-ready buffer.
	dispatchMu sync.Mutex
}

// NewClient validates options, applies defaults, and returns a client. The
// connection is not opened until Connect.
func NewClient(opts Options) (*Client, error) {
	if opts.APIURL == "" {
		return nil, fmt.Errorf("stream: APIURL is required")
	}
	if opts.Token == nil {
		return nil, fmt.Errorf("stream: Token is required")
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = 30 * time.Second
	}
	if opts.LivenessMultiplier <= 0 {
		opts.LivenessMultiplier = 2
	}
	if opts.ReconnectBase <= 0 {
		opts.ReconnectBase = 5 * time.Second
	}
	if opts.MaxReconnectAttempts <= 0 {
		opts.MaxReconnectAttempts = 5
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{
		opts:     opts,
		log:      opts.Logger,
		registry: newRegistry(),
	}, nil
}

// Connect opens the stream connection. It is idempotent: while an attempt
// is in flight, concurrent calls wait for the same outcome rather than
// opening a second socket. Initial connect failures are returned to the
// caller and are not retried automatically; the backoff policy applies only
// to established sessions that drop uncleanly.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	c.closing = false
	c.mu.Unlock()
	return c.doConnect(ctx)
}

func (c *Client) doConnect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return nil
	}
	if c.pending != nil {
		ch := c.pending
		c.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		c.mu.Lock()
		err := c.pendingErr
		c.mu.Unlock()
		return err
	}
	ch := make(chan struct{})
	c.pending = ch
	c.mu.Unlock()

	err := c.dialAndStart(ctx)

	c.mu.Lock()
	c.pendingErr = err
	c.pending = nil
	c.mu.Unlock()
	close(ch)
	return err
}

func (c *Client) dialAndStart(ctx context.Context) error {
	token, err := c.opts.Token()
	if err != nil {
		return fmt.Errorf("stream: load token: %w", err)
	}
	u, err := streamURL(c.opts.APIURL, token)
	if err != nil {
		return err
	}

	dialer := c.opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	dialCtx, cancel := context.WithTimeout(ctx, c.opts.ConnectTimeout)
	defer cancel()
	conn, resp, err := dialer.DialContext(dialCtx, u, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("stream: dial failed (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("stream: dial failed: %w", err)
	}
	conn.SetReadLimit(maxFrameBytes)

	c.mu.Lock()
	if c.closing {
		c.mu.Unlock()
		conn.Close()
		return ErrClosed
	}
	c.conn = conn
	c.connected = true
	c.ready = false
	c.attempts = 0
	c.gen++
	gen := c.gen
	c.preReady = nil
	hbStop := make(chan struct{})
	c.heartbeatStop = hbStop
	// Snapshot under the same lock that flips connected: a concurrent
	// Subscribe either lands in the snapshot (and stays silent) or sees
	// connected and announces itself, never both.
	replay := c.registry.snapshot()
	c.mu.Unlock()

	metrics.StreamConnected.Set(1)
	c.log.Info("event stream connected", "url", redact.URL(u))

	go c.readLoop(conn, gen)
	go c.heartbeatLoop(conn, hbStop)

	// Re-announce every registered subscription before marking ready so the
	// server's view matches the registry after a reconnect.
	for _, e := range replay {
		if err := c.writeFrame(subscribeFrame(e.id, e.sub)); err != nil {
			c.log.Warn("subscription replay failed", "subscription_id", e.id, "error", err)
		}
	}

	c.markReady()
	return nil
}

// markReady completes the ready handshake: the pre-ready buffer is drained
// exactly once, under the dispatch lock, ahead of any event the read loop
// sees from now on. The buffer is never refilled afterwards.
func (c *Client) markReady() {
	c.mu.Lock()
	c.ready = true
	buffered := c.preReady
	c.preReady = nil
	c.dispatchMu.Lock()
	c.mu.Unlock()
	for _, ev := range buffered {
		dispatch(c.registry, ev, c.log)
	}
	c.dispatchMu.Unlock()
}

// Disconnect closes the connection with a normal-closure frame, stops the
// heartbeat, and cancels any pending reconnect timer. No reconnection is
// scheduled for a caller-initiated close. Connect may be called again
// afterwards.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.closing = true
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	if c.heartbeatStop != nil {
		close(c.heartbeatStop)
		c.heartbeatStop = nil
	}
	conn := c.conn
	c.conn = nil
	c.connected = false
	c.ready = false
	c.attempts = 0
	c.gen++ // invalidates the read loop's close handling
	c.mu.Unlock()

	if conn != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client disconnect")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
		c.log.Info("event stream disconnected")
	}
	metrics.StreamConnected.Set(0)
}

// IsConnected reports whether a live connection exists right now. This is
// the only connection-state signal; there is no state-change callback.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Subscribe registers a filter and callback and returns the subscription
// id. If connected, the subscription is announced to the server
// immediately; otherwise it is announced on the next successful connect.
func (c *Client) Subscribe(sub Subscription) (string, error) {
	if sub.Callback == nil {
		return "", fmt.Errorf("stream: subscription callback is required")
	}
	if len(sub.Types) == 0 {
		sub.Types = []models.EventType{models.EventTypeAll}
	}
	id := uuid.NewString()
	// Add and read the connection state atomically so a Subscribe racing a
	// connect's replay never announces the same id twice.
	c.mu.Lock()
	c.registry.add(id, sub)
	announce := c.connected
	c.mu.Unlock()
	if announce {
		if err := c.writeFrame(subscribeFrame(id, sub)); err != nil {
			c.log.Warn("subscribe announce failed", "subscription_id", id, "error", err)
		}
	}
	return id, nil
}

// Unsubscribe removes a subscription. Unknown ids are a no-op.
func (c *Client) Unsubscribe(id string) {
	c.mu.Lock()
	removed := c.registry.remove(id)
	announce := removed && c.connected
	c.mu.Unlock()
	if !announce {
		return
	}
	if err := c.writeFrame(unsubscribeFrame(id)); err != nil {
		c.log.Warn("unsubscribe announce failed", "subscription_id", id, "error", err)
	}
}

// SubscriptionCount returns the registry size. Diagnostics only.
func (c *Client) SubscriptionCount() int {
	return c.registry.count()
}

func (c *Client) livenessWindow() time.Duration {
	return time.Duration(c.opts.LivenessMultiplier) * c.opts.HeartbeatInterval
}

// readLoop processes inbound frames until the connection errors. The read
// deadline is refreshed on every frame; a connection silent for the whole
// liveness window fails the read and is handled as an unclean close.
func (c *Client) readLoop(conn *websocket.Conn, gen int) {
	window := c.livenessWindow()
	_ = conn.SetReadDeadline(time.Now().Add(window))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.handleReadError(conn, gen, err)
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(window))
		c.handleFrame(data)
	}
}

func (c *Client) handleReadError(conn *websocket.Conn, gen int, err error) {
	c.mu.Lock()
	if gen != c.gen {
		// A newer connection or an explicit Disconnect superseded us.
		c.mu.Unlock()
		return
	}
	c.connected = false
	c.ready = false
	c.conn = nil
	if c.heartbeatStop != nil {
		close(c.heartbeatStop)
		c.heartbeatStop = nil
	}
	wasClosing := c.closing
	c.mu.Unlock()

	conn.Close()
	metrics.StreamConnected.Set(0)

	if wasClosing || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		c.log.Info("event stream closed", "error", err)
		return
	}
	c.log.Warn("event stream dropped", "error", err)
	c.scheduleReconnect()
}

func (c *Client) scheduleReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closing {
		return
	}
	c.attempts++
	if c.attempts > c.opts.MaxReconnectAttempts {
		c.log.Error("reconnect attempts exhausted, staying disconnected",
			"attempts", c.opts.MaxReconnectAttempts)
		return
	}
	delay := backoffDelay(c.attempts, c.opts.ReconnectBase)
	metrics.ReconnectsTotal.Inc()
	c.log.Info("scheduling reconnect", "attempt", c.attempts, "delay", delay)
	c.reconnectTimer = time.AfterFunc(delay, c.attemptReconnect)
}

func (c *Client) attemptReconnect() {
	c.mu.Lock()
	c.reconnectTimer = nil
	if c.closing || c.connected {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if err := c.doConnect(context.Background()); err != nil {
		c.log.Warn("reconnect failed", "error", err)
		c.scheduleReconnect()
	}
}

// heartbeatLoop sends heartbeat frames while the connection is up. A write
// failure closes the connection so the read loop observes the error and
// drives recovery.
func (c *Client) heartbeatLoop(conn *websocket.Conn, stop chan struct{}) {
	t := time.NewTicker(c.opts.HeartbeatInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if err := c.writeFrame(heartbeatFrame()); err != nil {
				c.log.Debug("heartbeat write failed", "error", err)
				conn.Close()
				return
			}
		}
	}
}

func (c *Client) writeFrame(v clientFrame) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// handleFrame decodes one inbound envelope and routes it. Malformed frames
// are logged and dropped; the connection stays up.
func (c *Client) handleFrame(data []byte) {
	var env models.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		metrics.FramesDroppedTotal.Inc()
		c.log.Warn("malformed stream frame dropped", "error", err)
		return
	}
	switch env.Type {
	case models.EnvelopeHeartbeat:
		// Liveness deadline was already refreshed by the read loop.
	case models.EnvelopeSubscriptionAck:
		c.log.Debug("subscription acknowledged", "subscription_id", env.SubscriptionID)
	case models.EnvelopeError:
		c.log.Warn("server error envelope", "detail", string(env.Error))
	case models.EnvelopeEvent:
		ev, err := models.DecodeStreamEvent(env.Data)
		if err != nil {
			metrics.FramesDroppedTotal.Inc()
			c.log.Warn("invalid event dropped", "error", err)
			return
		}
		metrics.EventsReceivedTotal.WithLabelValues(string(ev.Type)).Inc()
		c.deliver(ev)
	default:
		metrics.FramesDroppedTotal.Inc()
		c.log.Warn("unknown envelope type dropped", "type", string(env.Type))
	}
}

// deliver dispatches an event, or buffers it if the ready handshake has not
// finished yet. The buffer is bounded; when full the oldest event is
// dropped.
func (c *Client) deliver(ev *models.StreamEvent) {
	c.mu.Lock()
	if !c.ready {
		if len(c.preReady) >= preReadyBufferSize {
			c.preReady = c.preReady[1:]
			metrics.FramesDroppedTotal.Inc()
		}
		c.preReady = append(c.preReady, ev)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()
	dispatch(c.registry, ev, c.log)
}
