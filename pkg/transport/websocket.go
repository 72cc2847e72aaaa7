package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/panelclaw/panelclaw/pkg/config"
	"github.com/panelclaw/panelclaw/pkg/logger"
	"github.com/panelclaw/panelclaw/pkg/protocol"
)

// Receiver consumes decoded host envelopes. The client runs a single
// reader goroutine per connection, so delivery stays serialized and the
// receiver needs no locking of its own.
type Receiver func(protocol.Inbound)

// Client maintains the websocket link to the host process. It is the
// connector's send function on one side and feeds its inbound entry point
// on the other.
type Client struct {
	cfg      config.HostConfig
	receiver Receiver

	mu      sync.Mutex
	conn    *websocket.Conn
	connID  string
	running bool
}

func NewClient(cfg config.HostConfig, receiver Receiver) *Client {
	return &Client{cfg: cfg, receiver: receiver}
}

// Start dials the host and begins pumping inbound envelopes. The initial
// dial failing is an error; later drops trigger the reconnect loop.
func (c *Client) Start(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return fmt.Errorf("connect to host: %w", err)
	}

	c.mu.Lock()
	c.running = true
	c.mu.Unlock()
	c.installConn(conn)

	go c.run(ctx)
	return nil
}

func (c *Client) Stop(ctx context.Context) error {
	c.mu.Lock()
	c.running = false
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	logger.InfoC("host", "Disconnected from host")
	return nil
}

// Send writes one panel envelope to the host. Writes are mutex-guarded;
// the connector may be driven from any goroutine.
func (c *Client) Send(msg protocol.Outbound) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("host link not connected")
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("write to host: %w", err)
	}
	return nil
}

func (c *Client) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.cfg.WSUrl, nil)
	return conn, err
}

func (c *Client) installConn(conn *websocket.Conn) {
	id := uuid.New().String()[:8]

	c.mu.Lock()
	c.conn = conn
	c.connID = id
	c.mu.Unlock()

	logger.InfoCF("host", "Connected to host", map[string]interface{}{
		"url":  c.cfg.WSUrl,
		"conn": id,
	})
}

func (c *Client) run(ctx context.Context) {
	for {
		c.readLoop(ctx)

		if ctx.Err() != nil || !c.IsRunning() {
			return
		}
		if !c.reconnect(ctx) {
			return
		}
	}
}

// readLoop drains one connection until it drops or the context ends.
func (c *Client) readLoop(ctx context.Context) {
	c.mu.Lock()
	conn := c.conn
	connID := c.connID
	c.mu.Unlock()

	if conn == nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && c.IsRunning() {
				logger.WarnCF("host", "Host link dropped", map[string]interface{}{
					"conn":  connID,
					"error": err.Error(),
				})
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			logger.WarnCF("host", "Dropping undecodable host frame", map[string]interface{}{
				"conn":  connID,
				"error": err.Error(),
			})
			continue
		}
		if c.receiver != nil {
			c.receiver(msg)
		}
	}
}

// reconnect retries the dial at the configured interval until it succeeds
// or the client is stopped. Returns false when giving up.
func (c *Client) reconnect(ctx context.Context) bool {
	interval := time.Duration(c.cfg.ReconnectInterval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}

	for {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(interval):
		}
		if !c.IsRunning() {
			return false
		}

		conn, err := c.dial(ctx)
		if err != nil {
			logger.WarnCF("host", "Reconnect failed", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		c.installConn(conn)
		return true
	}
}
