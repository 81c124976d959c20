package brackets

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/tournament-bracket/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 256
)

const MessageBracketUpdated = "BRACKET_UPDATED"

type WebSocketMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

// Client streams bracket snapshots of one tournament to a websocket peer.
type Client struct {
	broker *Broker
	conn   *websocket.Conn
	send   chan []byte
	room   string
	token  Token
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	// live is set once a published snapshot has been queued.
	live bool
}

func NewClient(broker *Broker, conn *websocket.Conn, tournamentID string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		broker: broker,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		room:   tournamentID,
		logger: logger.With(slog.String("tournament_id", tournamentID)),
	}
}

// Subscribe registers the client with the broker. Snapshots published from
// here on are buffered until Start runs the pumps. Read the current bracket
// only after subscribing.
func (c *Client) Subscribe() {
	c.token = c.broker.Subscribe(c.room, c.Deliver)
}

// Start queues the current bracket and runs the pumps until the peer goes
// away. current is skipped when a published snapshot was already queued:
// every write after Subscribe is published, so that one or a later one is
// at least as new.
func (c *Client) Start(current *models.Bracket) {
	if current != nil {
		c.enqueue(current, false)
	}
	go c.writePump()
	go c.readPump()
}

// Abort drops the subscription and closes the connection with an internal
// error status. Use it instead of Start when the current bracket cannot be
// read.
func (c *Client) Abort() {
	c.broker.Unsubscribe(c.token)
	c.close()
	msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "")
	if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		c.logger.Debug("websocket close failed", slog.Any("error", err))
	}
	c.conn.Close()
}

// Deliver is the client's SnapshotHandler. Snapshots are dropped when the
// peer is too slow to drain its buffer.
func (c *Client) Deliver(snapshot *models.Bracket) {
	c.enqueue(snapshot, true)
}

func (c *Client) enqueue(snapshot *models.Bracket, published bool) {
	payload, err := json.Marshal(WebSocketMessage{Type: MessageBracketUpdated, Payload: snapshot, RoomID: c.room})
	if err != nil {
		c.logger.Error("failed to marshal bracket snapshot", slog.Any("error", err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || (!published && c.live) {
		return
	}
	if published {
		c.live = true
	}
	select {
	case c.send <- payload:
	default:
		c.logger.Warn("client send buffer full, dropping snapshot")
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.send)
		c.closed = true
	}
}

func (c *Client) readPump() {
	defer func() {
		c.broker.Unsubscribe(c.token)
		c.close()
		c.conn.Close()
		c.logger.Debug("client read pump closed")
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket closed unexpectedly", slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("websocket write failed", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("websocket ping failed", slog.Any("error", err))
				return
			}
		}
	}
}
