package ws

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

const (
	broadcastQueue  = 256
	membershipQueue = 64
)

// Hub fans slot events out to every connected client.
// The client set is owned by the Run goroutine; other goroutines talk to it over channels.
type Hub struct {
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	count  atomic.Int64
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		broadcast:  make(chan []byte, broadcastQueue),
		register:   make(chan *Client, membershipQueue),
		unregister: make(chan *Client, membershipQueue),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves until ctx is done, then closes every client's send queue.
// Register and Unregister calls made after that return immediately.
func (h *Hub) Run(ctx context.Context) {
	clients := make(map[*Client]struct{})
	remove := func(c *Client) {
		if _, ok := clients[c]; !ok {
			return
		}
		delete(clients, c)
		close(c.send)
		h.count.Store(int64(len(clients)))
	}

	defer func() {
		for c := range clients {
			remove(c)
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			if c == nil {
				continue
			}
			clients[c] = struct{}{}
			h.count.Store(int64(len(clients)))
			h.logger.Debug("ws client connected", zap.Int("clients", len(clients)))

		case c := <-h.unregister:
			remove(c)
			h.logger.Debug("ws client disconnected", zap.Int("clients", len(clients)))

		case msg := <-h.broadcast:
			var dropped int
			for c := range clients {
				select {
				case c.send <- msg:
				default:
					// queue full: a client that cannot keep up is disconnected
					remove(c)
					dropped++
				}
			}
			h.logger.Debug("ws broadcast", zap.Int("clients", len(clients)), zap.Int("dropped", dropped))
		}
	}
}

func (h *Hub) Register(c *Client) {
	if h == nil {
		return
	}
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast never blocks; when the queue is full the message is dropped.
func (h *Hub) Broadcast(msg []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("ws broadcast dropped", zap.Int("queued", len(h.broadcast)))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	return int(h.count.Load())
}
