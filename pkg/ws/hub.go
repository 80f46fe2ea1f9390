package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Peer serializes writes to one connection; gorilla allows a single
// concurrent writer.
type Peer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (p *Peer) WriteJSON(v interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteJSON(v)
}

type Hub struct {
	mu    sync.RWMutex
	peers map[string]*Peer
}

func NewHub() *Hub {
	return &Hub{peers: map[string]*Peer{}}
}

func (h *Hub) Add(id string, c *websocket.Conn) *Peer {
	p := &Peer{conn: c}
	h.mu.Lock()
	h.peers[id] = p
	h.mu.Unlock()
	return p
}

func (h *Hub) Get(id string) (*Peer, bool) {
	h.mu.RLock()
	p, ok := h.peers[id]
	h.mu.RUnlock()
	return p, ok
}

// Remove only drops the entry if it still belongs to p, so a reconnect under
// the same id is not unregistered by the old handler.
func (h *Hub) Remove(id string, p *Peer) {
	h.mu.Lock()
	if cur, ok := h.peers[id]; ok && cur == p {
		delete(h.peers, id)
	}
	h.mu.Unlock()
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}
