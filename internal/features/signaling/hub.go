package signaling

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// peer is one websocket connection participating in a call. Writes to the
// connection are serialized through the peer mutex; the fiber websocket
// connection does not allow concurrent writers.
type peer struct {
	sessionID string
	conn      *websocket.Conn
	mu        sync.Mutex
}

func (p *peer) send(v interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteJSON(v)
}

// Hub tracks call rooms. A room is the set of peers that joined the same
// call id; it exists only while at least one peer is connected.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]*peer
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[string]*peer),
		logger: logger,
	}
}

// join adds the peer to the room and returns the session ids already in it.
func (h *Hub) join(callID string, p *peer) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[callID]
	if room == nil {
		room = make(map[string]*peer)
		h.rooms[callID] = room
	}

	others := make([]string, 0, len(room))
	for id := range room {
		others = append(others, id)
	}

	room[p.sessionID] = p
	return others
}

func (h *Hub) leave(callID, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[callID]
	if room == nil {
		return
	}

	delete(room, sessionID)
	if len(room) == 0 {
		delete(h.rooms, callID)
	}
}

// relay forwards a message to every peer in the room except the sender. A
// peer whose connection rejects the write is skipped, not evicted; its own
// read loop will tear it down.
func (h *Hub) relay(callID, fromSessionID string, msg Envelope) {
	h.mu.RLock()
	peers := make([]*peer, 0)
	for id, p := range h.rooms[callID] {
		if id != fromSessionID {
			peers = append(peers, p)
		}
	}
	h.mu.RUnlock()

	for _, p := range peers {
		if err := p.send(msg); err != nil {
			h.logger.Warn("signaling relay write failed",
				zap.String("callId", callID),
				zap.String("to", p.sessionID),
				zap.Error(err))
		}
	}
}
