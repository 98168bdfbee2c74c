package signaling

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Envelope is the wire format for every signaling message. The payload is
// opaque to the server; offers, answers and ICE candidates are relayed
// verbatim between the peers of a call.
type Envelope struct {
	Type      string      `json:"type"`
	CallID    string      `json:"callId,omitempty"`
	SessionID string      `json:"sessionId,omitempty"`
	From      string      `json:"from,omitempty"`
	To        string      `json:"to,omitempty"`
	Peers     []string    `json:"peers,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
}

const (
	msgJoin     = "join"
	msgJoined   = "joined"
	msgPeerJoin = "peer-joined"
	msgPeerLeft = "peer-left"
	msgError    = "error"
)

type SignalingController struct {
	hub    *Hub
	logger *zap.Logger
}

func NewSignalingController(hub *Hub, logger *zap.Logger) *SignalingController {
	return &SignalingController{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection runs the read loop for one websocket client. The first
// message must be a join carrying the call id; everything after it is
// relayed to the other peers of that call.
func (ctrl *SignalingController) HandleConnection(c *websocket.Conn) {
	p := &peer{
		sessionID: uuid.NewString(),
		conn:      c,
	}

	var join Envelope
	if err := c.ReadJSON(&join); err != nil {
		return
	}
	if join.Type != msgJoin || join.CallID == "" {
		p.send(Envelope{Type: msgError, Payload: "expected a join message with a callId"})
		return
	}

	callID := join.CallID
	others := ctrl.hub.join(callID, p)

	defer func() {
		ctrl.hub.leave(callID, p.sessionID)
		ctrl.hub.relay(callID, p.sessionID, Envelope{
			Type:   msgPeerLeft,
			CallID: callID,
			From:   p.sessionID,
		})
		ctrl.logger.Info("peer left call",
			zap.String("callId", callID),
			zap.String("sessionId", p.sessionID))
	}()

	if err := p.send(Envelope{
		Type:      msgJoined,
		CallID:    callID,
		SessionID: p.sessionID,
		Peers:     others,
	}); err != nil {
		return
	}

	ctrl.hub.relay(callID, p.sessionID, Envelope{
		Type:   msgPeerJoin,
		CallID: callID,
		From:   p.sessionID,
	})
	ctrl.logger.Info("peer joined call",
		zap.String("callId", callID),
		zap.String("sessionId", p.sessionID))

	for {
		var msg Envelope
		if err := c.ReadJSON(&msg); err != nil {
			return
		}

		// The sender identity always comes from the connection, never
		// from the message.
		msg.CallID = callID
		msg.From = p.sessionID

		if msg.To != "" {
			ctrl.relayTo(callID, msg)
			continue
		}
		ctrl.hub.relay(callID, p.sessionID, msg)
	}
}

// relayTo delivers a directed message to a single peer in the room.
func (ctrl *SignalingController) relayTo(callID string, msg Envelope) {
	ctrl.hub.mu.RLock()
	target := ctrl.hub.rooms[callID][msg.To]
	ctrl.hub.mu.RUnlock()

	if target == nil {
		return
	}
	if err := target.send(msg); err != nil {
		ctrl.logger.Warn("signaling relay write failed",
			zap.String("callId", callID),
			zap.String("to", msg.To),
			zap.Error(err))
	}
}
