package signaling

import (
	"testing"

	"go.uber.org/zap"
)

func TestJoinReturnsExistingPeers(t *testing.T) {
	hub := NewHub(zap.NewNop())

	first := &peer{sessionID: "s1"}
	others := hub.join("call-1", first)
	if len(others) != 0 {
		t.Errorf("first peer should find an empty room, got %v", others)
	}

	second := &peer{sessionID: "s2"}
	others = hub.join("call-1", second)
	if len(others) != 1 || others[0] != "s1" {
		t.Errorf("second peer should see the first, got %v", others)
	}
}

func TestRoomsAreIsolatedByCall(t *testing.T) {
	hub := NewHub(zap.NewNop())

	hub.join("call-1", &peer{sessionID: "s1"})
	others := hub.join("call-2", &peer{sessionID: "s2"})

	if len(others) != 0 {
		t.Errorf("peers of another call must not be visible, got %v", others)
	}
}

func TestLeaveRemovesEmptyRoom(t *testing.T) {
	hub := NewHub(zap.NewNop())

	hub.join("call-1", &peer{sessionID: "s1"})
	hub.leave("call-1", "s1")

	hub.mu.RLock()
	_, exists := hub.rooms["call-1"]
	hub.mu.RUnlock()

	if exists {
		t.Error("empty room should be deleted")
	}
}

func TestLeaveKeepsRemainingPeers(t *testing.T) {
	hub := NewHub(zap.NewNop())

	hub.join("call-1", &peer{sessionID: "s1"})
	hub.join("call-1", &peer{sessionID: "s2"})
	hub.leave("call-1", "s1")

	hub.mu.RLock()
	room := hub.rooms["call-1"]
	hub.mu.RUnlock()

	if len(room) != 1 {
		t.Fatalf("expected one remaining peer, got %d", len(room))
	}
	if _, ok := room["s2"]; !ok {
		t.Error("remaining peer should still be in the room")
	}
}

func TestLeaveUnknownRoomIsNoOp(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.leave("missing", "s1")
}
