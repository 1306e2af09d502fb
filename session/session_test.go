package session

import (
	"net"
	"testing"
	"time"

	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/network"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	sent []uint16
}

func (m *MockConnection) Send(msgID uint16, data []byte) error {
	m.sent = append(m.sent, msgID)
	return nil
}
func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func TestManager_AddGetRemove(t *testing.T) {
	manager := NewManager()
	sess := NewSession("conn-1", &MockConnection{})

	manager.Add(sess)

	got, exists := manager.Get("conn-1")
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if got != sess {
		t.Error("Get should return the same session instance")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected count 1, got %d", manager.Count())
	}

	manager.Remove("conn-1")
	if _, exists := manager.Get("conn-1"); exists {
		t.Error("Get should not find a removed session")
	}
}

func TestManager_GetByRoom(t *testing.T) {
	manager := NewManager()

	a := NewSession("conn-a", &MockConnection{})
	a.SetRoom("ROOM01", "Alice")
	b := NewSession("conn-b", &MockConnection{})
	b.SetRoom("ROOM01", "Bob")
	c := NewSession("conn-c", &MockConnection{})
	c.SetRoom("ROOM02", "Carol")

	manager.Add(a)
	manager.Add(b)
	manager.Add(c)

	members := manager.GetByRoom("ROOM01")
	if len(members) != 2 {
		t.Fatalf("Expected 2 sessions in ROOM01, got %d", len(members))
	}
	if none := manager.GetByRoom("ROOM99"); len(none) != 0 {
		t.Errorf("Expected no sessions for unknown room, got %d", len(none))
	}
}

func TestSession_Send(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("conn-1", conn)

	if err := sess.Send(42, []byte(`{}`)); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if len(conn.sent) != 1 || conn.sent[0] != 42 {
		t.Errorf("Expected msg id 42 sent once, got %v", conn.sent)
	}
}
