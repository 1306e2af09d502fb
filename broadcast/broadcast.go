// broadcast/broadcast.go
package broadcast

import (
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/logger"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/session"
)

// RoomBroadcaster fans packets out to every session attached to a room.
// Sessions record their room id on join, so no room lookup is needed here.
type RoomBroadcaster struct {
	sessionManager *session.Manager
}

func NewRoomBroadcaster(sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		sessionManager: sessionManager,
	}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomID string, msgID uint16, data []byte) error {
	// Get a thread-safe copy of the sessions.
	sessions := b.sessionManager.GetByRoom(roomID)

	for _, s := range sessions {
		if err := s.Send(msgID, data); err != nil {
			// A dead connection is cleaned up by its own read loop.
			logger.Log.Debugf("Broadcast to session %s failed: %v", s.GetID(), err)
			continue
		}
	}
	return nil
}

// SendToSession delivers a packet to a single session if it is still alive.
func (b *RoomBroadcaster) SendToSession(sessionID string, msgID uint16, data []byte) error {
	s, exists := b.sessionManager.Get(sessionID)
	if !exists {
		return session.ErrSessionNotFound
	}
	return s.Send(msgID, data)
}
