// auction/registry.go
package auction

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/catalog"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/config"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/logger"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/room"
)

const (
	roomIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomIDLength  = 6
)

// Registry owns every room/engine pair for the process lifetime. Rooms are
// added on createRoom and never explicitly removed.
type Registry struct {
	cfg     config.GameConfig
	catalog *catalog.Catalog
	bc      Broadcaster

	mutex   sync.RWMutex
	engines map[string]*Engine
	rng     *rand.Rand
}

func NewRegistry(cat *catalog.Catalog, cfg config.GameConfig, bc Broadcaster) *Registry {
	return &Registry{
		cfg:     cfg,
		catalog: cat,
		bc:      bc,
		engines: make(map[string]*Engine),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateRoom allocates a fresh room around its own catalog clone and inserts
// the creator as sole participant and host.
func (reg *Registry) CreateRoom(sessionID, name string) (string, *Engine) {
	reg.mutex.Lock()
	id := reg.newRoomIDLocked()
	eng := NewEngine(room.New(id, reg.catalog.ClonePool(), reg.cfg.LogCapacity), reg.cfg, reg.bc)
	reg.engines[id] = eng
	reg.mutex.Unlock()

	// Join promotes the first arrival of a hostless room to host.
	eng.Join(sessionID, name)
	logger.Log.Infof("Room %s created by %s", id, name)
	return id, eng
}

// Get returns the engine for a room id.
func (reg *Registry) Get(roomID string) (*Engine, bool) {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	eng, exists := reg.engines[roomID]
	return eng, exists
}

// Join routes a join-or-reconnect into the room's engine.
func (reg *Registry) Join(roomID, sessionID, name string) (*Engine, error) {
	eng, exists := reg.Get(roomID)
	if !exists {
		return nil, ErrRoomNotFound
	}
	eng.Join(sessionID, name)
	return eng, nil
}

// HandleDisconnect marks the participant inactive in every room that knows
// the id. Records are kept so a rejoin by name restores balance and team.
func (reg *Registry) HandleDisconnect(sessionID string) {
	reg.mutex.RLock()
	engines := make([]*Engine, 0, len(reg.engines))
	for _, eng := range reg.engines {
		engines = append(engines, eng)
	}
	reg.mutex.RUnlock()

	for _, eng := range engines {
		eng.HandleDisconnect(sessionID)
	}
}

// Count returns the number of rooms.
func (reg *Registry) Count() int {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	return len(reg.engines)
}

// Stats lists per-room statistics for the admin RPC.
func (reg *Registry) Stats() []RoomStats {
	reg.mutex.RLock()
	engines := make([]*Engine, 0, len(reg.engines))
	for _, eng := range reg.engines {
		engines = append(engines, eng)
	}
	reg.mutex.RUnlock()

	stats := make([]RoomStats, 0, len(engines))
	for _, eng := range engines {
		stats = append(stats, eng.Stats())
	}
	return stats
}

// newRoomIDLocked draws ids until one is unused. Assumes reg.mutex is held.
func (reg *Registry) newRoomIDLocked() string {
	for {
		b := make([]byte, roomIDLength)
		for i := range b {
			b[i] = roomIDCharset[reg.rng.Intn(len(roomIDCharset))]
		}
		id := string(b)
		if _, taken := reg.engines[id]; !taken {
			return id
		}
	}
}
