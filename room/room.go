// room/room.go
package room

import (
	"math/rand"
	"time"

	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/catalog"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/models"
)

// Phase is the round lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSpinning
	PhaseAwaitingFirstBid
	PhaseActiveBidding
	PhaseResolving
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSpinning:
		return "spinning"
	case PhaseAwaitingFirstBid:
		return "awaitingFirstBid"
	case PhaseActiveBidding:
		return "activeBidding"
	case PhaseResolving:
		return "resolving"
	}
	return "unknown"
}

// Participant is one room member. The record survives disconnects so a
// rejoin under the same display name gets the balance and team back.
type Participant struct {
	ID        string
	Name      string
	Balance   int
	Team      []models.RosterEntry
	Connected bool
}

// Round holds the mutable fields of the in-progress round.
// Invariant: CurrentBid == 0 exactly when CurrentBidder == "".
type Round struct {
	Candidate     *catalog.Player
	Position      string
	CurrentBid    int
	CurrentBidder string
	SkippedBy     map[string]struct{}
}

// Room is the per-game state record. It carries no locking of its own: the
// owning engine serializes every read-then-write on it, including countdown
// expirations.
type Room struct {
	ID           string
	HostID       string
	Participants map[string]*Participant
	Pool         map[string][]catalog.Player
	Unsold       []catalog.Player
	Log          []models.LogEntry
	Round        Round
	Phase        Phase
	CreatedAt    time.Time

	logCapacity int
}

// New creates a room around its own pool clone.
func New(id string, pool map[string][]catalog.Player, logCapacity int) *Room {
	return &Room{
		ID:           id,
		Participants: make(map[string]*Participant),
		Pool:         pool,
		Unsold:       []catalog.Player{},
		Log:          []models.LogEntry{},
		Round:        Round{SkippedBy: make(map[string]struct{})},
		Phase:        PhaseIdle,
		CreatedAt:    time.Now(),
		logCapacity:  logCapacity,
	}
}

// PushLog appends a log entry, truncating from the oldest end at capacity.
func (r *Room) PushLog(kind, text string) {
	r.Log = append(r.Log, models.LogEntry{Kind: kind, Text: text})
	if r.logCapacity > 0 && len(r.Log) > r.logCapacity {
		r.Log = r.Log[len(r.Log)-r.logCapacity:]
	}
}

// FindByName locates a participant record by display name, connected or not.
// Display names are the reconnection key.
func (r *Room) FindByName(name string) (string, *Participant, bool) {
	for id, p := range r.Participants {
		if p.Name == name {
			return id, p, true
		}
	}
	return "", nil, false
}

// ConnectedIDs returns the ids of all currently connected participants.
func (r *Room) ConnectedIDs() []string {
	ids := make([]string, 0, len(r.Participants))
	for id, p := range r.Participants {
		if p.Connected {
			ids = append(ids, id)
		}
	}
	return ids
}

// CountConnected returns the number of connected participants.
func (r *Room) CountConnected() int {
	n := 0
	for _, p := range r.Participants {
		if p.Connected {
			n++
		}
	}
	return n
}

// DrawCandidate removes and returns a uniformly random candidate for the
// given position, or nil if that position's pool is exhausted. The pool only
// ever shrinks; unsold candidates are not returned to it.
func (r *Room) DrawCandidate(rng *rand.Rand, position string) *catalog.Player {
	pool := r.Pool[position]
	if len(pool) == 0 {
		return nil
	}
	i := rng.Intn(len(pool))
	chosen := pool[i]
	r.Pool[position] = append(pool[:i], pool[i+1:]...)
	return &chosen
}

// ResetRound clears all per-round fields and returns the room to idle.
func (r *Room) ResetRound() {
	r.Round = Round{SkippedBy: make(map[string]struct{})}
	r.Phase = PhaseIdle
}

// PoolCounts reports how many undrafted candidates remain per position.
func (r *Room) PoolCounts() map[string]int {
	counts := make(map[string]int, len(r.Pool))
	for pos, players := range r.Pool {
		counts[pos] = len(players)
	}
	return counts
}
