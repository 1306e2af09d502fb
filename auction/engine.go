// auction/engine.go
package auction

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/catalog"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/config"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/logger"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/models"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/network"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/room"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/timer"
)

// Broadcaster delivers packets to every session in a room. Defined here, on
// the consumer side, to keep the broadcast package out of the import graph.
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgID uint16, data []byte) error
}

// bidThreshold is where the increment widens from 5 to 10 to shorten
// late-round stalemates.
const (
	bidThreshold = 200
	bidStepSmall = 5
	bidStepLarge = 10
)

// Engine is the per-room auction state machine. Every command and every
// countdown expiry for the room is serialized through e.mu, so all
// read-then-write sequences on the room are atomic. The engine is the only
// component that mutates round and bidding fields.
type Engine struct {
	cfg  config.GameConfig
	bc   Broadcaster
	rng  *rand.Rand
	tick time.Duration

	mu   sync.Mutex
	room *room.Room

	// seq stamps the current round. Countdown and spin callbacks capture it
	// and are discarded if the round they belong to has been resolved, so a
	// stale expiry can never touch a later round.
	seq       uint64
	initial   *timer.Countdown
	active    *timer.Countdown
	spinTimer *time.Timer
}

// NewEngine wraps a room. The engine owns both countdowns for the room.
func NewEngine(r *room.Room, cfg config.GameConfig, bc Broadcaster) *Engine {
	return &Engine{
		cfg:  cfg,
		bc:   bc,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		tick: time.Second,
		room: r,
	}
}

// Join adds a participant or reconnects one by display name. A matching
// name takes over the old record (balance, team, skip and bid state) under
// the new connection id; an in-progress round is never reset by a rejoin.
func (e *Engine) Join(sessionID, name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.room
	if oldID, p, ok := r.FindByName(name); ok {
		delete(r.Participants, oldID)
		p.ID = sessionID
		p.Connected = true
		r.Participants[sessionID] = p

		if r.HostID == oldID {
			r.HostID = sessionID
		}
		if r.Round.CurrentBidder == oldID {
			r.Round.CurrentBidder = sessionID
		}
		if _, skipped := r.Round.SkippedBy[oldID]; skipped {
			delete(r.Round.SkippedBy, oldID)
			r.Round.SkippedBy[sessionID] = struct{}{}
		}
		r.PushLog("join", fmt.Sprintf("%s rejoined", name))
		logger.Log.Infof("Room %s: %s reconnected as %s (was %s)", r.ID, name, sessionID, oldID)
	} else {
		r.Participants[sessionID] = &room.Participant{
			ID:        sessionID,
			Name:      name,
			Balance:   e.cfg.StartingBalance,
			Team:      []models.RosterEntry{},
			Connected: true,
		}
		r.PushLog("join", fmt.Sprintf("%s joined", name))
		logger.Log.Infof("Room %s: %s joined as %s", r.ID, name, sessionID)
	}

	// A hostless room promotes the next arrival.
	if r.HostID == "" {
		r.HostID = sessionID
	}

	e.broadcastLocked()
}

// HandleDisconnect marks the participant inactive, keeping balance and team
// for a later reconnect. Returns false if this room does not know the id.
func (e *Engine) HandleDisconnect(sessionID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.room
	p, ok := r.Participants[sessionID]
	if !ok {
		return false
	}
	if !p.Connected {
		return true
	}
	p.Connected = false
	logger.Log.Infof("Room %s: %s disconnected", r.ID, p.Name)

	if r.HostID == sessionID {
		r.HostID = ""
		for id, q := range r.Participants {
			if q.Connected {
				r.HostID = id
				r.PushLog("info", fmt.Sprintf("%s is now the host", q.Name))
				break
			}
		}
	}

	e.broadcastLocked()
	return true
}

// StartSpin begins a round: host only, idle only. The wheel index is drawn
// and announced immediately; the candidate draw happens after the
// presentation delay so clients can animate the wheel.
func (e *Engine) StartSpin(senderID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.room
	if r.HostID != senderID {
		return ErrNotAuthorized
	}
	if r.Phase != room.PhaseIdle {
		return ErrInvalidState
	}

	idx := e.rng.Intn(len(catalog.Positions))
	position := catalog.Positions[idx]
	r.Phase = room.PhaseSpinning

	data, err := json.Marshal(models.WheelResult{Index: idx})
	if err == nil {
		e.bc.BroadcastToRoom(r.ID, network.MsgTypeWheelResult, data)
	}
	e.broadcastLocked()

	seq := e.seq
	delay := time.Duration(e.cfg.SpinDelayMs) * time.Millisecond
	e.spinTimer = time.AfterFunc(delay, func() {
		e.finishSpin(seq, position)
	})
	return nil
}

// finishSpin draws the candidate once the presentation delay has passed.
func (e *Engine) finishSpin(seq uint64, position string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.room
	if seq != e.seq || r.Phase != room.PhaseSpinning {
		return // superseded
	}

	candidate := r.DrawCandidate(e.rng, position)
	if candidate == nil {
		r.PushLog("info", fmt.Sprintf("No players left for %s", position))
		r.Phase = room.PhaseIdle
		e.broadcastLocked()
		return
	}

	r.Round.Candidate = candidate
	r.Round.Position = position
	r.Phase = room.PhaseAwaitingFirstBid
	r.PushLog("spin", fmt.Sprintf("%s → %s (%dM)", position, candidate.Name, candidate.BasePrice))
	e.broadcastLocked()

	e.initial = timer.Start(e.cfg.InitialTime, e.tick, e.onTick, e.expireFunc(seq))
}

// Bid places the next computed bid for the sender. The first accepted bid is
// the candidate's base price and switches the round to active bidding.
func (e *Engine) Bid(senderID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.room
	p, ok := r.Participants[senderID]
	if !ok || !p.Connected {
		return ErrParticipantNotFound
	}
	if r.Phase != room.PhaseAwaitingFirstBid && r.Phase != room.PhaseActiveBidding {
		return ErrInvalidState
	}
	if r.Round.CurrentBidder == senderID {
		return ErrIneligible // no self-raise
	}
	if _, skipped := r.Round.SkippedBy[senderID]; skipped {
		return ErrIneligible
	}
	if len(p.Team) >= e.cfg.RosterCapacity {
		return ErrIneligible // roster full
	}

	next := e.nextBidLocked()
	if p.Balance < next {
		return ErrInsufficientFunds
	}

	if r.Phase == room.PhaseAwaitingFirstBid {
		if e.initial != nil {
			e.initial.Stop()
			e.initial = nil
		}
		r.Phase = room.PhaseActiveBidding
		e.active = timer.Start(e.cfg.BidTime, e.tick, e.onTick, e.expireFunc(e.seq))
	} else if e.active != nil {
		// Every accepted bid refreshes the active countdown to full.
		e.active.Reset(e.cfg.BidTime)
	}

	r.Round.CurrentBid = next
	r.Round.CurrentBidder = senderID
	r.PushLog("bid", fmt.Sprintf("%s bid %dM", p.Name, next))
	e.broadcastLocked()
	return nil
}

// Skip records the sender opting out of the current round. Skipping is
// idempotent and never allowed for the current highest bidder. After each
// skip the quorum rule may resolve the round early.
func (e *Engine) Skip(senderID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.room
	p, ok := r.Participants[senderID]
	if !ok || !p.Connected {
		return ErrParticipantNotFound
	}
	if r.Phase != room.PhaseAwaitingFirstBid && r.Phase != room.PhaseActiveBidding {
		return ErrInvalidState
	}
	if r.Round.CurrentBidder == senderID {
		return ErrIneligible
	}

	if _, already := r.Round.SkippedBy[senderID]; !already {
		r.Round.SkippedBy[senderID] = struct{}{}
		r.PushLog("skip", fmt.Sprintf("%s skipped", p.Name))
	}

	if e.quorumReachedLocked() {
		e.resolveLocked()
		return nil
	}

	e.broadcastLocked()
	return nil
}

// ForceSell lets the host resolve the round immediately as a win for the
// current bidder. Rejected when there is no active bid.
func (e *Engine) ForceSell(senderID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.room
	if r.HostID != senderID {
		return ErrNotAuthorized
	}
	if r.Phase != room.PhaseActiveBidding || r.Round.CurrentBidder == "" || r.Round.CurrentBid == 0 {
		return ErrInvalidState
	}

	r.PushLog("info", "Host used Force Sell")
	e.resolveLocked()
	return nil
}

// Broadcast pushes the current snapshot to the room.
func (e *Engine) Broadcast() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.broadcastLocked()
}

// Room returns the room id this engine drives.
func (e *Engine) RoomID() string {
	return e.room.ID
}

// Stats returns a consistent read of the room for the admin RPC.
func (e *Engine) Stats() RoomStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.room
	remaining := 0
	for _, players := range r.Pool {
		remaining += len(players)
	}
	return RoomStats{
		RoomID:        r.ID,
		Phase:         r.Phase.String(),
		Participants:  len(r.Participants),
		Connected:     r.CountConnected(),
		PoolRemaining: remaining,
		Unsold:        len(r.Unsold),
	}
}

// --- internals, all assume e.mu is held ---

// nextBidLocked computes the amount the next accepted bid must carry:
// base price for the opening bid, then +5 below 200, +10 from 200 up.
func (e *Engine) nextBidLocked() int {
	rd := &e.room.Round
	if rd.CurrentBid == 0 {
		return rd.Candidate.BasePrice
	}
	if rd.CurrentBid < bidThreshold {
		return rd.CurrentBid + bidStepSmall
	}
	return rd.CurrentBid + bidStepLarge
}

// quorumReachedLocked reports whether every connected participant other
// than the current bidder has skipped. With no bidder, every connected
// participant must have skipped.
func (e *Engine) quorumReachedLocked() bool {
	r := e.room
	others := 0
	for id, p := range r.Participants {
		if !p.Connected || id == r.Round.CurrentBidder {
			continue
		}
		others++
		if _, skipped := r.Round.SkippedBy[id]; !skipped {
			return false
		}
	}
	return others > 0
}

// resolveLocked applies exactly one outcome, win or unsold, then clears
// the round, discards both countdowns and returns the room to idle.
func (e *Engine) resolveLocked() {
	r := e.room
	r.Phase = room.PhaseResolving
	e.cancelTimersLocked()

	rd := &r.Round
	if rd.CurrentBidder != "" {
		winner := r.Participants[rd.CurrentBidder]
		winner.Balance -= rd.CurrentBid
		winner.Team = append(winner.Team, models.RosterEntry{Name: rd.Candidate.Name, Price: rd.CurrentBid})
		r.PushLog("win", fmt.Sprintf("%s won %s for %dM", winner.Name, rd.Candidate.Name, rd.CurrentBid))
		logger.Log.Infof("Room %s: %s won %s for %d", r.ID, winner.Name, rd.Candidate.Name, rd.CurrentBid)
	} else {
		r.Unsold = append([]catalog.Player{*rd.Candidate}, r.Unsold...)
		r.PushLog("unsold", fmt.Sprintf("%s was unsold", rd.Candidate.Name))
		logger.Log.Infof("Room %s: %s unsold", r.ID, rd.Candidate.Name)
	}

	r.ResetRound()
	e.seq++
	e.broadcastLocked()
}

// expireRound handles a countdown reaching zero. The sequence stamp rejects
// expirations that belong to an already-resolved round.
func (e *Engine) expireRound(seq uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seq != e.seq {
		return // stale
	}
	if e.room.Phase != room.PhaseAwaitingFirstBid && e.room.Phase != room.PhaseActiveBidding {
		return
	}
	e.resolveLocked()
}

func (e *Engine) expireFunc(seq uint64) func() {
	return func() { e.expireRound(seq) }
}

// onTick pushes a snapshot every countdown second; clients key their
// visible timers off these per-second state emits.
func (e *Engine) onTick(remaining int) {
	e.Broadcast()
}

func (e *Engine) cancelTimersLocked() {
	if e.spinTimer != nil {
		e.spinTimer.Stop()
		e.spinTimer = nil
	}
	if e.initial != nil {
		e.initial.Stop()
		e.initial = nil
	}
	if e.active != nil {
		e.active.Stop()
		e.active = nil
	}
}

func (e *Engine) broadcastLocked() {
	data, err := json.Marshal(e.snapshotLocked())
	if err != nil {
		logger.Log.Errorf("Room %s: failed to marshal snapshot: %v", e.room.ID, err)
		return
	}
	if err := e.bc.BroadcastToRoom(e.room.ID, network.MsgTypeRoomState, data); err != nil {
		logger.Log.Warnf("Room %s: broadcast failed: %v", e.room.ID, err)
	}
}
